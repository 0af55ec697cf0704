package model

// RoleMember is one principal granted a role. MemberID is the identity
// provider's stable identifier; some providers do not supply one, in which
// case matching falls back to the member name.
type RoleMember struct {
	Name     string `json:"memberName"`
	MemberID string `json:"memberId,omitempty"`
}

// TablePermission restricts a role's access to one table. The table is
// referenced by name; a permission whose table no longer exists in the
// graph is invalid and is dropped during synchronization.
type TablePermission struct {
	TableName        string `json:"name"`
	FilterExpression string `json:"filterExpression,omitempty"`
}

// Role is a named security role.
type Role struct {
	Name             string             `json:"name"`
	ModelPermission  string             `json:"modelPermission,omitempty"`
	Members          []*RoleMember      `json:"members,omitempty"`
	TablePermissions []*TablePermission `json:"tablePermissions,omitempty"`
}

// TablePermission returns the permission entry for the named table, or nil.
func (r *Role) TablePermission(tableName string) *TablePermission {
	for _, tp := range r.TablePermissions {
		if tp.TableName == tableName {
			return tp
		}
	}
	return nil
}

// Member returns the first member matching by MemberID when both sides have
// one and byID is set, otherwise by name. Returns nil when no member
// matches.
func (r *Role) Member(probe *RoleMember, byID bool) *RoleMember {
	if byID && probe.MemberID != "" {
		for _, m := range r.Members {
			if m.MemberID != "" && m.MemberID == probe.MemberID {
				return m
			}
		}
		return nil
	}
	for _, m := range r.Members {
		if m.Name == probe.Name {
			return m
		}
	}
	return nil
}

// Clone returns a deep copy of the role.
func (r *Role) Clone() *Role {
	cp := &Role{Name: r.Name, ModelPermission: r.ModelPermission}
	for _, m := range r.Members {
		mc := *m
		cp.Members = append(cp.Members, &mc)
	}
	for _, tp := range r.TablePermissions {
		tpc := *tp
		cp.TablePermissions = append(cp.TablePermissions, &tpc)
	}
	return cp
}
