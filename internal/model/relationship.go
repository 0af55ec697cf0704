package model

// Relationship connects a column of one table to a column of another.
// Filters propagate from the "from" side toward the "to" side; when
// CrossFilterBoth is set they propagate in both directions.
type Relationship struct {
	// Name is the internal identity, a generated identifier unique within
	// the model. It may be rewritten on collision when a relationship is
	// copied between graphs; OriginalName then keeps the pre-rename value
	// for diagnostics.
	Name         string `json:"name"`
	OriginalName string `json:"-"`

	FromTable  string `json:"fromTable"`
	FromColumn string `json:"fromColumn"`
	ToTable    string `json:"toTable"`
	ToColumn   string `json:"toColumn"`

	IsActive       bool `json:"isActive"`
	CrossFilterBoth bool `json:"crossFilterBoth,omitempty"`

	// CopiedFromSource marks a relationship freshly copied from the source
	// graph during the current synchronization pass, as opposed to one that
	// pre-existed on the target. Ambiguity resolution prefers deactivating
	// copied relationships so pre-existing target behavior wins.
	CopiedFromSource bool `json:"-"`
}

// Renamed reports whether the relationship's identity was rewritten on a
// naming collision.
func (r *Relationship) Renamed() bool {
	return r.OriginalName != "" && r.OriginalName != r.Name
}

// Involves reports whether the named table participates in the relationship.
func (r *Relationship) Involves(tableName string) bool {
	return r.FromTable == tableName || r.ToTable == tableName
}

// FiltersFrom reports whether the relationship propagates filters outward
// from the named table, per its cross-filter behavior. Inactive
// relationships never filter.
func (r *Relationship) FiltersFrom(tableName string) bool {
	if !r.IsActive {
		return false
	}
	if r.FromTable == tableName {
		return true
	}
	return r.CrossFilterBoth && r.ToTable == tableName
}

// EndTable returns the participant opposite to the named table.
func (r *Relationship) EndTable(beginTable string) string {
	if r.FromTable == beginTable {
		return r.ToTable
	}
	return r.FromTable
}

// SameEndpoints reports whether two relationships connect the same ordered
// column pair.
func (r *Relationship) SameEndpoints(other *Relationship) bool {
	return r.FromTable == other.FromTable &&
		r.FromColumn == other.FromColumn &&
		r.ToTable == other.ToTable &&
		r.ToColumn == other.ToColumn
}

// Clone returns a copy of the relationship.
func (r *Relationship) Clone() *Relationship {
	cp := *r
	return &cp
}
