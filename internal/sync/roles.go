package sync

import (
	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// DeleteRole removes the named role and records that its deletion was
// requested.
func (s *Synchronizer) DeleteRole(name string) {
	s.logger.Verbose("Deleting role '%s'", name)
	s.target.RemoveRole(name)
	s.deletedRoles[name] = true
}

// CreateRole copies the role into the target graph. Table permissions whose
// table no longer exists are invalid and are dropped silently.
func (s *Synchronizer) CreateRole(src *model.Role) {
	s.logger.Verbose("Creating role '%s'", src.Name)
	r := src.Clone()
	r.TablePermissions = s.validTablePermissions(r.TablePermissions)
	s.target.Roles = append(s.target.Roles, r)
}

// UpdateRole recreates the role from the source definition and then folds
// back target-only members from the backup that the source does not
// mention. Member matching follows the configured policy: identity
// providers differ on whether a stable member identifier is present, so the
// two-branch behavior is configuration-driven.
func (s *Synchronizer) UpdateRole(src, backup *model.Role) {
	s.logger.Verbose("Updating role '%s'", src.Name)
	s.target.RemoveRole(backup.Name)

	r := src.Clone()
	r.TablePermissions = s.validTablePermissions(r.TablePermissions)

	byID := s.opts.RoleMemberMatchPolicy == tabsync.MatchMembersByID
	for _, m := range backup.Members {
		if r.Member(m, byID) == nil {
			mc := *m
			r.Members = append(r.Members, &mc)
		}
	}

	s.target.Roles = append(s.target.Roles, r)
}

// validTablePermissions filters out permissions whose table does not exist
// in the target graph.
func (s *Synchronizer) validTablePermissions(perms []*model.TablePermission) []*model.TablePermission {
	var valid []*model.TablePermission
	for _, tp := range perms {
		if s.target.Table(tp.TableName) == nil {
			s.logger.Verbose("Dropping permission for missing table '%s'", tp.TableName)
			continue
		}
		valid = append(valid, tp)
	}
	return valid
}
