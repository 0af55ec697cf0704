package sync

import "github.com/semanticbi/tabsync/internal/model"

// Backup is a deep-copy snapshot of a target graph's dependent objects,
// taken before structural synchronization so the objects can be replayed
// against the rebuilt structure afterwards.
type Backup struct {
	perspectives []*model.Perspective
	cultures     []*model.Culture
	roles        []*model.Role
}

// TakeBackup snapshots every perspective, culture and role currently on the
// target graph.
func TakeBackup(target *model.Model) *Backup {
	b := &Backup{}
	for _, p := range target.Perspectives {
		b.perspectives = append(b.perspectives, p.Clone())
	}
	for _, c := range target.Cultures {
		b.cultures = append(b.cultures, c.Clone())
	}
	for _, r := range target.Roles {
		b.roles = append(b.roles, r.Clone())
	}
	return b
}

// Restore clears the live dependent-object collections and replays the
// backup against the synchronized structure. Order is strict: perspectives
// first, then cultures (culture translations may reference perspectives, so
// those must exist), then roles.
//
// Each backed-up entity with a source-side counterpart is routed through
// the configured merge/replace policy; one without a counterpart is
// recreated verbatim unless its deletion was requested during this pass.
func (b *Backup) Restore(s *Synchronizer) error {
	s.target.Perspectives = nil
	s.target.Cultures = nil
	s.target.Roles = nil

	for _, p := range b.perspectives {
		if s.deletedPerspectives[p.Name] {
			continue
		}
		if src := s.source.Perspective(p.Name); src != nil {
			s.UpdatePerspective(src, p)
		} else {
			s.CreatePerspective(p)
		}
	}
	for _, src := range s.source.Perspectives {
		if s.target.Perspective(src.Name) == nil && !s.deletedPerspectives[src.Name] {
			s.CreatePerspective(src)
		}
	}

	for _, c := range b.cultures {
		if s.deletedCultures[c.Name] {
			continue
		}
		if src := s.source.Culture(c.Name); src != nil {
			s.UpdateCulture(src, c)
		} else {
			s.CreateCulture(c)
		}
	}
	for _, src := range s.source.Cultures {
		if s.target.Culture(src.Name) == nil && !s.deletedCultures[src.Name] {
			s.CreateCulture(src)
		}
	}

	for _, r := range b.roles {
		if s.deletedRoles[r.Name] {
			continue
		}
		if src := s.source.Role(r.Name); src != nil {
			s.UpdateRole(src, r)
		} else {
			s.CreateRole(r)
		}
	}
	for _, src := range s.source.Roles {
		if s.target.Role(src.Name) == nil && !s.deletedRoles[src.Name] {
			s.CreateRole(src)
		}
	}

	return nil
}
