package sync

import (
	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// DeletePerspective removes the named perspective and records that its
// deletion was requested, so a later restore does not resurrect it.
func (s *Synchronizer) DeletePerspective(name string) {
	s.logger.Verbose("Deleting perspective '%s'", name)
	s.target.RemovePerspective(name)
	s.deletedPerspectives[name] = true
}

// CreatePerspective copies the perspective into the target graph, keeping
// only membership entries whose referent exists in the target. Entries are
// created lazily, so tables that lost all their members produce no entry.
func (s *Synchronizer) CreatePerspective(src *model.Perspective) {
	s.logger.Verbose("Creating perspective '%s'", src.Name)
	p := &model.Perspective{Name: src.Name}
	s.mergePerspectiveEntries(p, src)
	s.target.Perspectives = append(s.target.Perspectives, p)
}

// UpdatePerspective reconciles one perspective according to the configured
// merge policy. backup is the pre-synchronization target definition; src is
// the source-side definition.
//
// Replace recreates the perspective verbatim from the source. Merge
// recreates it from the backup and then folds in the source membership, so
// target-only entries the source does not mention survive.
func (s *Synchronizer) UpdatePerspective(src, backup *model.Perspective) {
	s.target.RemovePerspective(backup.Name)

	if s.opts.PerspectiveMergePolicy == tabsync.MergePolicyReplace {
		s.CreatePerspective(src)
		return
	}

	s.logger.Verbose("Merging perspective '%s'", backup.Name)
	p := &model.Perspective{Name: backup.Name}
	s.mergePerspectiveEntries(p, backup)
	s.mergePerspectiveEntries(p, src)
	s.target.Perspectives = append(s.target.Perspectives, p)
}

// mergePerspectiveEntries ensures dst contains every membership entry of
// from whose referent exists in the target graph. Entries with a missing
// referent are skipped.
func (s *Synchronizer) mergePerspectiveEntries(dst, from *model.Perspective) {
	for _, pt := range from.Tables {
		if s.target.Table(pt.TableName) == nil {
			continue
		}
		for _, c := range pt.Columns {
			if s.target.Column(pt.TableName, c) != nil {
				dst.AddColumn(pt.TableName, c)
			}
		}
		for _, h := range pt.Hierarchies {
			if s.target.Hierarchy(pt.TableName, h) != nil {
				dst.AddHierarchy(pt.TableName, h)
			}
		}
		for _, m := range pt.Measures {
			if s.target.Measure(pt.TableName, m) != nil {
				dst.AddMeasure(pt.TableName, m)
			}
		}
	}
}
