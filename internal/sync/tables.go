package sync

import (
	"fmt"

	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// DeleteTable removes the named table from the target graph along with
// every relationship it participates in. The removed relationships are
// returned; UpdateTable needs them to re-attach survivors after recreation.
func (s *Synchronizer) DeleteTable(name string) []*model.Relationship {
	if s.target.Table(name) == nil {
		return nil
	}
	s.logger.Verbose("Deleting table '%s'", name)
	removed := s.target.RemoveTable(name)
	s.structuralChanges = true
	return removed
}

// CreateTable copies the source table into the target graph, including its
// measures, and copies over any source relationships that both endpoints of
// which now exist on the target. Cross-references are rewritten against the
// target graph; a partition data-source reference that cannot be resolved is
// a hard dependency failure.
func (s *Synchronizer) CreateTable(src *model.Table) error {
	if err := s.createTableStructure(src); err != nil {
		return err
	}

	tgt := s.target.Table(src.Name)
	for _, m := range src.Measures {
		tgt.AddMeasure(m)
	}
	return nil
}

// createTableStructure copies the source table without its measures and
// re-resolves its cross-references against the target graph. Measures are
// excluded here so UpdateTable's re-attachment of the old target measures
// cannot race with a fresh copy and duplicate them.
func (s *Synchronizer) createTableStructure(src *model.Table) error {
	s.logger.Verbose("Creating table '%s'", src.Name)

	cp := src.CloneWithoutMeasures()
	for _, p := range cp.Partitions {
		if p.ConnectionName == "" {
			continue
		}
		if s.target.Connection(p.ConnectionName) == nil {
			return fmt.Errorf("table %q partition %q references connection %q: %w",
				src.Name, p.Name, p.ConnectionName, tabsync.ErrReferenceNotFound)
		}
	}
	s.target.AddTable(cp)
	s.structuralChanges = true

	// Copy source relationships that this table completes: both endpoint
	// tables and columns must exist on the target. Copies carry provenance
	// so ambiguity validation can prefer pre-existing target relationships.
	for _, r := range s.source.Relationships {
		if !r.Involves(src.Name) {
			continue
		}
		if !s.relationshipEndpointsExist(r) {
			continue
		}
		rc := r.Clone()
		rc.CopiedFromSource = true
		s.target.AddRelationship(rc)
	}
	return nil
}

// UpdateTable replaces the target table with the source definition.
// Partial structural edits are not guaranteed to preserve table data through
// the external apply, so update is always delete followed by create, then
// re-attachment of what the delete orphaned: relationships whose endpoints
// still resolve by name, and the measures of the old target table.
func (s *Synchronizer) UpdateTable(src, tgt *model.Table) error {
	s.logger.Verbose("Updating table '%s'", tgt.Name)

	oldMeasures := append([]*model.Measure(nil), tgt.Measures...)
	removed := s.DeleteTable(tgt.Name)

	if err := s.createTableStructure(src); err != nil {
		return err
	}

	for _, r := range removed {
		if s.relationshipEndpointsExist(r) {
			s.target.AddRelationship(r)
		}
	}

	created := s.target.Table(src.Name)
	for _, m := range oldMeasures {
		created.AddMeasure(m)
	}
	return nil
}

// relationshipEndpointsExist reports whether both endpoint columns of r
// resolve by name in the target graph.
func (s *Synchronizer) relationshipEndpointsExist(r *model.Relationship) bool {
	return s.target.Column(r.FromTable, r.FromColumn) != nil &&
		s.target.Column(r.ToTable, r.ToColumn) != nil
}
