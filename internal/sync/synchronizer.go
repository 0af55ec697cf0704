// Package sync mutates a target model graph to match a source model graph,
// entity kind by entity kind, and replays dependent objects (perspectives,
// cultures, roles) after structural edits.
package sync

import (
	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// Synchronizer applies per-entity create/update/delete operations against a
// target model graph, using a source graph as the reference.
//
// Thread-Safety: NOT safe for concurrent use. A synchronization pass is a
// purely sequential graph algorithm; create one Synchronizer per pass.
type Synchronizer struct {
	source *model.Model
	target *model.Model
	opts   tabsync.SyncOptions
	logger tabsync.Logger

	// Names whose deletion the caller requested. Restore skips these so a
	// backed-up entity is only replayed when deletion was not requested.
	deletedPerspectives map[string]bool
	deletedCultures     map[string]bool
	deletedRoles        map[string]bool

	structuralChanges bool
}

// New creates a Synchronizer for one pass from source onto target.
//
// Panics on nil dependencies: those are programmer errors that should fail
// loudly at setup time, not surface as nil dereferences mid-pass.
func New(source, target *model.Model, opts tabsync.SyncOptions, logger tabsync.Logger) *Synchronizer {
	if source == nil {
		panic("source model cannot be nil")
	}
	if target == nil {
		panic("target model cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Synchronizer{
		source:              source,
		target:              target,
		opts:                opts,
		logger:              logger,
		deletedPerspectives: make(map[string]bool),
		deletedCultures:     make(map[string]bool),
		deletedRoles:        make(map[string]bool),
	}
}

// Target returns the target graph being mutated.
func (s *Synchronizer) Target() *model.Model { return s.target }

// Source returns the source graph being read.
func (s *Synchronizer) Source() *model.Model { return s.source }

// HasStructuralChanges reports whether any table or connection was created,
// updated or deleted during this pass. Structural changes require at least a
// calculation-only refresh at deployment time.
func (s *Synchronizer) HasStructuralChanges() bool { return s.structuralChanges }

// SyncAll runs a full name-based reconciliation: dependent objects are
// backed up, connections and tables are synchronized (target-only entities
// deleted, source-only created, common ones updated), and the dependent
// objects are restored against the new structure.
func (s *Synchronizer) SyncAll() error {
	backup := TakeBackup(s.target)

	s.syncConnections()
	if err := s.syncTables(); err != nil {
		return err
	}

	return backup.Restore(s)
}

func (s *Synchronizer) syncConnections() {
	for _, tgt := range append([]*model.Connection(nil), s.target.Connections...) {
		if s.source.Connection(tgt.Name) == nil {
			s.DeleteConnection(tgt.Name)
		}
	}
	for _, src := range s.source.Connections {
		if tgt := s.target.Connection(src.Name); tgt != nil {
			s.UpdateConnection(src, tgt)
		} else {
			s.CreateConnection(src)
		}
	}
}

func (s *Synchronizer) syncTables() error {
	for _, tgt := range append([]*model.Table(nil), s.target.Tables...) {
		if s.source.Table(tgt.Name) == nil {
			s.DeleteTable(tgt.Name)
		}
	}
	for _, src := range s.source.Tables {
		if tgt := s.target.Table(src.Name); tgt != nil {
			if err := s.UpdateTable(src, tgt); err != nil {
				return err
			}
		} else if err := s.CreateTable(src); err != nil {
			return err
		}
	}
	return nil
}
