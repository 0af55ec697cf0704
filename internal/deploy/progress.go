package deploy

import (
	"sync"

	"github.com/semanticbi/tabsync/pkg/tabsync"

	"github.com/semanticbi/tabsync/internal/model"
)

// ProgressTracker owns the per-table refresh progress of one deployment.
// Row counters are updated only from the progress-event pump (single
// writer); snapshots may be taken concurrently from any reader.
type ProgressTracker struct {
	mu     sync.RWMutex
	order  []string
	tables map[string]*trackedTable
}

type trackedTable struct {
	progress *model.ProcessingTable
	state    tabsync.TableState
}

// NewProgressTracker creates an empty tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{tables: make(map[string]*trackedTable)}
}

// Track registers a table for progress reporting. storeID is the store-side
// table identifier progress events are correlated against.
func (t *ProgressTracker) Track(name, storeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.tables[name]; exists {
		return
	}
	t.order = append(t.order, name)
	t.tables[name] = &trackedTable{progress: model.NewProcessingTable(name, storeID)}
}

// Apply records one progress event against the matching tracked table and
// returns the table name with its new running total. ok is false when the
// event's table is not tracked.
func (t *ProgressTracker) Apply(ev tabsync.ProgressEvent) (tableName string, total int64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, name := range t.order {
		tt := t.tables[name]
		if tt.progress.StoreID != ev.TableID && name != ev.TableID {
			continue
		}
		tt.progress.UpdatePartition(ev.ObjectID, ev.RowCount)
		if tt.state == tabsync.TableStatePending {
			tt.state = tabsync.TableStateProcessing
		}
		return name, tt.progress.TotalRows(), true
	}
	return "", 0, false
}

// SetState records a state transition for one table.
func (t *ProgressTracker) SetState(name string, state tabsync.TableState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tt, exists := t.tables[name]; exists {
		tt.state = state
	}
}

// FinishPending moves every table that is still pending or processing into
// the given terminal state. Used to report all outstanding tables as
// errored, cancelled or done when the deployment reaches a terminal phase.
func (t *ProgressTracker) FinishPending(state tabsync.TableState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tt := range t.tables {
		if tt.state == tabsync.TableStatePending || tt.state == tabsync.TableStateProcessing {
			tt.state = state
		}
	}
}

// Snapshot returns the current per-table status in registration order.
func (t *ProgressTracker) Snapshot() []tabsync.TableStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]tabsync.TableStatus, 0, len(t.order))
	for _, name := range t.order {
		tt := t.tables[name]
		out = append(out, tabsync.TableStatus{
			Name:     name,
			State:    tt.state,
			RowCount: tt.progress.TotalRows(),
		})
	}
	return out
}
