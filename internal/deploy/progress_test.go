package deploy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticbi/tabsync/pkg/tabsync"
)

func TestProgressTracker_CorrelatesByStoreIDOrName(t *testing.T) {
	tr := NewProgressTracker()
	tr.Track("Customer", "customer-id")
	tr.Track("Sales", "Sales")

	_, _, ok := tr.Apply(tabsync.ProgressEvent{TableID: "unknown", ObjectID: "p1", RowCount: 5})
	assert.False(t, ok, "events for untracked tables are ignored")

	name, total, ok := tr.Apply(tabsync.ProgressEvent{TableID: "customer-id", ObjectID: "p1", RowCount: 100})
	require.True(t, ok)
	assert.Equal(t, "Customer", name)
	assert.Equal(t, int64(100), total)

	name, total, ok = tr.Apply(tabsync.ProgressEvent{TableID: "Sales", ObjectID: "p1", RowCount: 40})
	require.True(t, ok)
	assert.Equal(t, "Sales", name)
	assert.Equal(t, int64(40), total)
}

func TestProgressTracker_AggregatesPartitionsPerTable(t *testing.T) {
	tr := NewProgressTracker()
	tr.Track("Sales", "sales-id")

	tr.Apply(tabsync.ProgressEvent{TableID: "sales-id", ObjectID: "p1", RowCount: 100})
	tr.Apply(tabsync.ProgressEvent{TableID: "sales-id", ObjectID: "p2", RowCount: 70})
	tr.Apply(tabsync.ProgressEvent{TableID: "sales-id", ObjectID: "p1", RowCount: 300})

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(370), snap[0].RowCount)
	assert.Equal(t, tabsync.TableStateProcessing, snap[0].State, "first event moves a pending table to processing")
}

func TestProgressTracker_FinishPendingLeavesTerminalStatesAlone(t *testing.T) {
	tr := NewProgressTracker()
	tr.Track("A", "a")
	tr.Track("B", "b")
	tr.Track("C", "c")
	tr.SetState("A", tabsync.TableStateDone)

	tr.FinishPending(tabsync.TableStateErrored)

	snap := tr.Snapshot()
	assert.Equal(t, tabsync.TableStateDone, snap[0].State)
	assert.Equal(t, tabsync.TableStateErrored, snap[1].State)
	assert.Equal(t, tabsync.TableStateErrored, snap[2].State)
}

func TestProgressTracker_ConcurrentReadersDuringUpdates(t *testing.T) {
	tr := NewProgressTracker()
	tr.Track("Sales", "sales-id")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 500; i++ {
			tr.Apply(tabsync.ProgressEvent{TableID: "sales-id", ObjectID: "p1", RowCount: int64(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = tr.Snapshot()
		}
	}()
	wg.Wait()

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(500), snap[0].RowCount)
}
