package tabsync

import "context"

// Connector establishes sessions against a metadata store server.
// Concrete implementations (network protocols, drivers) live outside this
// module; tests use in-memory fakes.
type Connector interface {
	// Connect opens a session against the given server address.
	// The returned session carries the store-assigned session identifier used
	// for progress correlation and cancellation.
	Connect(ctx context.Context, serverAddress string) (StoreSession, error)

	// FindDatabase verifies that the named database exists on the connected
	// server. Returns an error wrapping ErrConnectionFailed if it does not.
	FindDatabase(ctx context.Context, session StoreSession, databaseName string) error
}

// StoreSession is a live connection to the metadata store.
// All operations are scoped to the session's server connection.
type StoreSession interface {
	// SessionID returns the store-assigned identifier for this session,
	// captured at connect time. Progress events carry the session identifier
	// of the session that caused them.
	SessionID() string

	// Execute runs a command script against the store as a single operation.
	// Script-level errors are reported in the result; transport failures as
	// an error return.
	Execute(ctx context.Context, script string) (*ExecuteResult, error)

	// SubscribeProgress starts delivery of progress events for the server.
	// Events for other sessions are delivered too and must be filtered by the
	// consumer. The returned func tears the subscription down and closes the
	// channel; it must be called on every exit path and must be safe to call
	// more than once.
	SubscribeProgress(ctx context.Context) (<-chan ProgressEvent, func(), error)

	// Refresh triggers a data refresh operation on the store.
	Refresh(ctx context.Context, req RefreshRequest) error

	// CancelSession issues a store-level cancel command for the given
	// session identifier. Best-effort: in-flight events may still arrive.
	CancelSession(ctx context.Context, sessionID string) error

	BeginTransaction(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error

	// Close releases the session.
	Close()
}

// ExecuteResult reports the outcome of a script execution.
type ExecuteResult struct {
	// Errors contains store-reported script errors. Empty means success.
	Errors []string
}

// HasErrors reports whether the store rejected any part of the script.
func (r *ExecuteResult) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// ProgressEvent is one notification from the store's trace/progress stream.
type ProgressEvent struct {
	// SessionID identifies the session that caused the event.
	SessionID string

	// ObjectID is the store-side identifier of the partition being read.
	ObjectID string

	// ObjectName is the display name of the partition.
	ObjectName string

	// TableID is the store-side identifier of the owning table.
	TableID string

	// RowCount is the cumulative number of rows read for the partition.
	RowCount int64
}

// RefreshType selects how much work a refresh performs.
type RefreshType int

const (
	// RefreshAutomatic loads only data the store considers out of date.
	RefreshAutomatic RefreshType = iota

	// RefreshFull reloads all data unconditionally.
	RefreshFull

	// RefreshCalculate recomputes derived structures without loading data.
	// Used when structural changes were applied but no table refresh was
	// requested.
	RefreshCalculate
)

// String returns the store-facing name of the refresh type.
func (t RefreshType) String() string {
	switch t {
	case RefreshFull:
		return "full"
	case RefreshCalculate:
		return "calculate"
	default:
		return "automatic"
	}
}

// RefreshRequest asks the store to refresh one table, or the whole model
// when TableName is empty (calculate-only refresh).
type RefreshRequest struct {
	DatabaseName string
	TableName    string
	Type         RefreshType
}
