package tabsync

// DeploymentPhase is the orchestrator's current state.
type DeploymentPhase int

const (
	PhaseIdle DeploymentPhase = iota
	PhaseValidating
	PhaseScripting
	PhaseApplying
	PhaseCollectingCredentials
	PhaseProcessing
	PhaseCompleted
	PhaseFailed
	PhaseCancelled
)

// String returns the human-readable phase name.
func (p DeploymentPhase) String() string {
	switch p {
	case PhaseValidating:
		return "Validating"
	case PhaseScripting:
		return "Scripting"
	case PhaseApplying:
		return "Applying"
	case PhaseCollectingCredentials:
		return "CollectingCredentials"
	case PhaseProcessing:
		return "Processing"
	case PhaseCompleted:
		return "Completed"
	case PhaseFailed:
		return "Failed"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Idle"
	}
}

// Terminal reports whether the phase is a final state.
func (p DeploymentPhase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed || p == PhaseCancelled
}

// TableState is the per-table processing outcome.
type TableState int

const (
	TableStatePending TableState = iota
	TableStateProcessing
	TableStateDone
	TableStateErrored
	TableStateCancelled
)

// String returns the human-readable state name.
func (s TableState) String() string {
	switch s {
	case TableStateProcessing:
		return "Processing"
	case TableStateDone:
		return "Done"
	case TableStateErrored:
		return "Errored"
	case TableStateCancelled:
		return "Cancelled"
	default:
		return "Pending"
	}
}

// TableStatus is a point-in-time snapshot of one table's refresh progress.
type TableStatus struct {
	Name     string
	State    TableState
	RowCount int64
}

// DeploymentStatus is a point-in-time snapshot of the whole deployment,
// safe to read while the processing phase runs in the background.
type DeploymentStatus struct {
	Phase  DeploymentPhase
	Tables []TableStatus
}
