package tabsync

import (
	"errors"
	"fmt"
)

// MergePolicy selects how perspectives and cultures are reconciled during
// synchronization.
type MergePolicy int

const (
	// MergePolicyReplace deletes the target entity and recreates it verbatim
	// from the source definition.
	MergePolicyReplace MergePolicy = iota

	// MergePolicyMerge recreates the entity from the backed-up target
	// definition and then reconciles it with the source definition,
	// preserving target-only entries the source does not mention.
	MergePolicyMerge
)

// String returns the policy name as used in configuration files.
func (p MergePolicy) String() string {
	if p == MergePolicyMerge {
		return "merge"
	}
	return "replace"
}

// RoleMemberMatchPolicy selects how role members are matched between source
// and target during role reconciliation. Identity providers differ on
// whether a stable member identifier is available, so the rule is
// configuration-driven rather than inferred.
type RoleMemberMatchPolicy int

const (
	// MatchMembersByID matches members on their member identifier when one
	// is present, falling back to name for members without one.
	MatchMembersByID RoleMemberMatchPolicy = iota

	// MatchMembersByName always matches members on their name.
	MatchMembersByName
)

// ProcessingMode selects what data refresh runs after a successful apply.
type ProcessingMode int

const (
	// ProcessDefault refreshes requested tables with the automatic policy.
	ProcessDefault ProcessingMode = iota

	// ProcessFull refreshes requested tables with the full policy.
	ProcessFull

	// ProcessNone skips data refresh entirely. Structural changes still get
	// a calculation-only refresh.
	ProcessNone
)

// String returns the mode name as used in configuration files.
func (m ProcessingMode) String() string {
	switch m {
	case ProcessFull:
		return "full"
	case ProcessNone:
		return "none"
	default:
		return "default"
	}
}

// RefreshTypeFor maps the processing mode to the per-table refresh type.
func (m ProcessingMode) RefreshTypeFor() RefreshType {
	if m == ProcessFull {
		return RefreshFull
	}
	return RefreshAutomatic
}

// SyncOptions control how the synchronizer reconciles the target model with
// the source model.
type SyncOptions struct {
	// PerspectiveMergePolicy selects replace or merge reconciliation for
	// perspectives.
	PerspectiveMergePolicy MergePolicy

	// CultureMergePolicy selects replace or merge reconciliation for
	// cultures.
	CultureMergePolicy MergePolicy

	// RoleMemberMatchPolicy selects how role members are matched.
	RoleMemberMatchPolicy RoleMemberMatchPolicy
}

// Validate checks the options for invalid values.
func (o *SyncOptions) Validate() error {
	var errs []error

	if o.PerspectiveMergePolicy != MergePolicyReplace && o.PerspectiveMergePolicy != MergePolicyMerge {
		errs = append(errs, fmt.Errorf("unknown perspective merge policy %d: %w", o.PerspectiveMergePolicy, ErrInvalidConfig))
	}
	if o.CultureMergePolicy != MergePolicyReplace && o.CultureMergePolicy != MergePolicyMerge {
		errs = append(errs, fmt.Errorf("unknown culture merge policy %d: %w", o.CultureMergePolicy, ErrInvalidConfig))
	}
	if o.RoleMemberMatchPolicy != MatchMembersByID && o.RoleMemberMatchPolicy != MatchMembersByName {
		errs = append(errs, fmt.Errorf("unknown role member match policy %d: %w", o.RoleMemberMatchPolicy, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// DeployOptions contains all parameters needed for a deployment operation.
type DeployOptions struct {
	// ServerAddress is the metadata store server to deploy to.
	ServerAddress string

	// DatabaseName is the target database name.
	DatabaseName string

	// ProcessingMode selects the refresh policy for requested tables.
	ProcessingMode ProcessingMode

	// ProcessTables names the tables to refresh after apply. When empty and
	// structural changes occurred, a calculation-only refresh runs instead.
	ProcessTables []string

	// StructuralChanges indicates the synchronization pass changed model
	// structure, requiring at least a calculation-only refresh.
	StructuralChanges bool

	// UseTransaction wraps processing in a store transaction. Cancellation
	// then rolls the transaction back instead of best-effort cancel.
	UseTransaction bool

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the DeployOptions have all required fields and valid
// values. It returns a multi-error if multiple validation failures occur.
func (o *DeployOptions) Validate() error {
	var errs []error

	if o.ServerAddress == "" {
		errs = append(errs, fmt.Errorf("ServerAddress is required: %w", ErrInvalidConfig))
	}
	if o.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}
	if o.ProcessingMode != ProcessDefault && o.ProcessingMode != ProcessFull && o.ProcessingMode != ProcessNone {
		errs = append(errs, fmt.Errorf("unknown processing mode %d: %w", o.ProcessingMode, ErrInvalidConfig))
	}
	if o.ProcessingMode == ProcessNone && len(o.ProcessTables) > 0 {
		errs = append(errs, fmt.Errorf("ProcessTables set but processing mode is none: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
