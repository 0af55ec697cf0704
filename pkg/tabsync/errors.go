package tabsync

import "errors"

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := deployer.Deploy(ctx, model, opts)
//	if errors.Is(err, tabsync.ErrCancelled) {
//	    // Handle user cancellation
//	}
var (
	// ErrInvalidConfig indicates the provided options are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the metadata store is unreachable or the
	// target database was not found. Nothing has been mutated.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrValidationFailed indicates a pre-apply precondition was violated.
	// Nothing has been sent to the metadata store.
	ErrValidationFailed = errors.New("deployment validation failed")

	// ErrApplyFailed indicates the metadata store rejected the apply script.
	// The apply is atomic at the script level; no partial state is assumed.
	ErrApplyFailed = errors.New("apply failed")

	// ErrProcessingFailed indicates a refresh or commit failed after a
	// successful apply. The model itself is already applied and is not rolled
	// back unless the deployment ran inside a transaction.
	ErrProcessingFailed = errors.New("processing failed")

	// ErrCancelled indicates the deployment was stopped by the user, either
	// during credential collection or via an explicit cancel request.
	ErrCancelled = errors.New("deployment cancelled")

	// ErrCredentialsDeclined indicates the credential callback reported that
	// the user dismissed the request. Treated as cancellation, not failure.
	ErrCredentialsDeclined = errors.New("credentials declined")

	// ErrReferenceNotFound indicates a hard cross-reference could not be
	// resolved in the target graph (for example a partition's data source).
	ErrReferenceNotFound = errors.New("referenced object not found")
)
