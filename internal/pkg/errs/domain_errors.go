package errs

import "errors"

// Error categories shared by every lending component. Specific errors wrap one of these
// so that callers can branch on the category without knowing the concrete cause.
var (
	ErrNotFound        = errors.New("not found")
	ErrOutOfStock      = errors.New("out of stock")
	ErrInvalidState    = errors.New("invalid state")
	ErrDuplicate       = errors.New("duplicate")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Store or network failure; safe for the caller to retry.
	ErrUnavailable = errors.New("unavailable")

	// A multi-step operation failed after its first guarded mutation committed.
	ErrPartialFailure = errors.New("partial failure")

	// Marks a PartialFailure whose first mutation could not be undone; the stored state
	// is inconsistent until an operator repairs it.
	ErrNeedsReconciliation = errors.New("needs reconciliation")
)
