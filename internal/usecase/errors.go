package usecase

import "errors"

// Sentinels shared by every service. Handlers map them to HTTP statuses, so
// wrap them with %w instead of returning new error values.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrConflict is returned once the ledger version token kept moving for
	// every attempt.
	ErrConflict = errors.New("ledger version conflict")
	// ErrPartialFailure means some player stat updates failed; the report
	// that comes with it lists which ones.
	ErrPartialFailure        = errors.New("partial failure")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
