package usecases

import "errors"

// Error kinds surfaced by the reconciliation engine. All are local,
// recoverable conditions; handlers map them to HTTP statuses.
var (
	// ErrNotFound means an id does not resolve or belongs to another company
	ErrNotFound = errors.New("not found")
	// ErrConflict means an active reconciliation already exists for the pair,
	// or a terminal reconciliation was asked to transition again
	ErrConflict = errors.New("conflict")
	// ErrInvalidRule means a matching rule's criteria or action is malformed
	ErrInvalidRule = errors.New("invalid rule")
	// ErrConfigurationMissing means the company's bank control account code is
	// not provisioned; accounting-side operations cannot proceed
	ErrConfigurationMissing = errors.New("bank control account not configured")
)
