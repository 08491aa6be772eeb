// internal/pkg/apperrors/errors.go
package apperrors

import "errors"

// Sentinel errors for the domain contracts. Handlers map these to HTTP
// statuses; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrInsufficientStock is returned when a distribution or sale asks for
	// more units than the source (company batches or reseller stock) holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition is returned when a goods request action is
	// attempted outside the PENDING, uncancelled state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict is returned when a concurrent modification prevented the
	// operation from committing.
	ErrConflict = errors.New("conflicting concurrent modification")

	// ErrNotFound is returned when the referenced entity does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for request payloads that fail domain rules
	// (empty goods-request payload, non-positive quantity, missing comment).
	ErrValidation = errors.New("validation failed")
)
