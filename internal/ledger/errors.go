package ledger

import "errors"

var (
	// ErrValidation is returned when caller input fails a precondition.
	// It is raised before the store is touched.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when the store rejects a write because of a
	// uniqueness or foreign-key constraint.
	ErrConflict = errors.New("constraint violation")

	// ErrNotFound is returned when an id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable is returned when the store cannot be opened.
	ErrStoreUnavailable = errors.New("store unavailable")
)
