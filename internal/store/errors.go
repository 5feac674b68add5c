package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the normal outcome when a lookup names an id or slot
	// that does not exist. Callers branch on it; it is not a failure.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable means the backing location could not be
	// created or opened at all.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError names the first missing or malformed field of a record
// input, in schema terms (name, age, contact, last_visit).
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: field %q is missing or malformed", e.Field)
}

// StorageError wraps an engine-level failure. The raw cause goes to the
// diagnostic log; callers see only this typed result.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
