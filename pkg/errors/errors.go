package errors

import (
	"errors"
	"fmt"
)

// Application error taxonomy. Handlers map these onto HTTP statuses; the
// notification path never produces them because its failures are swallowed.

var (
	// ErrInvalidInput indicates a submission that failed field validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable indicates the document store was never configured
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorage indicates a document store operation failed
	ErrStorage = errors.New("storage error")
)

// InvalidInputError creates a validation error naming the offending field
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// StorageUnavailableError creates a storage-unavailable error with context
func StorageUnavailableError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrStorageUnavailable)
	}
	return ErrStorageUnavailable
}

// StorageError wraps a failed store operation, preserving the underlying cause
func StorageError(operation string, cause error) error {
	return fmt.Errorf("%s: %v: %w", operation, cause, ErrStorage)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
