// Package common defines the sentinel errors and error types shared across
// the supanews client layers. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session-level errors.
	ErrNotAuthenticated = errors.New("not authenticated, please log in")

	// Transport-level errors (backend unreachable or timed out).
	ErrUnavailable = errors.New("backend unavailable")
)

// BackendError is a query or mutation the backend rejected. The backend's
// own message is passed through so the user sees the real reason
// (e.g. a row-level policy denial on delete).
type BackendError struct {
	Status  int    // HTTP status, 0 when the request never completed
	Code    string // backend error code, e.g. "PGRST116"
	Message string
	Err     error // wrapped transport error, if any
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

func (e *BackendError) Unwrap() error { return e.Err }

// StorageError is an upload or public-URL resolution failure.
// BucketMissing is set when the named storage bucket does not exist,
// so the shell can show the configuration remedy.
type StorageError struct {
	Message       string
	BucketMissing bool
	Err           error
}

func (e *StorageError) Error() string { return e.Message }

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError is a client-side required-field failure, caught before any
// network call and shown inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
