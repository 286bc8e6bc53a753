package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrPromotionDenied   = errors.New("promotion denied")
	ErrRemotePropagation = errors.New("remote propagation failed")
	ErrSyncFailed        = errors.New("sync failed")
)

// RemoteWarning reports a failed best-effort propagation to the canonical
// store. The local mutation has already been applied when this is returned,
// so callers treat it as "success with warning", not a failure.
type RemoteWarning struct {
	Op  string
	Err error
}

func (w *RemoteWarning) Error() string {
	return fmt.Sprintf("remote propagation: %s: %v", w.Op, w.Err)
}

func (w *RemoteWarning) Unwrap() error { return ErrRemotePropagation }

// NewRemoteWarning wraps a remote store error for the given operation.
func NewRemoteWarning(op string, err error) *RemoteWarning {
	return &RemoteWarning{Op: op, Err: err}
}

// PromotionDeniedError carries the governance rejection reason and the
// version that was rejected.
type PromotionDeniedError struct {
	Reason    string
	VersionID string
}

func (e *PromotionDeniedError) Error() string {
	return fmt.Sprintf("promotion denied (version %s): %s", e.VersionID, e.Reason)
}

func (e *PromotionDeniedError) Unwrap() error { return ErrPromotionDenied }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from collected field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
