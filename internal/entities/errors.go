package entities

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the store and the journal service. Match with errors.Is.
var (
	// ErrUninitialized means the store was used before it was opened or after it
	// was closed. It is a setup ordering bug, not something to retry.
	ErrUninitialized = errors.New("store not initialized")

	// ErrNotFound means a mutation targeted an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat means an import payload failed structural validation.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrStorageFailure means the underlying durable write or read failed.
	ErrStorageFailure = errors.New("storage failure")

	// ErrValidation means a draft or patch carried an out-of-range value.
	ErrValidation = errors.New("validation error")
)

// Codes returned by ErrorCode.
const (
	CodeUninitialized  = "UNINITIALIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeStorageFailure = "STORAGE_FAILURE"
	CodeValidation     = "VALIDATION"
)

// StorageError wraps a driver error with the operation that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// NewStorageError wraps err as a storage failure. A nil err yields nil, and errors
// that already carry a kind are returned unchanged.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if ErrorCode(err) != "" {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// ImportError describes why an import payload was rejected.
type ImportError struct {
	Detail string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import data: %s: %v", e.Detail, e.Err)
	}
	return "invalid import data: " + e.Detail
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func (e *ImportError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ValidationError names the field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ErrorCode maps err to its kind code, or "" when err carries no known kind.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUninitialized):
		return CodeUninitialized
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidFormat):
		return CodeInvalidFormat
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrStorageFailure):
		return CodeStorageFailure
	}
	return ""
}
