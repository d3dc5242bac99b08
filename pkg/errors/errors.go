// Package errors defines the error types shared across missionctl.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error cases.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrUnauthenticated = errors.New("not logged in")
	ErrInvalidInput    = errors.New("invalid input")
)

// ValidationError represents a validation error with field-specific details.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every field failure of a single input.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap lets callers match a validation failure with ErrInvalidInput.
func (e ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Field returns the message for the named field, or "" if it passed.
func (e ValidationErrors) Field(name string) string {
	for _, v := range e {
		if v.Field == name {
			return v.Message
		}
	}
	return ""
}

// OrNil returns nil when no field failed.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// PersistError reports a failed read or write against the key-value store.
// The in-memory state that triggered the write is not rolled back.
type PersistError struct {
	Operation string
	Key       string
	Cause     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s %q failed: %v", e.Operation, e.Key, e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}

// NewPersistError creates a new persistence error.
func NewPersistError(operation, key string, cause error) *PersistError {
	return &PersistError{Operation: operation, Key: key, Cause: cause}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
