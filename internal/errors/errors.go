// Package errors provides sentinel errors for the bundler CLI.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewPermissionError creates a permission denied error with details.
func NewPermissionError(message, location string) error {
	return &DetailError{
		Type:     "permission denied",
		Message:  message,
		Location: location,
		Cause:    ErrPermission,
	}
}

// NewDuplicateError reports two paths that map to the same module name.
func NewDuplicateError(name, first, second string) error {
	return &DetailError{
		Type:    "duplicate module name",
		Message: fmt.Sprintf("%s and %s both register %q", first, second, name),
		Context: map[string]string{"Module": name},
		Hint:    "rename one of the files or set onDuplicate: warn to let the later file win",
		Cause:   ErrDuplicate,
	}
}

// FromFS classifies a filesystem error. Not-exist and permission errors are
// wrapped with the matching sentinel; anything else is wrapped with message.
func FromFS(err error, message, location string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &DetailError{
			Type:     "not found",
			Message:  fmt.Sprintf("%s: %v", message, err),
			Location: location,
			Cause:    fmt.Errorf("%w: %w", ErrNotFound, err),
		}
	case errors.Is(err, fs.ErrPermission):
		return &DetailError{
			Type:     "permission denied",
			Message:  fmt.Sprintf("%s: %v", message, err),
			Location: location,
			Cause:    fmt.Errorf("%w: %w", ErrPermission, err),
		}
	default:
		return fmt.Errorf("%s: %w", message, err)
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
