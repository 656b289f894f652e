package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a configuration schema validation failure.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a directory, license source, or artifact was not found.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates two module files resolved to the same dotted name.
	ErrDuplicate = errors.New("duplicate module name")
)
