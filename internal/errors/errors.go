// Package errors provides a lightweight structured error type (PressError)
// for category-based classification and process exit-code mapping.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies a PressError for exit-code mapping and logging.
type Category string

const (
	// User-facing configuration and input errors.
	CategoryConfig Category = "config"

	// A required external tool is absent from the executable search path.
	CategoryDeps Category = "deps"

	// The filesystem notification subscription could not be established.
	CategoryWatch Category = "watch"

	// An external tool invocation failed during the build pipeline.
	CategoryBuild Category = "build"

	// Everything else.
	CategoryRuntime Category = "runtime"
)

// Process exit codes. Kept stable; scripts depend on them.
const (
	ExitOK    = 0
	ExitError = 1
	ExitHelp  = 3
	ExitDeps  = 4
	ExitWatch = 5
)

// PressError is a structured error with a category and optional cause.
type PressError struct {
	Category Category
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *PressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap supports errors.Is/As chains.
func (e *PressError) Unwrap() error {
	return e.Cause
}

// New creates a new PressError.
func New(category Category, message string) *PressError {
	return &PressError{Category: category, Message: message}
}

// Wrap creates a PressError wrapping an existing error.
func Wrap(err error, category Category, message string) *PressError {
	return &PressError{Category: category, Message: message, Cause: err}
}

// ExitCode derives the process exit code for an error. Nil maps to ExitOK;
// errors without a category map to ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var pe *PressError
	if !errors.As(err, &pe) {
		return ExitError
	}
	switch pe.Category {
	case CategoryDeps:
		return ExitDeps
	case CategoryWatch:
		return ExitWatch
	default:
		return ExitError
	}
}
