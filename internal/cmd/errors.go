package cmd

import (
	"errors"
	"fmt"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a configuration validation failure.
	ErrValidation = errors.New("validation error")

	// ErrBundle indicates a bundling step failure.
	ErrBundle = errors.New("bundle error")

	// ErrSetup indicates the output root could not be prepared.
	ErrSetup = errors.New("setup error")

	// ErrNotFound indicates an entry point, tool, or config file was not found.
	ErrNotFound = errors.New("not found")
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for ExitError first
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrBundle):
		return ExitBundleError
	case errors.Is(err, ErrSetup):
		return ExitSetupError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// WrapValidation wraps an error with ErrValidation.
func WrapValidation(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrValidation, err)
}

// WrapBundle wraps an error with ErrBundle.
func WrapBundle(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrBundle, err)
}

// WrapSetup wraps an error with ErrSetup.
func WrapSetup(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrSetup, err)
}

// WrapNotFound wraps an error with ErrNotFound.
func WrapNotFound(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
}
