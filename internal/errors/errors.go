// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// input, server) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types carrying a cause implement Unwrap() to support errors.Is()
// and errors.As().
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates that a matrix entry was not a number.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrInvalidInput is the sentinel matched by every InputError.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFiniteResult reports finite entries whose products overflow, which
// JSON cannot represent.
var ErrNotFiniteResult = errors.New("result is not finite")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InputError reports a matrix entry that could not be read as a finite real
// number. It is the single error kind of the step formatter: callers replace
// the whole worksheet with the warning fragment when they see it.
type InputError struct {
	// Field is the entry name, "a" through "h".
	Field string
	// Value is the raw text that was rejected.
	Value string
	// Cause is the parse error, if any.
	Cause error
}

// Error returns a message naming the offending field.
func (e InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input for '%s': value is required", e.Field)
	}
	return fmt.Sprintf("invalid input for '%s': %q is not a number", e.Field, e.Value)
}

// Unwrap returns the parse error.
func (e InputError) Unwrap() error { return e.Cause }

// Is makes every InputError match ErrInvalidInput.
func (e InputError) Is(target error) bool { return target == ErrInvalidInput }

// NewInputError creates a new InputError.
//
// Parameters:
//   - field: The entry name.
//   - value: The raw text.
//   - cause: The underlying parse error (can be nil).
//
// Returns:
//   - error: A new InputError instance.
func NewInputError(field, value string, cause error) error {
	return InputError{Field: field, Value: value, Cause: cause}
}

// ServerError represents errors that occur in the HTTP server component.
// It wraps an underlying error with additional context specific to the server operation.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError.
// It combines the descriptive message and the underlying cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
