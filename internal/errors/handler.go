package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with cli.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Red() string    { return "" }
func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// WarningMessage is the user-facing text shown instead of the worksheet when
// an entry cannot be parsed.
const WarningMessage = "Please check and enter a numeric value in each field correctly. All fields are required."

// HandleRenderError prints a message for a failed worksheet render and
// returns the matching exit code. Invalid input gets the fixed warning,
// cancellation gets a short status line, anything else is reported as is.
//
// Parameters:
//   - err: The error that occurred.
//   - out: The io.Writer to which the message will be written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleRenderError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	if errors.Is(err, ErrInvalidInput) {
		fmt.Fprintf(out, "%s⚠️ %s%s\n", colors.Red(), WarningMessage, colors.Reset())
		return ExitErrorInput
	}
	if errors.Is(err, ErrNotFiniteResult) {
		fmt.Fprintf(out, "%sStatus: Failure. The products of these entries overflow: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorInput
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "%sStatus: Canceled.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(out, "Configuration error: %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
