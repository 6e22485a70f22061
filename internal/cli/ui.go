// The cli package provides the terminal side of matsteps: printing worked
// examples in color, writing documents to files, the interactive REPL and
// the indicator shown while the viewer is running.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/agbru/matsteps/internal/matrix"
	"github.com/agbru/matsteps/internal/steps"
	"github.com/agbru/matsteps/internal/ui"
)

const (
	// IndicatorRefreshRate defines the refresh frequency of the spinner.
	IndicatorRefreshRate = 200 * time.Millisecond
)

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.ColorReset() }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.ColorRed() }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.ColorGreen() }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.ColorYellow() }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.ColorBlue() }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.ColorMagenta() }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.ColorCyan() }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.ColorBold() }

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var isTerminal = IsTerminal

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], IndicatorRefreshRate, options...)
	return &realSpinner{s}
}

// ServeIndicator shows a spinner with the viewer address on out until ctx is
// done. It prints a single line instead when out is not a terminal.
func ServeIndicator(ctx context.Context, out io.Writer, url string) {
	msg := fmt.Sprintf(" Worksheet viewer at %s%s%s (Ctrl+C to stop)", ColorCyan(), url, ColorReset())
	if !isTerminal(out) {
		fmt.Fprintln(out, strings.TrimSpace(msg))
		<-ctx.Done()
		return
	}
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(msg)
	s.Start()
	<-ctx.Done()
	s.Stop()
}

// DisplayWorksheet prints the steps as colored text.
func DisplayWorksheet(out io.Writer, ws []steps.Step) {
	for i, s := range ws {
		if i > 0 {
			fmt.Fprintln(out)
		}
		headingColor := ColorBlue()
		exprColor := ColorCyan()
		if s.Final {
			headingColor = ColorGreen()
			exprColor = ColorGreen()
		}
		fmt.Fprintf(out, "%s%s%s%s\n", ColorBold(), headingColor, s.Heading(), ColorReset())
		for _, e := range s.Expressions {
			fmt.Fprintf(out, "  %s%s%s\n", exprColor, e.Text, ColorReset())
		}
	}
}

// FormatMatrix renders m on one line, e.g. "[19, 22; 43, 50]".
func FormatMatrix(m matrix.Matrix) string {
	return fmt.Sprintf("[%s, %s; %s, %s]",
		steps.FormatNumber(m[0][0]), steps.FormatNumber(m[0][1]),
		steps.FormatNumber(m[1][0]), steps.FormatNumber(m[1][1]))
}

// DisplayWarning prints the invalid input warning in red.
func DisplayWarning(out io.Writer, msg string) {
	fmt.Fprintf(out, "%s⚠️ %s%s\n", ColorRed(), msg, ColorReset())
}
