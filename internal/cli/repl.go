// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive worked examples.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/session"
	"github.com/agbru/matsteps/internal/ui"
)

// REPL represents an interactive worksheet session. The terminal shows the
// plain rendition while the session keeps the themed document, which the
// save command writes to disk.
type REPL struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
	title   cases.Caser
}

// NewREPL creates a new REPL instance over sess.
func NewREPL(sess *session.Session) *REPL {
	return &REPL{
		session: sess,
		in:      os.Stdin,
		out:     os.Stdout,
		title:   cases.Title(language.English),
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits, EOF is reached or ctx is canceled.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintf(r.out, "\n%sGoodbye!%s\n", ColorGreen(), ColorReset())
			return
		}
		fmt.Fprint(r.out, ColorGreen()+"mat> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s✖️  Matrix Multiplication - Interactive Mode%s          %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %scalc a b c d e f g h%s - Multiply [[a b] [c d]] by [[e f] [g h]]\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sa b c d e f g h%s      - Same as calc\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %stheme <dark|light>%s   - Switch theme and redraw the last result\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sshow%s                 - Display the last result again\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %ssave <file>%s          - Save the themed HTML document\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s               - Display the current session state\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                 - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s          - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "calc", "c":
		r.cmdCalc(ctx, args)
	case "theme", "t":
		r.cmdTheme(args)
	case "show", "s":
		r.cmdShow()
	case "save":
		r.cmdSave(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		// Eight bare values are a quick calculation
		if len(parts) == service.FieldCount {
			r.cmdCalc(ctx, parts)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
		}
	}

	return true
}

// cmdCalc handles the "calc" command.
func (r *REPL) cmdCalc(ctx context.Context, args []string) {
	fields, err := service.FieldsFromSlice(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sUsage: calc a b c d e f g h%s\n", ColorRed(), ColorReset())
		return
	}

	_, err = r.session.Calculate(ctx, fields)
	switch {
	case err == nil:
		r.cmdShow()
	case errors.Is(err, apperrors.ErrInvalidInput):
		DisplayWarning(r.out, apperrors.WarningMessage)
		fmt.Fprintf(r.out, "  (%v)\n", err)
	default:
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
	}
}

// cmdTheme switches the session theme and the terminal colors together.
func (r *REPL) cmdTheme(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: theme <dark|light>%s\n", ColorRed(), ColorReset())
		return
	}
	mode, err := ui.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ColorRed(), err, ColorReset())
		return
	}

	r.session.SetMode(mode)
	ui.ApplyMode(mode)
	fmt.Fprintf(r.out, "Theme changed to: %s%s%s\n", ColorGreen(), r.title.String(string(mode)), ColorReset())
	if r.session.Outcome() != session.OutcomeEmpty {
		fmt.Fprintln(r.out)
		r.cmdShow()
	}
}

// cmdShow redraws the current outcome.
func (r *REPL) cmdShow() {
	switch r.session.Outcome() {
	case session.OutcomeWorksheet:
		fmt.Fprintln(r.out)
		DisplayWorksheet(r.out, r.session.Last().Steps)
		fmt.Fprintln(r.out)
	case session.OutcomeWarning:
		DisplayWarning(r.out, apperrors.WarningMessage)
	default:
		fmt.Fprintf(r.out, "Nothing calculated yet. Try %scalc 1 2 3 4 5 6 7 8%s.\n", ColorYellow(), ColorReset())
	}
}

// cmdSave writes the current document to a file.
func (r *REPL) cmdSave(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: save <file>%s\n", ColorRed(), ColorReset())
		return
	}
	if err := WriteDocumentToFile(args[0], r.session.Document()); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s✓ Document saved to: %s%s%s\n", ColorGreen(), ColorCyan(), args[0], ColorReset())
}

// cmdStatus displays the current session state.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent session:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Theme:    %s%s%s\n", ColorCyan(), r.title.String(string(r.session.Mode())), ColorReset())
	fmt.Fprintf(r.out, "  Showing:  %s%s%s\n", ColorCyan(), r.session.Outcome(), ColorReset())
	if r.session.Outcome() != session.OutcomeEmpty {
		fields := r.session.Fields()
		fmt.Fprintf(r.out, "  Entries:  %s%s%s\n", ColorCyan(), strings.Join(fields[:], " "), ColorReset())
	}
	if ws := r.session.Last(); ws != nil {
		fmt.Fprintf(r.out, "  Result:   %s%s%s\n", ColorGreen(), FormatMatrix(ws.Result()), ColorReset())
	}
	fmt.Fprintln(r.out)
}
