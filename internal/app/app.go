package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/agbru/matsteps/internal/cli"
	"github.com/agbru/matsteps/internal/config"
	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/logging"
	"github.com/agbru/matsteps/internal/server"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/session"
	"github.com/agbru/matsteps/internal/ui"
)

// Application represents the matsteps application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (one-shot, server, REPL).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service formats worksheets for every front end.
	Service service.Service
	// Logger receives diagnostics at the configured level.
	Logger logging.Logger
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
	// In feeds the interactive mode. Nil means os.Stdin.
	In io.Reader
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "matsteps"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}

	return &Application{
		Config:    cfg,
		Service:   service.NewWorksheetService(service.DefaultMaxFieldLength),
		Logger:    logging.NewLeveledLogger(errWriter, "matsteps", level),
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, REPL, or one-shot).
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor, a.Config.Mode())

	if a.Config.ServerMode {
		return a.runServer(ctx, out)
	}

	if a.Config.Interactive {
		return a.runREPL(ctx, out)
	}

	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// newSession builds the viewer state shared by the REPL and the server.
func (a *Application) newSession() *session.Session {
	return session.New(a.Config.Mode(),
		session.WithService(a.Service),
		session.WithDocumentOptions(cli.DocumentOptions(a.Config)),
		session.WithLogger(a.Logger),
	)
}

// runServer starts the HTTP viewer and blocks until a termination signal
// or ctx cancellation.
func (a *Application) runServer(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	srv := server.NewServer(a.Config,
		server.WithLogger(a.Logger),
		server.WithService(a.Service),
		server.WithSession(a.newSession()),
	)

	indicatorCtx, stopIndicator := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cli.ServeIndicator(indicatorCtx, out, srv.URL())
	}()

	err := srv.Start(ctx)
	stopIndicator()
	wg.Wait()

	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive mode. When eight values were given on the
// command line they are calculated before the first prompt.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	sess := a.newSession()
	if len(a.Config.Values) > 0 {
		fields, err := a.Config.Fields()
		if err != nil {
			return apperrors.HandleRenderError(err, a.ErrWriter, ui.TerminalColors{})
		}
		if _, err := sess.Calculate(ctx, fields); err != nil && !errors.Is(err, apperrors.ErrInvalidInput) {
			return apperrors.HandleRenderError(err, a.ErrWriter, ui.TerminalColors{})
		}
	}

	repl := cli.NewREPL(sess)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runCalculate formats the positional values once and prints them in the
// configured format.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	err := cli.RunOnce(ctx, a.Config, a.Service, out)
	if err != nil {
		a.Logger.Debug("calculation failed", logging.String("error", err.Error()))
	}
	return apperrors.HandleRenderError(err, a.ErrWriter, ui.TerminalColors{})
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
