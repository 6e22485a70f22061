// Package config provides the configuration management for the matsteps application.
// It defines the data structure for the configuration, handles the parsing of
// command-line arguments, and performs validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/logging"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/ui"
)

const (
	// EnvPrefix is the prefix for all environment variables used by matsteps.
	// Environment variables provide an alternative to CLI flags for configuration,
	// following the 12-Factor App methodology.
	EnvPrefix = "MATSTEPS_"
)

// Output formats accepted by -format.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatHTML, FormatJSON}

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultTheme is the theme of the viewer at startup.
	DefaultTheme = string(ui.ModeDark)
	// DefaultFormat is the one-shot output format.
	DefaultFormat = FormatText
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultHost is the default listen address of the viewer.
	DefaultHost = "127.0.0.1"
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultRateLimit is the default number of requests per minute per client.
	DefaultRateLimit = 120
	// DefaultShutdownTimeout bounds the graceful shutdown of the viewer.
	DefaultShutdownTimeout = 10 * time.Second
)

// AppConfig aggregates the application's configuration parameters, parsed from
// command-line flags and MATSTEPS_ environment variables.
type AppConfig struct {
	// Values holds the positional matrix entries a b c d e f g h.
	Values []string
	// Theme is the palette used for the document ("dark" or "light").
	Theme string
	// Format selects the one-shot output: "text", "html" or "json".
	Format string
	// ServerMode, if true, starts the HTTP viewer.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Host specifies the interface to listen on in server mode.
	Host string
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// OutputFile, if specified, receives the full HTML document.
	OutputFile string
	// Quiet mode prints only the result matrix.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// Completion, if set, generates shell completion script for the specified shell.
	// Valid values are: "bash", "zsh", "fish", "powershell".
	Completion string
	// MathJaxURL overrides the script loaded by the viewer document.
	MathJaxURL string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// RateLimit is the number of requests per minute accepted from one client.
	RateLimit int
	// ShutdownTimeout bounds the graceful shutdown of the viewer.
	ShutdownTimeout time.Duration
}

// Mode returns the configured theme. It falls back to dark for values that
// did not pass validation.
func (c AppConfig) Mode() ui.Mode {
	m, err := ui.ParseMode(c.Theme)
	if err != nil {
		return ui.ModeDark
	}
	return m
}

// Fields returns the positional values as the eight raw entries.
func (c AppConfig) Fields() (service.Fields, error) {
	return service.FieldsFromSlice(c.Values)
}

// NeedsValues reports whether the selected mode requires positional values.
func (c AppConfig) NeedsValues() bool {
	return !c.ServerMode && !c.Interactive && c.Completion == ""
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if _, err := ui.ParseMode(c.Theme); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if !isFormat(c.Format) {
		return apperrors.NewConfigError("unrecognized format: '%s'. Valid formats are: [%s]", c.Format, strings.Join(Formats, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.RateLimit <= 0 {
		return apperrors.NewConfigError("rate limit must be strictly positive: %d", c.RateLimit)
	}
	if c.ShutdownTimeout <= 0 {
		return apperrors.NewConfigError("shutdown timeout must be strictly positive")
	}
	if c.NeedsValues() && len(c.Values) != service.FieldCount {
		return apperrors.NewConfigError("expected %d matrix entries (a b c d e f g h), got %d", service.FieldCount, len(c.Values))
	}
	return nil
}

func isFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values, and
// handles the parsing process. After parsing, it performs validation on the
// resulting configuration.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Viewer theme: 'dark' or 'light'.")
	fs.StringVar(&config.Format, "format", DefaultFormat, fmt.Sprintf("Output format: one of [%s].", strings.Join(Formats, ", ")))
	fs.BoolVar(&config.ServerMode, "server", false, "Start the HTTP viewer.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.Host, "host", DefaultHost, "Interface to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the HTML document to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result matrix.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.MathJaxURL, "mathjax-url", "", "MathJax script loaded by the viewer document.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn or error.")
	fs.IntVar(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per minute accepted from one client in server mode.")
	fs.DurationVar(&config.ShutdownTimeout, "shutdown-timeout", DefaultShutdownTimeout, "Maximum time to wait for in-flight requests on shutdown.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Values = fs.Args()

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Theme = strings.ToLower(strings.TrimSpace(config.Theme))
	config.Format = strings.ToLower(strings.TrimSpace(config.Format))
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
