package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/agbru/matsteps/internal/config"
	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/matrix"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/testutil"
	"github.com/agbru/matsteps/internal/ui"
)

var exampleArgs = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

func args(flags ...string) []string {
	return append(append([]string{"matsteps"}, flags...), exampleArgs...)
}

func newApp(t *testing.T, argv []string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	app, err := New(argv, &errBuf)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v\n%s", err, errBuf.String())
	}
	return app, &errBuf
}

// TestNew tests the New function for creating Application instances.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Valid args create application", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, args("-theme", "light"))

		if len(app.Config.Values) != service.FieldCount {
			t.Errorf("Expected 8 values, got %d", len(app.Config.Values))
		}
		if app.Config.Mode() != ui.ModeLight {
			t.Errorf("Expected light mode, got %s", app.Config.Mode())
		}
		if app.Service == nil || app.Logger == nil {
			t.Error("Service and Logger should be set")
		}
	})

	t.Run("Invalid theme returns error", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		if _, err := New(args("-theme", "sepia"), &errBuf); err == nil {
			t.Fatal("New() should fail on an unknown theme")
		}
		if !strings.Contains(errBuf.String(), "Configuration error") {
			t.Errorf("usage error missing: %s", errBuf.String())
		}
	})

	t.Run("Wrong number of values returns error", func(t *testing.T) {
		t.Parallel()
		if _, err := New([]string{"matsteps", "1", "2"}, &bytes.Buffer{}); err == nil {
			t.Error("New() should fail with two values")
		}
	})

	t.Run("Server mode needs no values", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, []string{"matsteps", "-server"})
		if !app.Config.ServerMode {
			t.Error("ServerMode should be set")
		}
	})

	t.Run("Help flag", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"matsteps", "-h"}, &bytes.Buffer{})
		if !IsHelpError(err) {
			t.Errorf("IsHelpError(%v) = false", err)
		}
	})

	t.Run("Empty args use program default", func(t *testing.T) {
		t.Parallel()
		if _, err := New(nil, &bytes.Buffer{}); err == nil {
			t.Error("New(nil) should require values")
		}
	})
}

func TestRun_OneShot(t *testing.T) {
	t.Parallel()

	t.Run("Text", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, args())
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if got := testutil.StripAnsiCodes(out.String()); !strings.Contains(got, "Final Result\n  A × B = [19, 22; 43, 50]") {
			t.Errorf("result missing:\n%s", got)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, args("-format", "json"))
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		var report service.Report
		if err := json.Unmarshal(out.Bytes(), &report); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out.String())
		}
		if report.Result != (matrix.Matrix{{19, 22}, {43, 50}}) {
			t.Errorf("Result = %v", report.Result)
		}
	})

	t.Run("Negative values after separator", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, []string{"matsteps", "-q", "--", "-1", "0", "0", "-1", "2", "3", "4", "5"})
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if got := out.String(); got != "[-2, -3; -4, -5]\n" {
			t.Errorf("quiet output = %q", got)
		}
	})

	t.Run("Invalid input", func(t *testing.T) {
		t.Parallel()
		app, errBuf := newApp(t, []string{"matsteps", "1", "2", "3", "4", "5", "6", "7", "eight"})
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitErrorInput {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorInput)
		}
		if !strings.Contains(errBuf.String(), apperrors.WarningMessage) {
			t.Errorf("warning missing: %q", errBuf.String())
		}
		if out.Len() != 0 {
			t.Errorf("nothing should be printed on stdout, got %q", out.String())
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, args())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if code := app.Run(ctx, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
		}
	})
}

func TestRun_Completion(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t, []string{"matsteps", "-completion", "bash"})
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "_matsteps_completions") {
		t.Error("bash completion script missing")
	}

	bad, errBuf := newApp(t, []string{"matsteps", "-completion", "tcsh"})
	if code := bad.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "Error generating completion") {
		t.Errorf("error message missing: %q", errBuf.String())
	}
}

func TestRun_Interactive(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t, args("-interactive"))
	app.In = strings.NewReader("show\nexit\n")
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	got := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(got, "Final Result") {
		t.Errorf("values from the command line should be calculated before the prompt:\n%s", got)
	}
	if !strings.Contains(got, "Goodbye!") {
		t.Error("exit message missing")
	}

	empty, _ := newApp(t, []string{"matsteps", "-interactive"})
	empty.In = strings.NewReader("show\n")
	out.Reset()
	empty.Run(context.Background(), &out)
	if !strings.Contains(testutil.StripAnsiCodes(out.String()), "Nothing calculated yet.") {
		t.Error("a session without values starts blank")
	}
}

func TestRun_Server(t *testing.T) {
	t.Parallel()

	t.Run("Stops on cancel", func(t *testing.T) {
		t.Parallel()
		app, _ := newApp(t, []string{"matsteps", "-server", "-port", "0", "-shutdown-timeout", "1s"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		if code := app.Run(ctx, &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(testutil.StripAnsiCodes(out.String()), "Worksheet viewer at http://127.0.0.1:0/") {
			t.Errorf("indicator line missing: %q", out.String())
		}
	})

	t.Run("Port in use", func(t *testing.T) {
		t.Parallel()
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Skipf("cannot listen: %v", err)
		}
		defer ln.Close()
		_, port, _ := net.SplitHostPort(ln.Addr().String())

		app, errBuf := newApp(t, []string{"matsteps", "-server", "-port", port})
		if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
		}
		if !strings.Contains(errBuf.String(), "Server error:") {
			t.Errorf("error message missing: %q", errBuf.String())
		}
	})
}

func TestNewSession_UsesConfig(t *testing.T) {
	t.Parallel()
	app := &Application{
		Config:  config.AppConfig{Theme: "light", MathJaxURL: "http://localhost/tex.js"},
		Service: service.NewWorksheetService(service.DefaultMaxFieldLength),
	}
	sess := app.newSession()
	if sess.Mode() != ui.ModeLight {
		t.Errorf("mode = %s", sess.Mode())
	}
	if !strings.Contains(sess.Document(), "http://localhost/tex.js") {
		t.Error("document should load the configured MathJax URL")
	}
}
