package config

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/ui"
)

var exampleArgs = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("matsteps", exampleArgs, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		want := AppConfig{
			Values:          exampleArgs,
			Theme:           "dark",
			Format:          "text",
			Port:            "8080",
			Host:            "127.0.0.1",
			LogLevel:        "info",
			RateLimit:       120,
			ShutdownTimeout: 10 * time.Second,
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("default config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-theme", "LIGHT",
			"-format", "json",
			"-o", "out.html",
			"-q",
			"-no-color",
			"-mathjax-url", "http://localhost/mathjax.js",
			"-log-level", "debug",
			"--", "-1", "2", "3", "4", "5", "6", "7", "8",
		}
		cfg, err := ParseConfig("matsteps", args, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Theme != "light" {
			t.Errorf("Expected Theme 'light', got %s", cfg.Theme)
		}
		if cfg.Mode() != ui.ModeLight {
			t.Errorf("Expected light mode, got %s", cfg.Mode())
		}
		if cfg.Format != FormatJSON {
			t.Errorf("Expected Format json, got %s", cfg.Format)
		}
		if cfg.OutputFile != "out.html" {
			t.Errorf("Expected OutputFile out.html, got %s", cfg.OutputFile)
		}
		if !cfg.Quiet || !cfg.NoColor {
			t.Error("Expected Quiet and NoColor true")
		}
		if cfg.MathJaxURL != "http://localhost/mathjax.js" {
			t.Errorf("Expected MathJaxURL override, got %s", cfg.MathJaxURL)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected LogLevel debug, got %s", cfg.LogLevel)
		}
		if cfg.Values[0] != "-1" {
			t.Errorf("Expected negative first value after --, got %v", cfg.Values)
		}
	})

	t.Run("ServerWithoutValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("matsteps", []string{"-server", "-port", "9090", "-host", "0.0.0.0", "-rate-limit", "30", "-shutdown-timeout", "3s"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !cfg.ServerMode {
			t.Error("Expected ServerMode true")
		}
		if cfg.Port != "9090" || cfg.Host != "0.0.0.0" {
			t.Errorf("Expected 0.0.0.0:9090, got %s:%s", cfg.Host, cfg.Port)
		}
		if cfg.RateLimit != 30 {
			t.Errorf("Expected RateLimit 30, got %d", cfg.RateLimit)
		}
		if cfg.ShutdownTimeout != 3*time.Second {
			t.Errorf("Expected ShutdownTimeout 3s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("InteractiveAndCompletionWithoutValues", func(t *testing.T) {
		t.Parallel()
		for _, args := range [][]string{{"-interactive"}, {"-completion", "bash"}} {
			if _, err := ParseConfig("matsteps", args, io.Discard); err != nil {
				t.Errorf("ParseConfig(%v) unexpected error: %v", args, err)
			}
		}
	})

	t.Run("InvalidFlags", func(t *testing.T) {
		t.Parallel()
		_, err := ParseConfig("matsteps", []string{"-unknown"}, io.Discard)
		if err == nil {
			t.Error("Expected error for unknown flag")
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		_, err := ParseConfig("matsteps", []string{"1", "2", "3"}, &buf)
		if err == nil {
			t.Fatal("Expected error for missing values")
		}
		out := buf.String()
		if !strings.Contains(out, "Configuration error: expected 8 matrix entries") {
			t.Errorf("Expected configuration error in output, got %q", out)
		}
		if !strings.Contains(out, "Matrix Multiplication Steps") {
			t.Error("Expected usage after the configuration error")
		}
	})
}

func TestParseConfigEnvOverrides(t *testing.T) {
	env := map[string]string{
		"THEME":            "light",
		"FORMAT":           "html",
		"PORT":             "3000",
		"HOST":             "0.0.0.0",
		"SERVER":           "true",
		"INTERACTIVE":      "yes",
		"QUIET":            "1",
		"NO_COLOR":         "true",
		"OUTPUT":           "sheet.html",
		"MATHJAX_URL":      "http://cdn.local/tex.js",
		"LOG_LEVEL":        "warn",
		"RATE_LIMIT":       "60",
		"SHUTDOWN_TIMEOUT": "2s",
	}
	for k, v := range env {
		t.Setenv(EnvPrefix+k, v)
	}

	cfg, err := ParseConfig("matsteps", nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := AppConfig{
		Theme:           "light",
		Format:          "html",
		ServerMode:      true,
		Port:            "3000",
		Host:            "0.0.0.0",
		Interactive:     true,
		OutputFile:      "sheet.html",
		Quiet:           true,
		NoColor:         true,
		MathJaxURL:      "http://cdn.local/tex.js",
		LogLevel:        "warn",
		RateLimit:       60,
		ShutdownTimeout: 2 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("env config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigFlagPrecedenceOverEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"THEME", "light")
	t.Setenv(EnvPrefix+"QUIET", "false")
	t.Setenv(EnvPrefix+"RATE_LIMIT", "not-a-number")

	cfg, err := ParseConfig("matsteps", append([]string{"-theme", "dark", "-q"}, exampleArgs...), io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Expected Theme dark from flag, got %s", cfg.Theme)
	}
	if !cfg.Quiet {
		t.Error("Expected Quiet true from shorthand flag")
	}
	if cfg.RateLimit != DefaultRateLimit {
		t.Errorf("invalid env value should keep the default, got %d", cfg.RateLimit)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{
		Values:          exampleArgs,
		Theme:           "dark",
		Format:          "text",
		LogLevel:        "info",
		RateLimit:       1,
		ShutdownTimeout: time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"Valid", func(*AppConfig) {}, ""},
		{"InvalidTheme", func(c *AppConfig) { c.Theme = "solarized" }, "solarized"},
		{"InvalidFormat", func(c *AppConfig) { c.Format = "pdf" }, "unrecognized format"},
		{"InvalidLogLevel", func(c *AppConfig) { c.LogLevel = "trace" }, "unknown log level"},
		{"InvalidRateLimit", func(c *AppConfig) { c.RateLimit = 0 }, "rate limit"},
		{"InvalidShutdownTimeout", func(c *AppConfig) { c.ShutdownTimeout = 0 }, "shutdown timeout"},
		{"MissingValues", func(c *AppConfig) { c.Values = exampleArgs[:7] }, "got 7"},
		{"ServerIgnoresValues", func(c *AppConfig) { c.Values = nil; c.ServerMode = true }, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected validation error: %v", err)
				}
				return
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if !strings.Contains(cfgErr.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, cfgErr.Error())
			}
		})
	}
}

func TestAppConfigFields(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{Values: exampleArgs}
	fields, err := cfg.Fields()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := service.Fields{"1", "2", "3", "4", "5", "6", "7", "8"}
	if fields != want {
		t.Errorf("Fields() = %v, want %v", fields, want)
	}
}

func TestAppConfigMode(t *testing.T) {
	t.Parallel()
	if got := (AppConfig{Theme: "light"}).Mode(); got != ui.ModeLight {
		t.Errorf("Mode() = %s, want light", got)
	}
	if got := (AppConfig{Theme: "bogus"}).Mode(); got != ui.ModeDark {
		t.Errorf("Mode() = %s, want dark fallback", got)
	}
}

func TestUsage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	_, err := ParseConfig("matsteps", []string{"-h"}, &buf)
	if err == nil {
		t.Fatal("Expected flag.ErrHelp")
	}
	out := buf.String()
	for _, want := range []string{
		"Matrix Multiplication Steps",
		"matsteps [flags] a b c d e f g h",
		"-theme string",
		"(default dark)",
		"-format string",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("usage should not contain ANSI codes when NO_COLOR is set")
	}
}
