// Package config provides the configuration management for the matsteps application.
// This file contains environment variable utilities for configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5s", "1m30s".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - MATSTEPS_THEME: Viewer theme (string: dark, light)
//   - MATSTEPS_FORMAT: Output format (string: text, html, json)
//   - MATSTEPS_PORT: Port for server mode (string)
//   - MATSTEPS_HOST: Listen interface for server mode (string)
//   - MATSTEPS_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - MATSTEPS_INTERACTIVE: Enable interactive REPL mode (bool)
//   - MATSTEPS_QUIET: Enable quiet mode (bool)
//   - MATSTEPS_NO_COLOR: Disable colored output (bool)
//   - MATSTEPS_OUTPUT: Output file path (string)
//   - MATSTEPS_MATHJAX_URL: MathJax script URL (string)
//   - MATSTEPS_LOG_LEVEL: Log level (string)
//   - MATSTEPS_RATE_LIMIT: Requests per minute per client (int)
//   - MATSTEPS_SHUTDOWN_TIMEOUT: Graceful shutdown timeout (duration: "10s")
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyStringOverrides(config, fs)
	applyNumericOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "theme") {
		config.Theme = getEnvString("THEME", config.Theme)
	}
	if !isFlagSet(fs, "format") {
		config.Format = getEnvString("FORMAT", config.Format)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "host") {
		config.Host = getEnvString("HOST", config.Host)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "mathjax-url") {
		config.MathJaxURL = getEnvString("MATHJAX_URL", config.MathJaxURL)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "rate-limit") {
		config.RateLimit = getEnvInt("RATE_LIMIT", config.RateLimit)
	}
	if !isFlagSet(fs, "shutdown-timeout") {
		config.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", config.ShutdownTimeout)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "interactive") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
