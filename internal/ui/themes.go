// Package ui provides theme and color support for the application's user interface.
// It defines the dark and light modes, the page palettes used by the rendered
// worksheet, and the ANSI escape codes used by the terminal front ends.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between formatting logic and presentation.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Mode is the presentation color scheme selected by the user.
type Mode string

const (
	// ModeDark is the default scheme.
	ModeDark Mode = "dark"
	// ModeLight is the alternative scheme.
	ModeLight Mode = "light"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{ModeDark, ModeLight}

// ParseMode converts a user-supplied name into a Mode. Matching is
// case-insensitive and ignores surrounding white space.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q (accepted values: dark, light)", name)
}

// Palette holds the CSS colors of a rendered worksheet page.
type Palette struct {
	Background  string
	Text        string
	Border      string
	Focus       string
	Header      string
	Matrix      string
	Calculation string
	Final       string
	Warning     string
	Button      string
	ButtonHover string
}

var (
	// DarkPalette is the GitHub-dark inspired page palette.
	DarkPalette = Palette{
		Background:  "#0d1117",
		Text:        "#c9d1d9",
		Border:      "#30363d",
		Focus:       "#58a6ff",
		Header:      "#4192f0",
		Matrix:      "#db2c52",
		Calculation: "#0d9e66",
		Final:       "#291be3",
		Warning:     "red",
		Button:      "#238636",
		ButtonHover: "#2ea043",
	}

	// LightPalette is the page palette for light backgrounds.
	LightPalette = Palette{
		Background:  "#ffffff",
		Text:        "#1f1f1f",
		Border:      "#d0d7de",
		Focus:       "#58a6ff",
		Header:      "#d60326",
		Matrix:      "#400612",
		Calculation: "#bc4c00",
		Final:       "#8250df",
		Warning:     "red",
		Button:      "#238636",
		ButtonHover: "#2ea043",
	}
)

// PaletteFor returns the page palette of a mode. Unknown modes fall back to dark.
func PaletteFor(m Mode) Palette {
	if m == ModeLight {
		return LightPalette
	}
	return DarkPalette
}

// Theme defines a color scheme for terminal output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for step titles.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success is used for the final result.
	Success string
	// Warning is used for caution messages and command hints.
	Warning string
	// Error indicates failures or invalid input.
	Error string
	// Info is used for matrix bodies.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;204m", // Pink
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;160m", // Crimson
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;97m",  // Violet
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;52m",  // Maroon
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names default to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

// ApplyMode switches the terminal theme to match m, unless colors are
// disabled. It is called whenever the user flips the worksheet theme.
func ApplyMode(m Mode) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if currentTheme.Name == NoColorTheme.Name {
		return
	}
	currentTheme = themeByName(string(m))
}

func themeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// Otherwise the terminal theme follows the requested mode.
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
//   - mode: The worksheet mode the terminal colors should follow.
func InitTheme(noColor bool, mode Mode) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(string(mode))
}
