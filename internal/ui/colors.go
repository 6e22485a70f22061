package ui

// Color functions return ANSI escape codes from the current theme,
// named after the role they play in the worksheet output.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the final result color from the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the step title color from the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the matrix color from the current theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// TerminalColors satisfies apperrors.ColorProvider with the current theme.
type TerminalColors struct{}

func (TerminalColors) Red() string    { return ColorRed() }
func (TerminalColors) Yellow() string { return ColorYellow() }
func (TerminalColors) Reset() string  { return ColorReset() }
