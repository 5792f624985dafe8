package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the current terminal.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes and redirects.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen dashboard.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

const defaultTerminalWidth = 80

// DetectOutputMode picks the output mode for stdout. plain forces
// OutputModePlain; noInteractive caps the result at OutputModeStyled.
// NO_COLOR and TERM=dumb disable styling, and CI disables interaction.
func DetectOutputMode(plain, noInteractive bool) OutputMode {
	return detectOutputMode(plain, noInteractive, isTerminal(os.Stdout), isTerminal(os.Stdin), os.Getenv)
}

func detectOutputMode(plain, noInteractive, stdoutTTY, stdinTTY bool, getenv func(string) string) OutputMode {
	if plain || !stdoutTTY || getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if noInteractive || !stdinTTY || getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
	if err != nil || w <= 0 {
		return defaultTerminalWidth
	}
	return w
}
