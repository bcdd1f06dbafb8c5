package tui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ColorMode is the value of the --color flag.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(s); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto|always|never)", s)
	}
}

// ColorEnabled decides whether match output is highlighted.
//
// ColorAuto disables color if:
//   - NO_COLOR is set (accessibility/automation indicator)
//   - TERM=dumb
//   - the output file is not a terminal (piped into another tool)
func ColorEnabled(mode ColorMode, out *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if out == nil {
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}
