package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorLocation = lipgloss.Color("245") // Gray
	ColorMatch    = lipgloss.Color("196") // Red
)

// Highlighter renders the parts of a match line.
// The zero value renders text unchanged.
type Highlighter struct {
	location lipgloss.Style
	value    lipgloss.Style
	enabled  bool
}

// NewHighlighter creates a Highlighter writing ANSI colors for w when enabled.
// Colors are forced regardless of what w is, since the caller already decided.
func NewHighlighter(w io.Writer, enabled bool) Highlighter {
	if !enabled {
		return Highlighter{}
	}
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)
	return Highlighter{
		location: renderer.NewStyle().Foreground(ColorLocation),
		value:    renderer.NewStyle().Foreground(ColorMatch).Bold(true),
		enabled:  true,
	}
}

// Location renders the query_id::row::column prefix.
func (h Highlighter) Location(s string) string {
	if !h.enabled {
		return s
	}
	return h.location.Render(s)
}

// Value renders the matched cell text.
func (h Highlighter) Value(s string) string {
	if !h.enabled {
		return s
	}
	return h.value.Render(s)
}

// Enabled reports whether output is colored.
func (h Highlighter) Enabled() bool {
	return h.enabled
}
