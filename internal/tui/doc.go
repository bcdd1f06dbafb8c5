// Package tui holds the terminal presentation bits of sqlgrep: deciding
// whether output is colored and the lipgloss styles used to highlight matches.
package tui
