// Package ui provides theme and color support for refalgo's terminal output.
// It exposes ANSI color helpers for plain text and lipgloss styles for
// rendered tables, both driven by the active theme.
package ui
