package ui

import "github.com/charmbracelet/lipgloss"

// ColorRed returns the escape code for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the escape code for success.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the escape code for warnings and values.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the escape code for primary accents.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the escape code for informational text.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the escape code for labels.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorGrey returns the escape code for secondary text.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// TableStyles holds the lipgloss styles of a rendered table.
type TableStyles struct {
	Border lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// CurrentTableStyles derives table styles from the active theme.
func CurrentTableStyles() TableStyles {
	t := GetCurrentTheme()
	cell := lipgloss.NewStyle().Padding(0, 1)
	return TableStyles{
		Border: lipgloss.NewStyle().Foreground(t.Border),
		Header: cell.Bold(t.Name != "none").Foreground(t.Header),
		Cell:   cell,
		Dim:    cell.Foreground(t.Dim),
	}
}
