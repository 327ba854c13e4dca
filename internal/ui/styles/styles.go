// Package styles provides shared lipgloss styles for cly output.
//
// Colors come from the active [Theme] and are swapped as a whole by [Init],
// so callers should read the style variables at render time rather than
// caching them.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette colors, updated by Init.
var (
	Primary color.Color = DefaultTheme.Primary
	Accent  color.Color = DefaultTheme.Accent
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Warning color.Color = DefaultTheme.Warning
	Muted   color.Color = DefaultTheme.Muted
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// HeaderStyle is used for table headers and prompt titles
	HeaderStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// applyTheme rebuilds the palette and style variables from t.
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Warning = t.Warning
	Muted = t.Muted

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	HeaderStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
}
