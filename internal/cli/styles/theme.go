// Package styles holds the lipgloss theme shared by the CLI and the monitor
// TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme groups the colors and pre-built styles used by the monitor.
type Theme struct {
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color
	SurfaceVariant lipgloss.Color
	Error          lipgloss.Color

	Title      lipgloss.Style
	Subtle     lipgloss.Style
	ErrorStyle lipgloss.Style
}

// DefaultTheme returns the default terminal theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Text:           lipgloss.Color("252"),
		Muted:          lipgloss.Color("243"),
		Accent:         lipgloss.Color("81"),
		Border:         lipgloss.Color("240"),
		SurfaceVariant: lipgloss.Color("237"),
		Error:          lipgloss.Color("203"),
	}

	t.Title = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	return t
}
