// Package styles provides shared lipgloss styles for console output.
package styles

import "github.com/charmbracelet/lipgloss"

// Semantic colors for CLI output.
var (
	ColorPrimary = lipgloss.Color("#7aa2f7")
	ColorMuted   = lipgloss.Color("#565f89")
	ColorSuccess = lipgloss.Color("#9ece6a")
	ColorWarning = lipgloss.Color("#e0af68")
	ColorError   = lipgloss.Color("#f7768e")
)

var (
	Header    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	Muted     = lipgloss.NewStyle().Foreground(ColorMuted)
	Success   = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning   = lipgloss.NewStyle().Foreground(ColorWarning)
	Error     = lipgloss.NewStyle().Foreground(ColorError)
	Separator = lipgloss.NewStyle().Foreground(ColorMuted)
)
