// Package styles holds the shared color palette and lipgloss styles used for
// console output.
package styles

import "github.com/charmbracelet/lipgloss"

// Adaptive colors pick a light or dark variant from the terminal background.
var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B08800", Dark: "#F1FA8C"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#50FA7B"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#8BE9FD"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#6272A4"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#44475A"}
)

var (
	Error   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Info    = lipgloss.NewStyle().Foreground(ColorInfo)
	Verbose = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	TableHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TableCell   = lipgloss.NewStyle().Padding(0, 1)
	TableTitle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)
