package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#A855F7")
	muted   = lipgloss.Color("#9CA3AF")
	success = lipgloss.Color("#4ADE80")
	danger  = lipgloss.Color("#F87171")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 3).
			Width(56)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE047"))
	hintStyle  = lipgloss.NewStyle().Foreground(muted)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(1, 2).
			Width(48).
			Align(lipgloss.Center)
	dropZoneActiveStyle = dropZoneStyle.BorderForeground(lipgloss.Color("#FFFFFF"))

	optionStyle         = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	optionSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)

	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(accent).Background(lipgloss.Color("#FFFFFF")).Padding(0, 3)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 3)

	checkStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	linkStyle  = lipgloss.NewStyle().Underline(true)

	toastStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(success),
		"error":   lipgloss.NewStyle().Bold(true).Foreground(danger),
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
	}
)
