package view

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent      = lipgloss.Color("#8BC34A")
	colorMuted       = lipgloss.Color("#6b7280")
	colorDestructive = lipgloss.Color("#e53935")
)

type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Cell        lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	ActiveTab   lipgloss.Style
	Tab         lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	FocusedLine lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Header:      lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:        lipgloss.NewStyle().Padding(0, 1),
		Label:       lipgloss.NewStyle().Width(14),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent),
		Tab:         lipgloss.NewStyle(),
		Success:     lipgloss.NewStyle().Foreground(colorAccent),
		Error:       lipgloss.NewStyle().Foreground(colorDestructive),
		FocusedLine: lipgloss.NewStyle().Bold(true),
	}
}
