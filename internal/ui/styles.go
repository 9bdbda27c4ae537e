package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Faint   lipgloss.Style
	Spinner lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:   base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Label:   base.Foreground(lipgloss.Color("#D1D5DB")),
		Success: base.Foreground(lipgloss.Color("#22C55E")),
		Error:   base.Foreground(lipgloss.Color("#EF4444")),
		Faint:   base.Faint(true),
		Spinner: base.Foreground(lipgloss.Color("#22D3EE")),
	}
}
