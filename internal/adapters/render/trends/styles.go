package trends

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	loading lipgloss.Style
	failure lipgloss.Style
	detail  lipgloss.Style
	axis    lipgloss.Style
	label   lipgloss.Style
	empty   lipgloss.Style
	help    lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		loading: lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		axis:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		empty:   lipgloss.NewStyle().Faint(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}
