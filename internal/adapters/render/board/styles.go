package board

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	username lipgloss.Style
	content  lipgloss.Style
	post     lipgloss.Style
	empty    lipgloss.Style
	alert    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	help     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		username: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		content:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		post:     lipgloss.NewStyle().MarginTop(1).PaddingLeft(1).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("238")),
		empty:    lipgloss.NewStyle().Faint(true),
		alert:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
