package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Card     lipgloss.Style
	Focused  lipgloss.Style
	Notice   lipgloss.Style
}

func DefaultTheme() Theme {
	card := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Card:     card,
		Focused:  card.BorderForeground(lipgloss.Color("63")),
		Notice: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")),
	}
}
