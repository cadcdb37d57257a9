package tui

import "github.com/charmbracelet/lipgloss"

// Styles стили панелей интерфейса
type Styles struct {
	Pane        lipgloss.Style
	ActivePane  lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Date        lipgloss.Style
	Hint        lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	EditorLabel lipgloss.Style
}

// DefaultStyles стили по умолчанию
func DefaultStyles() Styles {
	border := lipgloss.RoundedBorder()
	return Styles{
		Pane:        lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		ActivePane:  lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		Item:        lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Date:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Hint:        lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		EditorLabel: lipgloss.NewStyle().Bold(true),
	}
}
