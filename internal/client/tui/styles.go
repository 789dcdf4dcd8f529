package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	priorityStyles = map[string]lipgloss.Style{
		"Low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"Medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"High":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func renderPriority(priority string) string {
	if style, ok := priorityStyles[priority]; ok {
		return style.Render(priority)
	}
	return priority
}
