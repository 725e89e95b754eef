package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is a screen reachable from the main menu.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// BackMsg asks the menu to take focus again.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Frame renders a screen between its title and its key help line.
func Frame(v View) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.Title()),
		v.View(),
		helpStyle.Render(v.ShortHelp()),
	)
}
