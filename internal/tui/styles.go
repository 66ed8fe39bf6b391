package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	todoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	doneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func statusBadge(s models.Status) string {
	switch s {
	case models.StatusInProgress:
		return inProgressStyle.Render("[in_progress]")
	case models.StatusDone:
		return doneStyle.Render("[done]")
	default:
		return todoStyle.Render("[todo]")
	}
}
