package ui

import "github.com/charmbracelet/lipgloss"

// Styles for the filename entry component.
var (
	promptStyle = lipgloss.NewStyle().
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // orange

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // gray

	selectedSuggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
