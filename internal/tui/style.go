package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15202b")).
			Background(lipgloss.Color("#4ec9b0")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8a8a8a")).
			Padding(0, 1)

	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f23a74"))

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ec9b0")).
			Padding(0, 1)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#4ec9b0", Dark: "#2aa198"}).
				Render

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f23a74")).
				Render
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
