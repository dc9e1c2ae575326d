package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3b4261")).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dcfff"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	hintStyle     = mutedStyle.Italic(true)

	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68"))
	doneStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e"))

	counterLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#737aa2")).Width(9)
	counterValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0caf5")).Width(6)
)

// progressBar fills width cells for fraction in [0,1] using fill for the
// done part.
func progressBar(fraction float64, width int, fill lipgloss.Style) string {
	done := int(fraction*float64(width) + 0.5)
	done = max(0, min(width, done))
	return fill.Render(strings.Repeat("█", done)) +
		mutedStyle.Render(strings.Repeat("░", width-done)) +
		fmt.Sprintf(" %3.0f%%", fraction*100)
}

// rule draws a horizontal divider.
func rule(width int) string {
	return mutedStyle.Render(strings.Repeat("─", max(0, width)))
}
