package cmd

import "github.com/charmbracelet/lipgloss"

var (
	accentFg  = lipgloss.Color("#4CAF50")
	dimFg     = lipgloss.Color("#8A8F98")
	borderCol = lipgloss.Color("#3E5641")

	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	keyStyle   = lipgloss.NewStyle().Width(18).Foreground(dimFg)
)

// row renders an aligned key and value line.
func row(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), value)
}
