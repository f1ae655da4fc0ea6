package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every panel so boxes
// line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the border (2) and padding (4).
	return min(max(frameWidth-6, 20), 72)
}

// Panel wraps content in a rounded card of width cw.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(1, 2).
		Render(content)
}

// Banner renders a centered, highlighted line such as a level-up message.
func Banner(text string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Foreground(theme.Accent).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
