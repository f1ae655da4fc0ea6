package components

import (
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// Button renders a single-line button. The active one is highlighted.
func Button(label string, active bool) string {
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders labels side by side with the button at index active
// highlighted.
func ButtonRow(labels []string, active int) string {
	var s string
	for i, l := range labels {
		if i > 0 {
			s += "  "
		}
		s += Button(l, i == active)
	}
	return s
}
