// Package goallist shows every goal with its completion mark.
package goallist

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/router"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/screens/record"
	"github.com/abhisek/eternalquest/internal/ui/components"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// ListScreen lists the goals. Enter records an event for the selected one.
type ListScreen struct {
	deps     screen.Deps
	goals    []*goals.Goal
	selected int
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// New creates a ListScreen with a snapshot of the session's goals.
func New(deps screen.Deps) *ListScreen {
	return &ListScreen{deps: deps, goals: deps.Session.Goals()}
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

func (s *ListScreen) Title() string {
	return "Your Goals"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Navigate,
		keys.Hint(keys.WithDesc(keys.Enter, "record event")),
		keys.Hint(keys.Back),
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if s.selected > 0 {
			s.selected--
		}
	case key.Matches(kmsg, keys.Down):
		if s.selected < len(s.goals)-1 {
			s.selected++
		}
	case key.Matches(kmsg, keys.Enter):
		if len(s.goals) > 0 {
			return s, router.Replace(record.NewFor(s.deps, s.selected+1))
		}
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if len(s.goals) == 0 {
		msg := theme.Hint.Render("No goals yet. Create one from the menu.")
		return components.Center(components.Panel(msg, cw), width, height)
	}

	// Rows available inside the panel border and padding.
	rows := max(height-6, 1)
	start, end := window(len(s.goals), s.selected, rows)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your Goals:"))
	b.WriteString("\n")
	for i := start; i < end; i++ {
		b.WriteString(Row(i+1, s.goals[i], i == s.selected, cw-8))
		b.WriteString("\n")
	}
	if end-start < len(s.goals) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(s.goals))))
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}

// Row renders one numbered goal line.
func Row(n int, g *goals.Goal, selected bool, width int) string {
	line := fmt.Sprintf("%d. %s %s", n, g.Kind.Icon(), g.Details())

	style := theme.Unselected
	switch {
	case selected:
		style = theme.Selected
	case g.IsComplete():
		style = theme.Complete
	}
	return style.Render(lipgloss.NewStyle().MaxWidth(width).Render(line))
}

// window returns the [start, end) slice of n rows that keeps selected
// visible in a view of size rows.
func window(n, selected, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := max(selected-rows+1, 0)
	return start, start + rows
}
