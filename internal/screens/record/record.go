// Package record lets the player pick a goal and record an event for it.
package record

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/router"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/ui/components"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

type phase int

const (
	phasePick phase = iota
	phaseResult
)

// recordMsg asks the screen to record an event for the 1-based index.
type recordMsg struct {
	index int
}

// RecordScreen shows the goal picker, then the points earned.
type RecordScreen struct {
	deps    screen.Deps
	phase   phase
	menu    components.Menu
	pending int
	result  *quest.EventResult
	err     error
}

var _ screen.Screen = (*RecordScreen)(nil)
var _ screen.KeyHintProvider = (*RecordScreen)(nil)

// New creates a RecordScreen that starts with the goal picker.
func New(deps screen.Deps) *RecordScreen {
	gs := deps.Session.Goals()
	items := make([]components.MenuItem, len(gs))
	for i, g := range gs {
		index := i + 1
		items[i] = components.MenuItem{
			Label:  g.Details(),
			Hint:   fmt.Sprintf("+%d", g.Points),
			Action: func() tea.Cmd { return request(index) },
		}
	}
	menu := components.NewMenu(items)
	menu.Numbered = true
	return &RecordScreen{deps: deps, menu: menu}
}

// NewFor creates a RecordScreen that records an event for the goal at
// the 1-based index as soon as it is shown.
func NewFor(deps screen.Deps, index int) *RecordScreen {
	s := New(deps)
	s.pending = index
	return s
}

func request(index int) tea.Cmd {
	return func() tea.Msg { return recordMsg{index: index} }
}

func (s *RecordScreen) Init() tea.Cmd {
	if s.pending > 0 {
		return request(s.pending)
	}
	return nil
}

func (s *RecordScreen) Title() string {
	return "Record Event"
}

func (s *RecordScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseResult {
		return keys.Hints(keys.WithDesc(keys.Enter, "continue"))
	}
	return []layout.KeyHint{
		keys.Navigate,
		keys.Hint(keys.WithDesc(keys.Enter, "accomplished")),
		keys.Hint(keys.Back),
	}
}

func (s *RecordScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordMsg:
		s.result, s.err = s.deps.Session.RecordEvent(context.Background(), msg.index)
		s.phase = phaseResult
		return s, nil

	case tea.KeyPressMsg:
		if s.phase == phaseResult {
			if key.Matches(msg, keys.Enter) {
				return s, router.PopToRoot()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *RecordScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	switch {
	case s.phase == phaseResult && s.err != nil:
		b.WriteString(theme.Failure.Render("Invalid input."))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(s.err.Error()))
	case s.phase == phaseResult:
		b.WriteString(theme.Celebrate.Render(s.result.Message()))
		b.WriteString("\n\n")
		if s.result.LevelUp != nil {
			b.WriteString(components.Banner(quest.LevelUpMessage(*s.result.LevelUp), cw-8))
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Body.Render(s.result.Goal.Details()))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Score %d, Level %d", s.result.Score, s.result.Level)))
	case len(s.menu.Items) == 0:
		b.WriteString(theme.Hint.Render("No goals yet. Create one from the menu."))
	default:
		b.WriteString(theme.Title.Render("Which goal did you accomplish?"))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}
