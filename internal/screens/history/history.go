// Package history shows recent goal events from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/store"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// Limit is how many events the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Events []store.GoalEventRecord
	Kinds  []store.KindPoints
	Err    error
}

// HistoryScreen displays recorded goal events, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.GoalEventRecord
	kinds     []store.KindPoints
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		events, err := repo.QueryGoalEvents(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// The per-kind totals are a nice-to-have.
		kinds, err := repo.PointsByKind(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}
		return historyLoadedMsg{Events: events, Kinds: kinds}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Hint(keys.WithDesc(keys.Enter, "details")),
		keys.Navigate,
		keys.Hint(keys.Back),
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.kinds = msg.Kinds
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Enter):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return centered.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No events yet. Record one from the menu!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(s.kinds) > 0 {
		b.WriteString(centered.Foreground(theme.Secondary).Render(kindSummary(s.kinds)))
		b.WriteString("\n\n")
	}

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %+6d  %s", prefix, ev.Timestamp.Local().Format("Jan 02 15:04"), ev.Points, ev.GoalName)
		if ev.Completed {
			line += "  [X]"
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = theme.Selected
		case ev.LevelUp:
			style = theme.Celebrate
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(ev) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func details(ev store.GoalEventRecord) []string {
	out := []string{
		fmt.Sprintf("    Goal #%d, %s", ev.GoalIndex, goals.Kind(ev.GoalKind).DisplayName()),
		fmt.Sprintf("    Score %d after this event, Level %d", ev.Score, ev.Level),
	}
	if ev.LevelUp {
		out = append(out, fmt.Sprintf("    Leveled up to Level %d", ev.Level))
	}
	return out
}

func kindSummary(kinds []store.KindPoints) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		kind := goals.Kind(k.Kind)
		parts = append(parts, fmt.Sprintf("%s %s: %d pts in %d events", kind.Icon(), kind.DisplayName(), k.Points, k.Events))
	}
	return strings.Join(parts, "   ")
}
