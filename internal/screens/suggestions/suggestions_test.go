package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/llm"
	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/suggest"
)

const twoGoals = `{"goals": [
	{"kind": "eternal", "name": "Stretch", "description": "Stretch for ten minutes", "points": 20, "target": 0, "bonus": 0, "reason": "Easy daily win"},
	{"kind": "checklist", "name": "Five Hikes", "description": "Hike five trails", "points": 100, "target": 5, "bonus": 400, "reason": "Gets you outside"}
]}`

func newScreen(t *testing.T, resp llm.MockResponse) (*SuggestScreen, *quest.Session, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(resp)
	sess := quest.New(quest.Options{})
	deps := screen.Deps{
		Session:   sess,
		Suggester: suggest.NewService(mock, suggest.DefaultConfig(), nil),
	}
	return New(deps), sess, mock
}

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter(s *SuggestScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

// deliver runs cmd and feeds every resulting suggestedMsg to the screen.
func deliver(t *testing.T, s *SuggestScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msgs := []tea.Msg{cmd()}
	if batch, ok := msgs[0].(tea.BatchMsg); ok {
		msgs = msgs[:0]
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	}
	for _, m := range msgs {
		if sm, ok := m.(suggestedMsg); ok {
			s.Update(sm)
			return
		}
	}
	t.Fatal("no suggestedMsg produced")
}

func TestSuggest_AddsCheckedGoals(t *testing.T) {
	s, sess, mock := newScreen(t, llm.MockResponse{Content: json.RawMessage(twoGoals)})
	_, err := sess.CreateGoal(context.Background(), quest.GoalSpec{Kind: goals.KindSimple, Name: "Swim", Points: 5})
	require.NoError(t, err)

	for _, r := range "health" {
		s.Update(press(r))
	}
	deliver(t, s, enter(s))

	require.Equal(t, phasePick, s.phase)
	require.Len(t, s.items, 2)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Theme: health")
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "- Swim")
	assert.Contains(t, s.View(100, 30), "Five Hikes")

	// Uncheck the first suggestion.
	s.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	enter(s)

	assert.Equal(t, phaseDone, s.phase)
	assert.Equal(t, 1, s.added)
	gs := sess.Goals()
	require.Len(t, gs, 2)
	assert.Equal(t, "ChecklistGoal:Five Hikes|Hike five trails|100|0|5|400", gs[1].Line())
}

func TestSuggest_ToggleAll(t *testing.T) {
	s, sess, _ := newScreen(t, llm.MockResponse{Content: json.RawMessage(twoGoals)})
	deliver(t, s, enter(s))

	s.Update(press('a'))
	assert.Equal(t, []bool{false, false}, s.checked)
	s.Update(press('a'))
	assert.Equal(t, []bool{true, true}, s.checked)

	enter(s)
	assert.Len(t, sess.Goals(), 2)
}

func TestSuggest_ErrorReturnsToPrompt(t *testing.T) {
	s, _, _ := newScreen(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("offline")}})
	deliver(t, s, enter(s))

	assert.Equal(t, phaseTheme, s.phase)
	assert.Error(t, s.err)
	assert.Contains(t, s.View(100, 30), "Could not get suggestions")
}
