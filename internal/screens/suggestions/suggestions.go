// Package suggestions asks the LLM for goal ideas and adds the chosen ones.
package suggestions

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/router"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/suggest"
	"github.com/abhisek/eternalquest/internal/ui/components"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

type phase int

const (
	phaseTheme phase = iota
	phaseLoading
	phasePick
	phaseDone
)

type suggestedMsg struct {
	items []suggest.Suggestion
	err   error
}

// SuggestScreen collects a theme, shows the suggestions and adds the
// checked ones to the session.
type SuggestScreen struct {
	deps     screen.Deps
	phase    phase
	theme    components.TextInput
	spin     spinner.Model
	items    []suggest.Suggestion
	checked  []bool
	selected int
	added    int
	err      error
}

var _ screen.Screen = (*SuggestScreen)(nil)
var _ screen.KeyHintProvider = (*SuggestScreen)(nil)

// New creates a SuggestScreen. deps.Suggester must be set.
func New(deps screen.Deps) *SuggestScreen {
	return &SuggestScreen{
		deps:  deps,
		theme: components.NewTextInput("What should your goals be about? (optional)", "fitness, reading, family...", false, 80),
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *SuggestScreen) Init() tea.Cmd {
	return s.theme.Focus()
}

func (s *SuggestScreen) Title() string {
	return "Suggest Goals"
}

func (s *SuggestScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phasePick:
		return []layout.KeyHint{
			keys.Navigate,
			keys.Hint(keys.Toggle),
			keys.Hint(keys.ToggleAll),
			keys.Hint(keys.WithDesc(keys.Enter, "add checked")),
			keys.Hint(keys.Back),
		}
	case phaseDone:
		return keys.Hints(keys.WithDesc(keys.Enter, "continue"))
	case phaseLoading:
		return keys.Hints(keys.Back)
	}
	return keys.Hints(keys.WithDesc(keys.Enter, "suggest"), keys.Back)
}

func (s *SuggestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestedMsg:
		if msg.err != nil {
			s.err = msg.err
			s.phase = phaseTheme
			return s, s.theme.Focus()
		}
		s.items = msg.items
		s.checked = make([]bool, len(msg.items))
		for i := range s.checked {
			s.checked[i] = true
		}
		s.selected = 0
		s.phase = phasePick
		return s, nil

	case spinner.TickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	}

	kmsg, isKey := msg.(tea.KeyPressMsg)

	switch s.phase {
	case phaseTheme:
		if isKey && key.Matches(kmsg, keys.Enter) {
			s.err = nil
			s.phase = phaseLoading
			s.theme.Blur()
			return s, tea.Batch(s.spin.Tick, s.fetch())
		}
		var cmd tea.Cmd
		s.theme, cmd = s.theme.Update(msg)
		return s, cmd

	case phasePick:
		if !isKey {
			return s, nil
		}
		switch {
		case key.Matches(kmsg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(kmsg, keys.Down):
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case key.Matches(kmsg, keys.Toggle):
			s.checked[s.selected] = !s.checked[s.selected]
		case key.Matches(kmsg, keys.ToggleAll):
			all := !allChecked(s.checked)
			for i := range s.checked {
				s.checked[i] = all
			}
		case key.Matches(kmsg, keys.Enter):
			s.addChecked()
		}

	case phaseDone:
		if isKey && key.Matches(kmsg, keys.Enter) {
			return s, router.Pop()
		}
	}
	return s, nil
}

// fetch captures everything the request needs so the command does not
// touch the session.
func (s *SuggestScreen) fetch() tea.Cmd {
	svc := s.deps.Suggester
	in := suggest.Input{Theme: s.theme.Value()}
	for _, g := range s.deps.Session.Goals() {
		in.Existing = append(in.Existing, g.Name)
	}
	logger := s.deps.Logger

	return func() tea.Msg {
		ctx := context.Background()
		if logger != nil {
			ctx = logging.WithLogger(ctx, logger)
		}
		items, err := svc.Suggest(ctx, in)
		return suggestedMsg{items: items, err: err}
	}
}

func (s *SuggestScreen) addChecked() {
	ctx := context.Background()
	for i, item := range s.items {
		if !s.checked[i] {
			continue
		}
		if _, err := s.deps.Session.CreateGoal(ctx, item.Spec); err != nil {
			s.err = err
			continue
		}
		s.added++
	}
	s.phase = phaseDone
}

func allChecked(checked []bool) bool {
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}

func (s *SuggestScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	switch s.phase {
	case phaseTheme:
		b.WriteString(s.theme.View())
		if s.err != nil {
			b.WriteString("\n\n")
			b.WriteString(theme.Failure.Render("Could not get suggestions: " + s.err.Error()))
		}

	case phaseLoading:
		b.WriteString(s.spin.View() + " " + theme.Body.Render("Thinking up some goals..."))

	case phasePick:
		b.WriteString(theme.Title.Render("Suggested goals:"))
		b.WriteString("\n\n")
		for i, item := range s.items {
			b.WriteString(s.row(i, item))
			b.WriteString("\n")
			if item.Reason != "" {
				b.WriteString(theme.Hint.Render("      " + item.Reason))
				b.WriteString("\n")
			}
		}

	case phaseDone:
		b.WriteString(theme.Complete.Render(fmt.Sprintf("Added %d goals.", s.added)))
		if s.err != nil {
			b.WriteString("\n\n")
			b.WriteString(theme.Failure.Render(s.err.Error()))
		}
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}

func (s *SuggestScreen) row(i int, item suggest.Suggestion) string {
	box := "[ ]"
	if s.checked[i] {
		box = "[x]"
	}
	spec := item.Spec
	line := fmt.Sprintf("%s %s %s (%s, %d pts", box, spec.Kind.Icon(), spec.Name, spec.Kind.DisplayName(), spec.Points)
	if spec.Target > 0 {
		line += fmt.Sprintf(", %d times for +%d", spec.Target, spec.Bonus)
	}
	line += ")"

	if i == s.selected {
		return theme.Selected.Render("> " + line)
	}
	return theme.Unselected.Render("  " + line)
}
