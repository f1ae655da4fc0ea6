// Package create walks the player through making a new goal.
package create

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternalquest/internal/goals"
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
	phaseKind phase = iota
	phaseForm
	phaseDone
)

const (
	fieldName = iota
	fieldDescription
	fieldPoints
	fieldTarget
	fieldBonus
)

type kindChosenMsg struct {
	kind goals.Kind
}

// CreateScreen asks for the goal type, then the goal's fields.
type CreateScreen struct {
	deps     screen.Deps
	phase    phase
	kindMenu components.Menu
	kind     goals.Kind
	inputs   []components.TextInput
	focus    int
	err      error
	created  *goals.Goal
}

var _ screen.Screen = (*CreateScreen)(nil)
var _ screen.KeyHintProvider = (*CreateScreen)(nil)

var kindHints = map[goals.Kind]string{
	goals.KindSimple:    "done once",
	goals.KindEternal:   "repeats forever",
	goals.KindChecklist: "done N times for a bonus",
}

// New creates a CreateScreen at the goal type menu.
func New(deps screen.Deps) *CreateScreen {
	var items []components.MenuItem
	for _, k := range goals.AllKinds() {
		items = append(items, components.MenuItem{
			Label: k.DisplayName(),
			Hint:  kindHints[k],
			Action: func() tea.Cmd {
				return func() tea.Msg { return kindChosenMsg{kind: k} }
			},
		})
	}
	menu := components.NewMenu(items)
	menu.Numbered = true
	return &CreateScreen{deps: deps, kindMenu: menu}
}

func (s *CreateScreen) Init() tea.Cmd {
	return nil
}

func (s *CreateScreen) Title() string {
	return "Create Goal"
}

func (s *CreateScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseForm:
		return keys.Hints(keys.NextField, keys.PrevField, keys.WithDesc(keys.Enter, "next / create"), keys.Back)
	case phaseDone:
		return keys.Hints(keys.WithDesc(keys.Enter, "continue"))
	}
	return []layout.KeyHint{keys.Navigate, keys.Hint(keys.Enter), keys.Hint(keys.Back)}
}

func (s *CreateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if chosen, ok := msg.(kindChosenMsg); ok {
		return s, s.startForm(chosen.kind)
	}

	switch s.phase {
	case phaseKind:
		var cmd tea.Cmd
		s.kindMenu, cmd = s.kindMenu.Update(msg)
		return s, cmd

	case phaseDone:
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keys.Enter) {
			return s, router.Pop()
		}
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(kmsg, keys.NextField):
			return s, s.focusField(s.focus + 1)
		case key.Matches(kmsg, keys.PrevField):
			return s, s.focusField(s.focus - 1)
		case key.Matches(kmsg, keys.Enter):
			if s.focus < len(s.inputs)-1 {
				return s, s.focusField(s.focus + 1)
			}
			s.submit()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *CreateScreen) startForm(kind goals.Kind) tea.Cmd {
	s.kind = kind
	s.phase = phaseForm
	s.inputs = []components.TextInput{
		components.NewTextInput("What is the short name of your goal?", "Run a marathon", false, 60),
		components.NewTextInput("What is a brief description of your goal?", "Finish a full marathon", false, 120),
		components.NewTextInput("What is the amount of points associated with this goal?", "100", true, 9),
	}
	if kind == goals.KindChecklist {
		s.inputs = append(s.inputs,
			components.NewTextInput("How many times does this goal need to be completed for a bonus?", "10", true, 9),
			components.NewTextInput("What is the bonus value for completing it?", "500", true, 9),
		)
	}
	s.focus = 0
	return s.inputs[0].Focus()
}

func (s *CreateScreen) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(s.inputs) {
		return nil
	}
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[i].Focus()
}

func (s *CreateScreen) submit() {
	spec, err := s.spec()
	if err == nil {
		err = spec.Validate()
	}
	if err != nil {
		s.err = err
		return
	}

	g, err := s.deps.Session.CreateGoal(context.Background(), spec)
	if err != nil {
		s.err = err
		return
	}
	s.err = nil
	s.created = g
	s.phase = phaseDone
}

func (s *CreateScreen) spec() (quest.GoalSpec, error) {
	spec := quest.GoalSpec{
		Kind:        s.kind,
		Name:        s.inputs[fieldName].Value(),
		Description: s.inputs[fieldDescription].Value(),
	}

	var err error
	if spec.Points, err = s.inputs[fieldPoints].NumericValue(); err != nil {
		return spec, fmt.Errorf("points: %w", err)
	}
	if s.kind == goals.KindChecklist {
		if spec.Target, err = s.inputs[fieldTarget].NumericValue(); err != nil {
			return spec, fmt.Errorf("target: %w", err)
		}
		if spec.Bonus, err = s.inputs[fieldBonus].NumericValue(); err != nil {
			return spec, fmt.Errorf("bonus: %w", err)
		}
	}
	return spec, nil
}

func (s *CreateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	switch s.phase {
	case phaseKind:
		b.WriteString(theme.Title.Render("The types of goals are:"))
		b.WriteString("\n\n")
		b.WriteString(s.kindMenu.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Which type of goal would you like to create?"))

	case phaseForm:
		b.WriteString(theme.Title.Render(s.kind.Icon() + " New " + s.kind.DisplayName()))
		b.WriteString("\n\n")
		for _, in := range s.inputs {
			b.WriteString(in.View())
			b.WriteString("\n\n")
		}
		if s.err != nil {
			b.WriteString(theme.Failure.Render(s.err.Error()))
		}

	case phaseDone:
		b.WriteString(theme.Complete.Render("Goal created successfully!"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(s.created.Details()))
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}
