// Package filedialog asks for a goal file name and saves or loads it.
package filedialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternalquest/internal/codec"
	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/router"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/ui/components"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// Mode selects what the dialog does with the file.
type Mode int

const (
	ModeSave Mode = iota
	ModeLoad
)

// DialogScreen prompts for a file name, then reports the outcome.
type DialogScreen struct {
	deps  screen.Deps
	mode  Mode
	input components.TextInput
	done  bool
	path  string
	load  *quest.LoadResult
	err   error
}

var _ screen.Screen = (*DialogScreen)(nil)
var _ screen.KeyHintProvider = (*DialogScreen)(nil)

// NewSave creates a dialog that saves the session.
func NewSave(deps screen.Deps) *DialogScreen {
	return newDialog(deps, ModeSave)
}

// NewLoad creates a dialog that loads a goal file into the session.
func NewLoad(deps screen.Deps) *DialogScreen {
	return newDialog(deps, ModeLoad)
}

func newDialog(deps screen.Deps, mode Mode) *DialogScreen {
	in := components.NewTextInput("What is the filename for the goal file?", "goals.txt", false, 0)
	in.SetValue(deps.GoalsFile)
	return &DialogScreen{deps: deps, mode: mode, input: in}
}

func (s *DialogScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *DialogScreen) Title() string {
	if s.mode == ModeLoad {
		return "Load Goals"
	}
	return "Save Goals"
}

func (s *DialogScreen) KeyHints() []layout.KeyHint {
	if s.done {
		return keys.Hints(keys.WithDesc(keys.Enter, "continue"))
	}
	action := "save"
	if s.mode == ModeLoad {
		action = "load"
	}
	return keys.Hints(keys.WithDesc(keys.Enter, action), keys.Back)
}

func (s *DialogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keys.Enter) {
		if s.done {
			return s, router.Pop()
		}
		s.run()
		return s, nil
	}
	if s.done {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// run performs the save or load. On failure the prompt stays open so the
// name can be corrected.
func (s *DialogScreen) run() {
	s.path = s.input.Value()
	if s.path == "" {
		s.err = errors.New("enter a file name")
		return
	}

	ctx := context.Background()
	if s.mode == ModeSave {
		s.err = s.deps.Session.SaveFile(ctx, s.path)
	} else {
		s.load, s.err = s.deps.Session.LoadFile(ctx, s.path)
	}
	s.done = s.err == nil
}

func (s *DialogScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	switch {
	case s.done && s.mode == ModeSave:
		b.WriteString(theme.Complete.Render("Goals saved successfully!"))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.path))

	case s.done:
		b.WriteString(theme.Complete.Render("Goals loaded successfully!"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d goals, %d points, Level %d", s.load.Goals, s.load.Score, s.load.Level)))
		for _, sk := range s.load.Skipped {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("Skipped line %d: unknown goal type %q", sk.Line, sk.Tag)))
		}
		if s.load.LevelUp != nil {
			b.WriteString("\n\n")
			b.WriteString(components.Banner(quest.LevelUpMessage(*s.load.LevelUp), cw-8))
		}

	default:
		b.WriteString(s.input.View())
		if s.err != nil {
			b.WriteString("\n\n")
			b.WriteString(theme.Failure.Render(describe(s.err)))
		}
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}

func describe(err error) string {
	var fe *codec.FormatError
	switch {
	case errors.Is(err, quest.ErrNoSaveFile):
		return "File not found."
	case errors.As(err, &fe):
		return "That file is not a goal file: " + fe.Error()
	}
	return err.Error()
}
