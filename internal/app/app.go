// Package app is the root Bubble Tea model of the interactive menu.
package app

import (
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/router"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/screens/home"
	"github.com/abhisek/eternalquest/internal/store"
	"github.com/abhisek/eternalquest/internal/suggest"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
)

// Options configures the interactive app.
type Options struct {
	Session   *quest.Session
	GoalsFile string
	Events    store.EventRepo  // optional
	Suggester *suggest.Service // optional
	Logger    *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *quest.Session
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	deps := screen.Deps{
		Session:   opts.Session,
		GoalsFile: opts.GoalsFile,
		Events:    opts.Events,
		Suggester: opts.Suggester,
		Logger:    opts.Logger,
	}
	return AppModel{
		router:  router.New(home.New(deps)),
		session: opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.session.Score(), m.session.Level(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), keys.Hint(keys.ForceQuit))
	}
	if m.router.Depth() > 1 {
		return keys.Hints(keys.Back, keys.ForceQuit)
	}
	return []layout.KeyHint{keys.Navigate, keys.Hint(keys.Enter), keys.Hint(keys.ForceQuit)}
}

// Run starts the interactive menu and blocks until the player quits.
func Run(opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("app: session is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		opts.Logger.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
