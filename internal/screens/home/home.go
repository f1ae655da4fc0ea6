// Package home is the main menu: score, level and the goal actions.
package home

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternalquest/internal/router"
	"github.com/abhisek/eternalquest/internal/screen"
	"github.com/abhisek/eternalquest/internal/screens/create"
	"github.com/abhisek/eternalquest/internal/screens/filedialog"
	"github.com/abhisek/eternalquest/internal/screens/goallist"
	"github.com/abhisek/eternalquest/internal/screens/history"
	"github.com/abhisek/eternalquest/internal/screens/record"
	"github.com/abhisek/eternalquest/internal/screens/suggestions"
	"github.com/abhisek/eternalquest/internal/ui/components"
	"github.com/abhisek/eternalquest/internal/ui/keys"
	"github.com/abhisek/eternalquest/internal/ui/layout"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Create New Goal", Action: push(func() screen.Screen { return create.New(deps) })},
		{Label: "List Goals", Action: push(func() screen.Screen { return goallist.New(deps) })},
		{Label: "Save Goals", Action: push(func() screen.Screen { return filedialog.NewSave(deps) })},
		{Label: "Load Goals", Action: push(func() screen.Screen { return filedialog.NewLoad(deps) })},
		{Label: "Record Event", Action: push(func() screen.Screen { return record.New(deps) })},
		{
			Label:    "History",
			Action:   push(func() screen.Screen { return history.New(deps.Events) }),
			Disabled: deps.Events == nil,
		},
		{
			Label:    "Suggest Goals",
			Action:   push(func() screen.Screen { return suggestions.New(deps) }),
			Disabled: deps.Suggester == nil,
		},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	if deps.Suggester == nil {
		items[6].Hint = "no LLM configured"
	}

	menu := components.NewMenu(items)
	menu.Numbered = true
	return &HomeScreen{deps: deps, menu: menu}
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd { return router.Push(build()) }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Menu"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Navigate,
		keys.Hint(keys.Enter),
		{Key: "1-8", Description: "choose"},
		keys.Hint(keys.Quit),
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keys.Quit) {
		return h, tea.Quit
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sum := h.deps.Session.Summary()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(RenderEmblem(EmblemFor(sum)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(sum.StatusLine()))
	b.WriteString("\n")
	b.WriteString(components.NewLevelProgress(sum.Level, sum.IntoLevel, sum.ToNext, cw-8).View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(goalCountLine(sum.Goals, sum.Completed)))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Menu Options:"))
	b.WriteString("\n")
	b.WriteString(h.menu.View())

	panel := components.Panel(lipgloss.NewStyle().Align(lipgloss.Left).Render(b.String()), cw)
	return components.Center(panel, width, height)
}

func goalCountLine(total, completed int) string {
	switch total {
	case 0:
		return "No goals yet."
	case 1:
		return fmt.Sprintf("1 goal, %d complete.", completed)
	default:
		return fmt.Sprintf("%d goals, %d complete.", total, completed)
	}
}
