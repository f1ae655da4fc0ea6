// Package keys holds the key bindings shared by the TUI screens.
package keys

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/eternalquest/internal/ui/layout"
)

var (
	Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	)
	Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	)
	Enter = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	)
	Toggle = key.NewBinding(
		key.WithKeys("space", " "),
		key.WithHelp("Space", "toggle"),
	)
	ToggleAll = key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all"),
	)
	NextField = key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	)
	PrevField = key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("Shift+Tab", "previous"),
	)
	Back = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	)
	Quit = key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	)
	ForceQuit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "quit"),
	)
)

// Navigate is the combined up/down hint.
var Navigate = layout.KeyHint{Key: "↑↓", Description: "navigate"}

// Hint turns a binding's help text into a footer hint.
func Hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

// Hints is Hint over several bindings.
func Hints(bs ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bs))
	for _, b := range bs {
		out = append(out, Hint(b))
	}
	return out
}

// WithDesc returns a copy of b with a different help description.
func WithDesc(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
