// Package screen defines what a TUI screen is and the collaborators
// screens are built with.
package screen

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/store"
	"github.com/abhisek/eternalquest/internal/suggest"
	"github.com/abhisek/eternalquest/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Deps are shared by every screen. Session is required; the rest may be
// zero.
type Deps struct {
	Session   *quest.Session
	GoalsFile string           // default path for save and load
	Events    store.EventRepo  // nil disables history
	Suggester *suggest.Service // nil when no LLM is configured
	Logger    *slog.Logger
}
