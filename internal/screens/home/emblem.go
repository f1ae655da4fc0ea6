package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/ui/theme"
)

// EmblemVariant selects which emblem art to display.
type EmblemVariant int

const (
	EmblemIdle       EmblemVariant = iota // no goals yet
	EmblemQuesting                        // goals in progress
	EmblemVictorious                      // every goal that can finish has finished
)

const emblemIdle = `  /\
 /  \
 |  |
 |  |
-+--+-
  ||`

const emblemQuesting = `  /\   *
 /  \
 |  |
 |  |
-+--+-
  ||`

const emblemVictorious = `\ * * /
 \ /\ /
  |  |
  |  |
 -+--+-
   ||`

// EmblemFor picks the variant for a session summary.
func EmblemFor(sum quest.Summary) EmblemVariant {
	switch {
	case sum.Goals == 0:
		return EmblemIdle
	case sum.Completed == sum.Goals:
		return EmblemVictorious
	default:
		return EmblemQuesting
	}
}

// RenderEmblem returns the emblem art for v.
func RenderEmblem(v EmblemVariant) string {
	switch v {
	case EmblemVictorious:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(emblemVictorious)
	case EmblemQuesting:
		return lipgloss.NewStyle().Foreground(theme.Primary).Render(emblemQuesting)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(emblemIdle)
	}
}
