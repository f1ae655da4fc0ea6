package goals

import (
	"fmt"
	"strconv"
	"strings"
)

// Separators used by the save file line format. Names and descriptions
// must not contain them; nothing is escaped.
const (
	TagSeparator   = ":"
	FieldSeparator = "|"
)

// Goal is a single tracked goal. Kind selects which of the variant
// fields are meaningful:
//
//   - KindSimple uses Done.
//   - KindEternal uses none.
//   - KindChecklist uses Completed, Target and Bonus.
type Goal struct {
	Kind        Kind
	Name        string
	Description string
	Points      int

	Done bool

	Completed int
	Target    int
	Bonus     int
}

// NewSimple creates a one-shot goal that pays out once.
func NewSimple(name, description string, points int) *Goal {
	return &Goal{Kind: KindSimple, Name: name, Description: description, Points: points}
}

// NewEternal creates a goal that pays out on every event and never completes.
func NewEternal(name, description string, points int) *Goal {
	return &Goal{Kind: KindEternal, Name: name, Description: description, Points: points}
}

// NewChecklist creates a goal that must be recorded target times. The event
// that reaches target pays points plus bonus.
func NewChecklist(name, description string, points, target, bonus int) *Goal {
	return &Goal{
		Kind:        KindChecklist,
		Name:        name,
		Description: description,
		Points:      points,
		Target:      target,
		Bonus:       bonus,
	}
}

// RecordEvent marks the goal as worked on once and returns the points
// earned by this single event.
func (g *Goal) RecordEvent() int {
	switch g.Kind {
	case KindSimple:
		if g.Done {
			return 0
		}
		g.Done = true
		return g.Points
	case KindChecklist:
		g.Completed++
		if g.Completed == g.Target {
			return g.Points + g.Bonus
		}
		return g.Points
	default:
		return g.Points
	}
}

// IsComplete reports whether the goal has been accomplished.
func (g *Goal) IsComplete() bool {
	switch g.Kind {
	case KindSimple:
		return g.Done
	case KindChecklist:
		return g.Completed >= g.Target
	default:
		return false
	}
}

// Details renders the goal for listing, e.g. "[X] Run (Run a marathon)".
func (g *Goal) Details() string {
	status := "[ ]"
	if g.IsComplete() {
		status = "[X]"
	}
	s := fmt.Sprintf("%s %s (%s)", status, g.Name, g.Description)
	if g.Kind == KindChecklist {
		s += fmt.Sprintf(" -- Currently completed: %d/%d", g.Completed, g.Target)
	}
	return s
}

// Line returns the goal's canonical save file line.
func (g *Goal) Line() string {
	fields := []string{g.Name, g.Description, strconv.Itoa(g.Points)}
	switch g.Kind {
	case KindSimple:
		fields = append(fields, FormatBool(g.Done))
	case KindChecklist:
		fields = append(fields,
			strconv.Itoa(g.Completed),
			strconv.Itoa(g.Target),
			strconv.Itoa(g.Bonus),
		)
	}
	return string(g.Kind) + TagSeparator + strings.Join(fields, FieldSeparator)
}

// Clone returns a copy of g that shares no state with it.
func (g *Goal) Clone() *Goal {
	c := *g
	return &c
}

// FormatBool renders a completion flag the way save files spell it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
