package quest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/eternalquest/internal/goals"
)

// GoalSpec is the user-supplied description of a new goal. Target and
// Bonus only apply to checklist goals.
type GoalSpec struct {
	Kind        goals.Kind
	Name        string
	Description string
	Points      int
	Target      int
	Bonus       int
}

// reserved are the characters the save file format cannot carry.
const reserved = goals.FieldSeparator + goals.TagSeparator + "\r\n"

// Validate checks the goal spec against what the engine and the save file
// format can represent. The engine itself trusts its inputs; callers
// (CLI, TUI, suggestions) validate first.
func (s GoalSpec) Validate() error {
	var errs []error

	if !s.Kind.Valid() {
		errs = append(errs, fmt.Errorf("unknown goal kind %q", s.Kind))
	}
	if strings.ContainsAny(s.Name, reserved) {
		errs = append(errs, fmt.Errorf("name must not contain '|', ':' or line breaks"))
	}
	if strings.ContainsAny(s.Description, reserved) {
		errs = append(errs, fmt.Errorf("description must not contain '|', ':' or line breaks"))
	}
	if s.Points < 0 {
		errs = append(errs, fmt.Errorf("points must not be negative, got %d", s.Points))
	}
	if s.Kind == goals.KindChecklist {
		if s.Target <= 0 {
			errs = append(errs, fmt.Errorf("target must be at least 1, got %d", s.Target))
		}
		if s.Bonus < 0 {
			errs = append(errs, fmt.Errorf("bonus must not be negative, got %d", s.Bonus))
		}
	}

	return errors.Join(errs...)
}

// build constructs a fresh goal from s.
func (s GoalSpec) build() (*goals.Goal, error) {
	switch s.Kind {
	case goals.KindSimple:
		return goals.NewSimple(s.Name, s.Description, s.Points), nil
	case goals.KindEternal:
		return goals.NewEternal(s.Name, s.Description, s.Points), nil
	case goals.KindChecklist:
		return goals.NewChecklist(s.Name, s.Description, s.Points, s.Target, s.Bonus), nil
	}
	return nil, fmt.Errorf("unknown goal kind %q", s.Kind)
}
