package goals

import "fmt"

// IndexError reports a 1-based goal index outside [1, Count].
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("goal %d does not exist: no goals yet", e.Index)
	}
	return fmt.Sprintf("goal %d does not exist: choose 1-%d", e.Index, e.Count)
}

// List is the ordered set of goals owned by one session. Order is
// insertion order and drives both display and the 1-based indices.
type List struct {
	goals []*Goal
}

// NewList creates a list holding the given goals in order.
func NewList(goals ...*Goal) *List {
	l := &List{}
	l.goals = append(l.goals, goals...)
	return l
}

// Add appends a goal.
func (l *List) Add(g *Goal) {
	l.goals = append(l.goals, g)
}

// Get returns the goal at the 1-based index.
func (l *List) Get(index int) (*Goal, error) {
	if index < 1 || index > len(l.goals) {
		return nil, &IndexError{Index: index, Count: len(l.goals)}
	}
	return l.goals[index-1], nil
}

// Count returns the number of goals.
func (l *List) Count() int {
	return len(l.goals)
}

// All returns the goals in order. The slice is a copy; the goals are not.
func (l *List) All() []*Goal {
	out := make([]*Goal, len(l.goals))
	copy(out, l.goals)
	return out
}

// ReplaceAll swaps the whole contents of the list in one step.
func (l *List) ReplaceAll(goals []*Goal) {
	next := make([]*Goal, len(goals))
	copy(next, goals)
	l.goals = next
}
