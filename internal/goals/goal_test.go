package goals

import (
	"testing"
)

func TestSimpleGoal_RecordEvent(t *testing.T) {
	g := NewSimple("Run", "Run a marathon", 1000)

	if g.IsComplete() {
		t.Fatal("new simple goal should not be complete")
	}
	if got := g.RecordEvent(); got != 1000 {
		t.Errorf("first RecordEvent = %d, want 1000", got)
	}
	if !g.IsComplete() {
		t.Error("simple goal should be complete after first event")
	}

	for i := 0; i < 3; i++ {
		if got := g.RecordEvent(); got != 0 {
			t.Errorf("repeat RecordEvent #%d = %d, want 0", i+1, got)
		}
		if !g.IsComplete() {
			t.Errorf("simple goal should stay complete after repeat #%d", i+1)
		}
	}
}

func TestEternalGoal_RecordEvent(t *testing.T) {
	g := NewEternal("Read", "Read daily", 15)

	for i := 0; i < 5; i++ {
		if got := g.RecordEvent(); got != 15 {
			t.Errorf("RecordEvent #%d = %d, want 15", i+1, got)
		}
		if g.IsComplete() {
			t.Errorf("eternal goal should never complete (event #%d)", i+1)
		}
	}
	if *g != *NewEternal("Read", "Read daily", 15) {
		t.Errorf("eternal goal state changed: %+v", *g)
	}
}

func TestChecklistGoal_AttendClass(t *testing.T) {
	g := NewChecklist("Attend Class", "Attend 3 sessions", 50, 3, 100)

	wantPoints := []int{50, 50, 150}
	wantComplete := []bool{false, false, true}
	for i := range wantPoints {
		if got := g.RecordEvent(); got != wantPoints[i] {
			t.Errorf("event %d: points = %d, want %d", i+1, got, wantPoints[i])
		}
		if got := g.IsComplete(); got != wantComplete[i] {
			t.Errorf("event %d: IsComplete = %v, want %v", i+1, got, wantComplete[i])
		}
	}
}

func TestChecklistGoal_BonusOnlyAtCrossing(t *testing.T) {
	tests := []struct {
		name                  string
		points, target, bonus int
	}{
		{"target one", 10, 1, 500},
		{"target five", 25, 5, 100},
		{"zero bonus", 7, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewChecklist("c", "d", tt.points, tt.target, tt.bonus)
			for call := 1; call <= tt.target+3; call++ {
				want := tt.points
				if call == tt.target {
					want += tt.bonus
				}
				if got := g.RecordEvent(); got != want {
					t.Errorf("call %d: points = %d, want %d", call, got, want)
				}
				if got, want := g.IsComplete(), call >= tt.target; got != want {
					t.Errorf("call %d: IsComplete = %v, want %v", call, got, want)
				}
				if g.Completed != call {
					t.Errorf("call %d: Completed = %d", call, g.Completed)
				}
			}
		})
	}
}

func TestChecklistGoal_RestoredPastTarget(t *testing.T) {
	g := &Goal{Kind: KindChecklist, Name: "c", Description: "d", Points: 5, Completed: 4, Target: 3, Bonus: 50}

	if got := g.RecordEvent(); got != 5 {
		t.Errorf("points past target = %d, want 5 (no bonus)", got)
	}
	if g.Completed != 5 {
		t.Errorf("Completed = %d, want 5", g.Completed)
	}
}

func TestGoal_Details(t *testing.T) {
	done := NewSimple("Run", "Run a marathon", 1000)
	done.RecordEvent()

	checklist := NewChecklist("Attend Class", "Attend 3 sessions", 50, 3, 100)
	checklist.RecordEvent()

	finished := NewChecklist("Temple", "Go 2 times", 50, 2, 100)
	finished.RecordEvent()
	finished.RecordEvent()

	tests := []struct {
		goal *Goal
		want string
	}{
		{NewSimple("Run", "Run a marathon", 1000), "[ ] Run (Run a marathon)"},
		{done, "[X] Run (Run a marathon)"},
		{NewEternal("Read", "Read daily", 15), "[ ] Read (Read daily)"},
		{checklist, "[ ] Attend Class (Attend 3 sessions) -- Currently completed: 1/3"},
		{finished, "[X] Temple (Go 2 times) -- Currently completed: 2/2"},
	}

	for _, tt := range tests {
		if got := tt.goal.Details(); got != tt.want {
			t.Errorf("Details() = %q, want %q", got, tt.want)
		}
	}
}

func TestGoal_Line(t *testing.T) {
	done := NewSimple("Run", "Run a marathon", 1000)
	done.RecordEvent()

	checklist := NewChecklist("Attend Class", "Attend 3 sessions", 50, 3, 100)
	checklist.RecordEvent()

	tests := []struct {
		goal *Goal
		want string
	}{
		{NewSimple("Run", "Run a marathon", 1000), "SimpleGoal:Run|Run a marathon|1000|False"},
		{done, "SimpleGoal:Run|Run a marathon|1000|True"},
		{NewEternal("Read", "Read daily", 15), "EternalGoal:Read|Read daily|15"},
		{checklist, "ChecklistGoal:Attend Class|Attend 3 sessions|50|1|3|100"},
	}

	for _, tt := range tests {
		if got := tt.goal.Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}

func TestGoal_Clone(t *testing.T) {
	g := NewChecklist("c", "d", 1, 2, 3)
	c := g.Clone()
	c.RecordEvent()

	if g.Completed != 0 {
		t.Errorf("original mutated through clone: Completed = %d", g.Completed)
	}
	if c.Completed != 1 {
		t.Errorf("clone Completed = %d, want 1", c.Completed)
	}
}
