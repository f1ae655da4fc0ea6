package score

import "testing"

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 1},
		{1, 1},
		{9999, 1},
		{10000, 2},
		{19999, 2},
		{25000, 3},
		{100000, 11},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestTracker_New(t *testing.T) {
	tr := NewTracker()
	if tr.Score() != 0 || tr.Level() != 1 {
		t.Errorf("new tracker = (%d, %d), want (0, 1)", tr.Score(), tr.Level())
	}
}

func TestTracker_AddReportsLevelUpOnce(t *testing.T) {
	tr := NewTracker()

	if _, up := tr.Add(9999); up {
		t.Error("9999 points should not level up")
	}
	if tr.Level() != 1 {
		t.Errorf("level = %d, want 1", tr.Level())
	}

	lu, up := tr.Add(1)
	if !up {
		t.Fatal("crossing 10000 should level up")
	}
	if lu.From != 1 || lu.To != 2 {
		t.Errorf("LevelUp = %+v, want {1 2}", lu)
	}

	if _, up := tr.Add(50); up {
		t.Error("staying within level 2 should not report again")
	}
}

func TestTracker_AddMultiLevelJump(t *testing.T) {
	tr := NewTracker()

	lu, up := tr.Add(25000)
	if !up {
		t.Fatal("expected level-up")
	}
	if lu.From != 1 || lu.To != 3 {
		t.Errorf("LevelUp = %+v, want {1 3}", lu)
	}
	if tr.Score() != 25000 {
		t.Errorf("score = %d, want 25000", tr.Score())
	}
}

func TestTracker_AddIgnoresNonPositive(t *testing.T) {
	tr := NewTracker()
	tr.Add(500)

	tr.Add(0)
	tr.Add(-200)

	if tr.Score() != 500 {
		t.Errorf("score = %d, want 500", tr.Score())
	}
}

func TestTracker_SetScore(t *testing.T) {
	tr := NewTracker()

	lu, up := tr.SetScore(30000)
	if !up || lu.To != 4 {
		t.Errorf("SetScore(30000) = (%+v, %v), want level-up to 4", lu, up)
	}

	// Loading a smaller save lowers the level silently.
	if _, up := tr.SetScore(500); up {
		t.Error("lower score must not report a level-up")
	}
	if tr.Level() != 1 {
		t.Errorf("level after lower load = %d, want 1", tr.Level())
	}

	// Climbing again from the lowered level reports normally.
	lu, up = tr.Add(9500)
	if !up || lu.From != 1 || lu.To != 2 {
		t.Errorf("Add after lowered load = (%+v, %v), want {1 2}", lu, up)
	}
}

func TestTracker_SetScoreSameLevel(t *testing.T) {
	tr := NewTracker()
	if _, up := tr.SetScore(700); up {
		t.Error("score within level 1 should not level up")
	}
	if _, up := tr.SetScore(-1); up {
		t.Error("negative score should not level up")
	}
	if tr.Score() != 0 {
		t.Errorf("negative SetScore stored %d, want 0", tr.Score())
	}
}

func TestTracker_Progress(t *testing.T) {
	tr := NewTracker()
	tr.Add(12500)

	into, remaining := tr.Progress()
	if into != 2500 || remaining != 7500 {
		t.Errorf("Progress() = (%d, %d), want (2500, 7500)", into, remaining)
	}
}
