package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "quest.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestTablesCreated(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{goalEventsTable, sessionEventsTable, llmEventsTable, snapshotsTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quest.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendGoalEvent(ctx, GoalEventData{SessionID: "a", GoalIndex: 1, GoalName: "Run", GoalKind: "SimpleGoal", Points: 10, Score: 10, Level: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryGoalEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].GoalName != "Run" {
		t.Errorf("events after reopen = %+v, want one Run event", events)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
}

func TestGoalEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []GoalEventData{
		{SessionID: "s1", GoalIndex: 1, GoalName: "Read", GoalKind: "EternalGoal", Points: 15, Score: 15, Level: 1},
		{SessionID: "s1", GoalIndex: 2, GoalName: "Run", GoalKind: "SimpleGoal", Points: 10000, Score: 10015, Level: 2, LevelUp: true, Completed: true},
		{SessionID: "s2", GoalIndex: 1, GoalName: "Read", GoalKind: "EternalGoal", Points: 15, Score: 15, Level: 1},
	}
	for _, e := range events {
		if err := repo.AppendGoalEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryGoalEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	// Newest first.
	if all[0].SessionID != "s2" || all[2].GoalName != "Read" {
		t.Errorf("unexpected order: %+v", all)
	}
	if !all[1].LevelUp || !all[1].Completed || all[1].Level != 2 {
		t.Errorf("booleans/level not round-tripped: %+v", all[1])
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("sequence not increasing: %d <= %d", all[0].Sequence, all[1].Sequence)
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", all[0].Timestamp)
	}

	s1, err := repo.QueryGoalEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("session s1 events = %d, want 2", len(s1))
	}

	limited, err := repo.QueryGoalEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "s2" {
		t.Errorf("limit 1 = %+v, want newest event only", limited)
	}

	after, err := repo.QueryGoalEvents(ctx, QueryOpts{After: all[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("events after seq %d = %d, want 1", all[1].Sequence, len(after))
	}
}

func TestPointsByKind(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []GoalEventData{
		{GoalKind: "EternalGoal", Points: 15},
		{GoalKind: "EternalGoal", Points: 15},
		{GoalKind: "ChecklistGoal", Points: 550},
	} {
		if err := repo.AppendGoalEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.PointsByKind(ctx)
	if err != nil {
		t.Fatalf("points by kind: %v", err)
	}
	want := []KindPoints{
		{Kind: "ChecklistGoal", Events: 1, Points: 550},
		{Kind: "EternalGoal", Events: 2, Points: 30},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: ActionStart}); err != nil {
		t.Fatalf("append start: %v", err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: ActionSave, Path: "goals.txt", Score: 42, GoalCount: 3}); err != nil {
		t.Fatalf("append save: %v", err)
	}

	got, err := repo.QuerySessionEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Action != ActionSave || got[0].Path != "goals.txt" || got[0].Score != 42 || got[0].GoalCount != 3 {
		t.Errorf("latest event = %+v", got[0])
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "goal-suggest", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"a":1}`, ResponseBody: `{"b":2}`},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "goal-suggest", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "other", InputTokens: 10, OutputTokens: 0, LatencyMs: 50, ErrorMessage: "boom"},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "goal-suggest"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("goal-suggest events = %d, want 2", len(events))
	}

	first := events[len(events)-1]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != `{"a":1}` || got.ResponseBody != `{"b":2}` || !got.Success {
		t.Errorf("GetLLMEvent = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("purposes = %d, want 2", len(stats))
	}
	gs := stats[0]
	if gs.Purpose != "goal-suggest" || gs.Calls != 2 || gs.InputTokens != 400 || gs.OutputTokens != 200 || gs.AvgLatencyMs != 300 {
		t.Errorf("goal-suggest stats = %+v", gs)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 2 || models[0].Model != "claude-sonnet-4-20250514" || models[0].Calls != 2 {
		t.Errorf("model usage = %+v", models)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version:   1,
			Score:     500,
			Level:     1,
			GoalCount: 1,
			Goals:     "500\nEternalGoal:Read|Read daily|15\n",
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.Data.Score != 500 || snap.Data.Goals != "500\nEternalGoal:Read|Read daily|15\n" {
		t.Errorf("data = %+v", snap.Data)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1, Score: (i + 1) * 100},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 || snap.Data.Score != 300 {
		t.Errorf("latest = %+v, want sequence 3 score 300", snap)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("after prune count = %d, want 2", count)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 5 {
		t.Errorf("latest after prune = %d, want 5", snap.Sequence)
	}
}

func TestSnapshotPruneFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &Snapshot{Sequence: 1, Timestamp: time.Now(), Data: SnapshotData{Version: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("QUEST_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUEST_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "eternalquest", "quest.db"); got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
}
