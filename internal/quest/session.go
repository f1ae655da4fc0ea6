// Package quest ties the goal list, the score tracker and the save file
// codec into one session, and records what happens to the event log.
package quest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/eternalquest/internal/codec"
	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/score"
	"github.com/abhisek/eternalquest/internal/store"
)

// Options configures a Session. Every field is optional.
type Options struct {
	Events       store.EventRepo
	Snapshots    store.SnapshotRepo
	SnapshotKeep int // snapshots kept after each save (0 = keep all)
	Logger       *slog.Logger
	Clock        func() time.Time
}

// Session is one player's goal list and score. It is not safe for
// concurrent use.
type Session struct {
	ID string

	goals   *goals.List
	tracker *score.Tracker

	events    store.EventRepo
	snapshots store.SnapshotRepo
	keep      int
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an empty session: no goals, score 0, level 1.
func New(opts Options) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		goals:     goals.NewList(),
		tracker:   score.NewTracker(),
		events:    opts.Events,
		snapshots: opts.Snapshots,
		keep:      opts.SnapshotKeep,
		logger:    opts.Logger,
		now:       opts.Clock,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = s.logger.With("session", s.ID)
	return s
}

// EventResult is the outcome of recording one event against a goal.
type EventResult struct {
	Index   int
	Goal    *goals.Goal // state after the event
	Points  int
	Score   int
	Level   int
	LevelUp *score.LevelUp
}

// Message is the line shown to the player after the event.
func (r *EventResult) Message() string {
	return fmt.Sprintf("You earned %d points!", r.Points)
}

// LoadResult describes a successful load.
type LoadResult struct {
	Score   int
	Level   int
	Goals   int
	Skipped []codec.SkippedLine
	LevelUp *score.LevelUp
}

// Summary is a read-only view of the session for status lines.
type Summary struct {
	Score     int
	Level     int
	Goals     int
	Completed int
	IntoLevel int
	ToNext    int
}

// StatusLine renders the summary the way the main menu header shows it.
func (s Summary) StatusLine() string {
	return fmt.Sprintf("You have %d points and are at Level %d.", s.Score, s.Level)
}

// LevelUpMessage is the banner shown when the level rises.
func LevelUpMessage(lu score.LevelUp) string {
	return fmt.Sprintf("*** Congratulations! You leveled up to Level %d! ***", lu.To)
}

// CreateGoal appends a new goal built from spec and returns a copy of it.
// The spec is not validated here; see GoalSpec.Validate.
func (s *Session) CreateGoal(ctx context.Context, spec GoalSpec) (*goals.Goal, error) {
	g, err := spec.build()
	if err != nil {
		return nil, err
	}
	s.goals.Add(g)

	s.logger.Info("goal created", "index", s.goals.Count(), "kind", g.Kind, "name", g.Name)
	s.appendSession(ctx, store.ActionCreate, "", g.Name)
	return g.Clone(), nil
}

// RecordEvent records one accomplishment of the goal at the 1-based index.
func (s *Session) RecordEvent(ctx context.Context, index int) (*EventResult, error) {
	g, err := s.goals.Get(index)
	if err != nil {
		return nil, err
	}

	points := g.RecordEvent()
	res := &EventResult{
		Index:  index,
		Goal:   g.Clone(),
		Points: points,
	}
	if lu, up := s.tracker.Add(points); up {
		res.LevelUp = &lu
		s.logger.Info("level up", "from", lu.From, "to", lu.To)
	}
	res.Score = s.tracker.Score()
	res.Level = s.tracker.Level()

	s.logger.Debug("event recorded", "index", index, "name", g.Name, "points", points, "score", res.Score)

	if s.events != nil {
		err := s.events.AppendGoalEvent(ctx, store.GoalEventData{
			SessionID: s.ID,
			GoalIndex: index,
			GoalName:  g.Name,
			GoalKind:  string(g.Kind),
			Points:    points,
			Score:     res.Score,
			Level:     res.Level,
			LevelUp:   res.LevelUp != nil,
			Completed: g.IsComplete(),
		})
		if err != nil {
			s.logger.Warn("failed to log goal event", "error", err)
		}
	}

	return res, nil
}

// Goals returns copies of the goals in order.
func (s *Session) Goals() []*goals.Goal {
	all := s.goals.All()
	out := make([]*goals.Goal, len(all))
	for i, g := range all {
		out[i] = g.Clone()
	}
	return out
}

// Score returns the current score.
func (s *Session) Score() int { return s.tracker.Score() }

// Level returns the current level.
func (s *Session) Level() int { return s.tracker.Level() }

// Summary returns the current score, level and goal counts.
func (s *Session) Summary() Summary {
	sum := Summary{
		Score: s.tracker.Score(),
		Level: s.tracker.Level(),
		Goals: s.goals.Count(),
	}
	for _, g := range s.goals.All() {
		if g.IsComplete() {
			sum.Completed++
		}
	}
	sum.IntoLevel, sum.ToNext = s.tracker.Progress()
	return sum
}

// Save encodes the session in save file format.
func (s *Session) Save() string {
	return codec.Encode(s.tracker.Score(), s.goals.All())
}

// Load replaces the goal list and score with the decoded text. On error
// the session is left exactly as it was.
func (s *Session) Load(ctx context.Context, text string) (*LoadResult, error) {
	doc, err := codec.Decode(text)
	if err != nil {
		return nil, err
	}

	for _, sk := range doc.Skipped {
		s.logger.Warn("skipped unknown goal type", "line", sk.Line, "tag", sk.Tag)
	}

	s.goals.ReplaceAll(doc.Goals)
	res := &LoadResult{
		Goals:   len(doc.Goals),
		Skipped: doc.Skipped,
	}
	if lu, up := s.tracker.SetScore(doc.Score); up {
		res.LevelUp = &lu
	}
	res.Score = s.tracker.Score()
	res.Level = s.tracker.Level()

	s.logger.Info("goals loaded", "goals", res.Goals, "score", res.Score, "skipped", len(res.Skipped))
	return res, nil
}

// Begin marks the start of an interactive session in the event log.
func (s *Session) Begin(ctx context.Context) {
	s.logger.Info("session started", "goals", s.goals.Count(), "score", s.tracker.Score())
	s.appendSession(ctx, store.ActionStart, "", "")
}

// Reset empties the goal list and zeroes the score.
func (s *Session) Reset(ctx context.Context) {
	s.goals.ReplaceAll(nil)
	s.tracker.SetScore(0)
	s.logger.Info("session reset")
	s.appendSession(ctx, store.ActionReset, "", "")
}

func (s *Session) appendSession(ctx context.Context, action, path, detail string) {
	if s.events == nil {
		return
	}
	err := s.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: s.ID,
		Action:    action,
		Path:      path,
		Score:     s.tracker.Score(),
		GoalCount: s.goals.Count(),
		Detail:    detail,
	})
	if err != nil {
		s.logger.Warn("failed to log session event", "action", action, "error", err)
	}
}
