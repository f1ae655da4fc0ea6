package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events from this session
	Purpose   string    // LLM events only: filter by purpose
}

// SnapshotData captures the full quest state at a point in time.
type SnapshotData struct {
	Version   int    `json:"version"`
	SessionID string `json:"session_id"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	GoalCount int    `json:"goal_count"`
	// Goals holds the save-file encoding of score and goals.
	Goals string `json:"goals"`
}

// Snapshot represents a point-in-time capture of quest state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages quest state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// GoalEventData captures a single recorded goal event.
type GoalEventData struct {
	SessionID string
	GoalIndex int // 1-based position in the goal list
	GoalName  string
	GoalKind  string
	Points    int // points awarded by this event, bonus included
	Score     int // score after the event
	Level     int // level after the event
	LevelUp   bool
	Completed bool // goal reports complete after the event
}

// GoalEventRecord is a persisted goal event.
type GoalEventRecord struct {
	GoalEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// KindPoints aggregates awarded points per goal kind.
type KindPoints struct {
	Kind   string
	Events int
	Points int
}

// Session actions.
const (
	ActionStart   = "start"
	ActionCreate  = "create"
	ActionSave    = "save"
	ActionLoad    = "load"
	ActionRestore = "restore"
	ActionReset   = "reset"
)

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID string
	Action    string
	Path      string // save file involved, if any
	Score     int
	GoalCount int
	Detail    string
}

// SessionEventRecord is a persisted session event.
type SessionEventRecord struct {
	SessionEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a persisted LLM request event.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendGoalEvent records a goal event.
	AppendGoalEvent(ctx context.Context, data GoalEventData) error

	// QueryGoalEvents returns goal events, newest first.
	QueryGoalEvents(ctx context.Context, opts QueryOpts) ([]GoalEventRecord, error)

	// PointsByKind sums awarded points per goal kind.
	PointsByKind(ctx context.Context) ([]KindPoints, error)

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates LLM usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
