package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var goalEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "goal_index", "goal_name",
	"goal_kind", "points", "score", "level", "level_up", "completed",
}

func (r *eventRepo) AppendGoalEvent(ctx context.Context, data GoalEventData) error {
	err := r.insert(ctx, goalEventsTable,
		[]string{"session_id", "goal_index", "goal_name", "goal_kind", "points", "score", "level", "level_up", "completed"},
		[]any{data.SessionID, data.GoalIndex, data.GoalName, data.GoalKind, data.Points, data.Score, data.Level, data.LevelUp, data.Completed},
	)
	if err != nil {
		return fmt.Errorf("save goal event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGoalEvents(ctx context.Context, opts QueryOpts) ([]GoalEventRecord, error) {
	sel := sqlite.Select(goalEventColumns...).From(entsql.Table(goalEventsTable))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query goal events: %w", err)
	}
	defer rows.Close()

	var out []GoalEventRecord
	for rows.Next() {
		var (
			rec GoalEventRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.GoalIndex, &rec.GoalName,
			&rec.GoalKind, &rec.Points, &rec.Score, &rec.Level, &rec.LevelUp, &rec.Completed,
		); err != nil {
			return nil, fmt.Errorf("scan goal event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) PointsByKind(ctx context.Context) ([]KindPoints, error) {
	query, args := sqlite.Select("goal_kind", "COUNT(*)", "COALESCE(SUM(points), 0)").
		From(entsql.Table(goalEventsTable)).
		GroupBy("goal_kind").
		OrderBy("goal_kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query points by kind: %w", err)
	}
	defer rows.Close()

	var out []KindPoints
	for rows.Next() {
		var kp KindPoints
		if err := rows.Scan(&kp.Kind, &kp.Events, &kp.Points); err != nil {
			return nil, fmt.Errorf("scan points by kind: %w", err)
		}
		out = append(out, kp)
	}
	return out, rows.Err()
}
