package quest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abhisek/eternalquest/internal/store"
)

// ErrNoSaveFile is returned when loading a file that does not exist.
var ErrNoSaveFile = errors.New("save file not found")

// ErrNoSnapshot is returned by Restore when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot to restore")

// snapshotVersion is bumped when SnapshotData changes shape.
const snapshotVersion = 1

// SaveFile writes the session to path. The file is replaced atomically so
// a crash never leaves a half-written save behind.
func (s *Session) SaveFile(ctx context.Context, path string) error {
	text := s.Save()

	if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}

	s.logger.Info("goals saved", "path", path, "goals", s.goals.Count(), "score", s.tracker.Score())
	s.appendSession(ctx, store.ActionSave, path, "")
	s.snapshot(ctx, text)
	return nil
}

// LoadFile reads path and loads it into the session. A missing file
// returns ErrNoSaveFile and leaves the session untouched.
func (s *Session) LoadFile(ctx context.Context, path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoSaveFile)
		}
		return nil, fmt.Errorf("read save file: %w", err)
	}

	res, err := s.Load(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.appendSession(ctx, store.ActionLoad, path, "")
	return res, nil
}

// Restore loads the most recent snapshot taken by SaveFile.
func (s *Session) Restore(ctx context.Context) (*LoadResult, error) {
	if s.snapshots == nil {
		return nil, ErrNoSnapshot
	}
	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	if snap == nil {
		return nil, ErrNoSnapshot
	}

	res, err := s.Load(ctx, snap.Data.Goals)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot %d: %w", snap.ID, err)
	}
	s.appendSession(ctx, store.ActionRestore, "", fmt.Sprintf("snapshot %d", snap.ID))
	return res, nil
}

func (s *Session) snapshot(ctx context.Context, text string) {
	if s.snapshots == nil {
		return
	}
	now := s.now()
	err := s.snapshots.Save(ctx, &store.Snapshot{
		Sequence:  now.UnixMilli(),
		Timestamp: now,
		Data: store.SnapshotData{
			Version:   snapshotVersion,
			SessionID: s.ID,
			Score:     s.tracker.Score(),
			Level:     s.tracker.Level(),
			GoalCount: s.goals.Count(),
			Goals:     text,
		},
	})
	if err != nil {
		s.logger.Warn("failed to save snapshot", "error", err)
		return
	}
	if s.keep > 0 {
		if err := s.snapshots.Prune(ctx, s.keep); err != nil {
			s.logger.Warn("failed to prune snapshots", "error", err)
		}
	}
}
