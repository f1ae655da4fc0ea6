package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/store"
)

// openStore opens the event database named by --db / QUEST_DATABASE, or the
// default data path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg := configFrom(cmd)
	dbPath := cfg.Database
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug("opened database", "path", dbPath)
	return st, nil
}

// newSession builds a session backed by st. When load is true the goals
// file is read; a missing file starts an empty quest.
func newSession(cmd *cobra.Command, st *store.Store, load bool) (*quest.Session, error) {
	cfg := configFrom(cmd)
	ctx := cmd.Context()

	sess := quest.New(quest.Options{
		Events:       st.EventRepo(),
		Snapshots:    st.SnapshotRepo(),
		SnapshotKeep: cfg.SnapshotKeep,
		Logger:       logging.FromContext(ctx),
	})
	if !load {
		return sess, nil
	}

	res, err := sess.LoadFile(ctx, cfg.GoalsFile)
	switch {
	case errors.Is(err, quest.ErrNoSaveFile):
		return sess, nil
	case err != nil:
		return nil, err
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped line %d: unknown goal type %q\n", s.Line, s.Tag)
	}
	return sess, nil
}

// saveSession writes the session back to the goals file.
func saveSession(cmd *cobra.Command, sess *quest.Session) error {
	return sess.SaveFile(cmd.Context(), configFrom(cmd).GoalsFile)
}
