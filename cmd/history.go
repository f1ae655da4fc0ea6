package cmd

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently recorded goal events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryGoalEvents(cmd.Context(), store.QueryOpts{Limit: limit, SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events recorded yet.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Time", "#", "Goal", "Type", "Points", "Score", "Level", ""})
		for _, e := range events {
			var mark string
			switch {
			case e.LevelUp:
				mark = "level up!"
			case e.Completed:
				mark = "X"
			}
			t.AppendRow(table.Row{
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.GoalIndex,
				e.GoalName,
				goals.Kind(e.GoalKind).DisplayName(),
				e.Points,
				e.Score,
				e.Level,
				mark,
			})
		}
		t.Render()
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Rewrite the goals file from the last saved snapshot",
	Long: `Every save also keeps a snapshot of the goals file in the database.
restore reads the newest snapshot and writes it back to the goals file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := newSession(cmd, st, false)
		if err != nil {
			return err
		}
		res, err := sess.Restore(cmd.Context())
		if errors.Is(err, quest.ErrNoSnapshot) {
			return errors.New("nothing to restore: no goals have been saved yet")
		}
		if err != nil {
			return err
		}
		if err := saveSession(cmd, sess); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d goals. %s\n", res.Goals, sess.Summary().StatusLine())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of events to show")
	historyCmd.Flags().String("session", "", "only show events from this session ID")
}
