package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/ui/components"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show score, level and points earned per goal type",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := newSession(cmd, st, true)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sum := sess.Summary()
		fmt.Fprintln(out, sum.StatusLine())
		fmt.Fprintln(out, components.NewLevelProgress(sum.Level, sum.IntoLevel, sum.ToNext, 40).View())
		fmt.Fprintf(out, "%d goals, %d completed\n", sum.Goals, sum.Completed)

		kinds, err := st.EventRepo().PointsByKind(cmd.Context())
		if err != nil {
			return fmt.Errorf("query points: %w", err)
		}
		if len(kinds) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.SetTitle("Points recorded (all sessions)")
		t.AppendHeader(table.Row{"Type", "Events", "Points"})
		var events, points int
		for _, k := range kinds {
			kind := goals.Kind(k.Kind)
			t.AppendRow(table.Row{kind.Icon() + " " + kind.DisplayName(), k.Events, k.Points})
			events += k.Events
			points += k.Points
		}
		t.AppendFooter(table.Row{"Total", events, points})
		t.Render()
		return nil
	},
}
