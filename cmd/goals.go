package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/quest"
)

var createCmd = &cobra.Command{
	Use:     "create <simple|eternal|checklist>",
	Short:   "Create a goal and save it to the goals file",
	Example: `  quest create simple --name "Run a marathon" --description "42km" --points 1000
  quest create checklist --name "Read scripture" --description "daily" --points 50 --target 10 --bonus 500`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"simple", "eternal", "checklist"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := goals.ParseKind(args[0])
		if !ok {
			return fmt.Errorf("unknown goal type %q (want simple, eternal or checklist)", args[0])
		}

		f := cmd.Flags()
		spec := quest.GoalSpec{Kind: kind}
		spec.Name, _ = f.GetString("name")
		spec.Description, _ = f.GetString("description")
		spec.Points, _ = f.GetInt("points")
		spec.Target, _ = f.GetInt("target")
		spec.Bonus, _ = f.GetInt("bonus")
		if err := spec.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := newSession(cmd, st, true)
		if err != nil {
			return err
		}
		g, err := sess.CreateGoal(cmd.Context(), spec)
		if err != nil {
			return err
		}
		if err := saveSession(cmd, sess); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Goal created successfully!")
		fmt.Fprintf(out, "%d. %s\n", len(sess.Goals()), g.Details())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals in the goals file",
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
		all := sess.Goals()
		if len(all) == 0 {
			fmt.Fprintln(out, "No goals yet. Create one with 'quest create'.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Type", "Goal", "Description", "Points", "Progress", "Done"})
		for i, g := range all {
			t.AppendRow(table.Row{i + 1, g.Kind.Icon() + " " + g.Kind.DisplayName(), g.Name, g.Description, g.Points, progress(g), doneMark(g)})
		}
		t.Render()
		fmt.Fprintln(out, sess.Summary().StatusLine())
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <goal-number>",
	Short: "Record an event against a goal and save",
	Long: `Record one accomplishment of a goal. The goal number is the one shown
by 'quest list'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid goal number %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := newSession(cmd, st, true)
		if err != nil {
			return err
		}
		res, err := sess.RecordEvent(cmd.Context(), n)
		if err != nil {
			return err
		}
		if err := saveSession(cmd, sess); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Message())
		if res.LevelUp != nil {
			fmt.Fprintln(out, quest.LevelUpMessage(*res.LevelUp))
		}
		fmt.Fprintln(out, sess.Summary().StatusLine())
		return nil
	},
}

func progress(g *goals.Goal) string {
	if g.Kind != goals.KindChecklist {
		return ""
	}
	return fmt.Sprintf("%d/%d (+%d)", g.Completed, g.Target, g.Bonus)
}

func doneMark(g *goals.Goal) string {
	if g.IsComplete() {
		return "X"
	}
	return ""
}

func init() {
	f := createCmd.Flags()
	f.String("name", "", "goal name")
	f.String("description", "", "short description")
	f.Int("points", 0, "points awarded per event")
	f.Int("target", 0, "checklist: events needed for the bonus")
	f.Int("bonus", 0, "checklist: bonus points on completion")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("points")
}
