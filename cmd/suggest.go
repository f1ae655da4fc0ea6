package cmd

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/llm"
	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask an LLM to suggest new goals",
	Long: `Suggest goals for a theme using the configured LLM provider. Goals you
already track are not suggested again. With --add the suggestions are
created and saved to the goals file.`,
	Example: `  quest suggest --theme "fitness"
  quest suggest --theme "learn Spanish" --count 5 --add
  quest suggest --provider openai --model gpt-4o-mini`,
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, _ := cmd.Flags().GetString("theme")
		count, _ := cmd.Flags().GetInt("count")
		add, _ := cmd.Flags().GetBool("add")

		ctx := cmd.Context()
		logger := logging.FromContext(ctx)

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := newProvider(cmd, st.EventRepo(), logger)
		if err != nil {
			return err
		}

		sess, err := newSession(cmd, st, true)
		if err != nil {
			return err
		}
		existing := make([]string, 0, len(sess.Goals()))
		for _, g := range sess.Goals() {
			existing = append(existing, g.Name)
		}

		svc := suggest.NewService(provider, suggest.DefaultConfig(), logger)
		got, err := svc.Suggest(ctx, suggest.Input{Theme: theme, Count: count, Existing: existing})
		if err != nil {
			var unavailable *llm.ErrProviderUnavailable
			if errors.As(err, &unavailable) {
				return fmt.Errorf("%s: %w", provider.ModelID(), err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Type", "Goal", "Description", "Points", "Target", "Bonus", "Why"})
		for i, s := range got {
			t.AppendRow(table.Row{i + 1, s.Spec.Kind.DisplayName(), s.Spec.Name, s.Spec.Description, s.Spec.Points, s.Spec.Target, s.Spec.Bonus, s.Reason})
		}
		t.Render()

		if !add {
			return nil
		}
		for _, s := range got {
			if _, err := sess.CreateGoal(ctx, s.Spec); err != nil {
				return fmt.Errorf("add %q: %w", s.Spec.Name, err)
			}
		}
		if err := saveSession(cmd, sess); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %d goals.\n", len(got))
		return nil
	},
}

func init() {
	f := suggestCmd.Flags()
	f.StringP("theme", "t", "", "what the goals should be about")
	f.IntP("count", "c", suggest.DefaultCount, "how many goals to suggest")
	f.Bool("add", false, "create the suggested goals and save them")
	f.String("provider", "", "LLM provider: anthropic, openai, gemini, openrouter")
	f.String("model", "", "model ID for the selected provider")
}
