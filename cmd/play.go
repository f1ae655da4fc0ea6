package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/app"
	"github.com/abhisek/eternalquest/internal/llm"
	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/store"
	"github.com/abhisek/eternalquest/internal/suggest"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, _ := cmd.Flags().GetBool("fresh")
		return runPlay(cmd, fresh)
	},
}

func runPlay(cmd *cobra.Command, fresh bool) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := newSession(cmd, st, !fresh)
	if err != nil {
		return err
	}
	sess.Begin(ctx)

	err = app.Run(app.Options{
		Session:   sess,
		GoalsFile: configFrom(cmd).GoalsFile,
		Events:    st.EventRepo(),
		Suggester: buildSuggester(cmd, st.EventRepo(), logger),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Thanks for using Eternal Quest. Goodbye!")
	return nil
}

// buildSuggester returns nil when no LLM provider is configured. The menu
// then shows suggestions as unavailable.
func buildSuggester(cmd *cobra.Command, repo store.EventRepo, logger *slog.Logger) *suggest.Service {
	provider, err := newProvider(cmd, repo, logger)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			logger.Warn("LLM provider unavailable", "error", err)
		}
		return nil
	}
	return suggest.NewService(provider, suggest.DefaultConfig(), logger)
}

func newProvider(cmd *cobra.Command, repo store.EventRepo, logger *slog.Logger) (llm.Provider, error) {
	c := configFrom(cmd).LLM
	return llm.NewProviderFromEnv(cmd.Context(), llm.Overrides{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		Timeout:  c.Timeout,
	}, repo, logger)
}

func init() {
	playCmd.Flags().Bool("fresh", false, "start with no goals instead of loading the goals file")
}
