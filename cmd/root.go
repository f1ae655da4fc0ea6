// Package cmd wires the quest command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/config"
	"github.com/abhisek/eternalquest/internal/logging"
)

var cfgFile string

// configKey stores the resolved *config.Config on the command context.
type configKey struct{}

var rootCmd = &cobra.Command{
	Use:   "quest",
	Short: "Eternal Quest goal tracker",
	Long: `Eternal Quest turns your goals into a game. Simple goals are done once,
eternal goals pay out every time, and checklist goals pay a bonus when you
hit the target. Every 10000 points is a new level.

Run without a command to open the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
			return nil
		}

		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = context.WithValue(ctx, configKey{}, cfg)
		ctx = logging.WithLogger(ctx, logger)
		cmd.SetContext(ctx)

		if cfg.ConfigFile != "" {
			logger.Debug("using config file", "path", cfg.ConfigFile)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, false)
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/eternalquest/config.yaml)")
	pf.String("file", "", "goals file (overrides QUEST_GOALS_FILE)")
	pf.String("db", "", "path to SQLite database file (overrides QUEST_DB)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// configFrom returns the configuration loaded for this command.
func configFrom(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		LogLevel:     config.DefaultLogLevel,
		LogFormat:    config.DefaultLogFormat,
		SnapshotKeep: config.DefaultSnapshotKeep,
	}
}
