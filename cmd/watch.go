package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/eternalquest/internal/logging"
	"github.com/abhisek/eternalquest/internal/quest"
	"github.com/abhisek/eternalquest/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the score whenever the goals file changes",
	Long: `Watch the goals file and print the score line each time it is saved,
for example by 'quest record' in another terminal. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := newSession(cmd, st, true)
		if err != nil {
			return err
		}

		path := configFrom(cmd).GoalsFile
		out := cmd.OutOrStdout()
		logger := logging.FromContext(ctx)

		fmt.Fprintf(out, "Watching %s\n", path)
		fmt.Fprintln(out, sess.Summary().StatusLine())

		return watch.Watch(ctx, path, func() {
			res, err := sess.LoadFile(ctx, path)
			switch {
			case errors.Is(err, quest.ErrNoSaveFile):
				fmt.Fprintln(out, "Goals file removed.")
				return
			case err != nil:
				logger.Warn("reload goals file", "path", path, "error", err)
				return
			}
			if res.LevelUp != nil {
				fmt.Fprintln(out, quest.LevelUpMessage(*res.LevelUp))
			}
			fmt.Fprintln(out, sess.Summary().StatusLine())
		})
	},
}
