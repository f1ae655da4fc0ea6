package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all goals and the score",
	Long: `Reset empties the goals file and sets the score back to zero. Recorded
event history is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		path := configFrom(cmd).GoalsFile

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "This clears every goal in %s. Continue? [y/N] ", path)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
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
		sess.Reset(cmd.Context())
		if err := saveSession(cmd, sess); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Goals cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
