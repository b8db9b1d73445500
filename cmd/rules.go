package cmd

import (
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active detection rules",
		Long:  "List the active detection rules in match order, including any --rules pack.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, wf, err := prepare(cmd)
			if err != nil {
				return err
			}

			return wf.Rules()
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
