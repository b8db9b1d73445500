package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hazard/internal/controller"
)

// menuCmd represents the menu command.
var menuCmd = newMenuCmd()

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Scan files one at a time from an interactive menu",
		Long: `Scan files one at a time from an interactive menu. Each file with findings
gets a <name>_report.txt written next to it.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, wf, err := prepare(cmd)
			if err != nil {
				return err
			}

			return controller.NewMenu(cmd.InOrStdin(), cmd.OutOrStdout()).Run(wf.ScanFile)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
