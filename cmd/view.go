package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hazard/internal/domain"
	m "github.com/mouse-blink/hazard/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved scan reports",
		Long:  "View previously saved scan reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, wf, err := prepare(cmd)
			if err != nil {
				return err
			}

			return wf.View(domain.ViewArgs{Reports: m.Path(cfg.Reporting.Dir)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
