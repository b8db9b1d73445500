package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hazard/internal/domain"
	m "github.com/mouse-blink/hazard/internal/model"
)

type scanOptions struct {
	parallel       int
	extensions     []string
	exclude        []string
	textReport     bool
	failOnFindings bool
	incremental    bool
}

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan source files for hazardous constructs",
		Long:  scanLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	addScanFlags(cmd, opts)

	return cmd
}

func addScanFlags(cmd *cobra.Command, opts *scanOptions) {
	flags := cmd.Flags()
	flags.IntVarP(&opts.parallel, "parallel", "p", 1, "number of parallel scan workers")
	flags.StringArrayVar(&opts.extensions, "ext", []string{".py"}, "file extension to scan (can be repeated)")
	flags.StringArrayVarP(&opts.exclude, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	flags.BoolVar(&opts.textReport, "text-report", false, "write <name>_report.txt next to each file with findings")
	flags.BoolVar(&opts.failOnFindings, "fail-on-findings", false, "exit with an error when anything is found")
	flags.BoolVar(&opts.incremental, "incremental", false, "reuse saved reports for unchanged files")
}

func runScan(cmd *cobra.Command, opts *scanOptions, args []string) error {
	cfg, wf, err := prepare(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("parallel") {
		cfg.Scan.Parallel = opts.parallel
	}

	if flags.Changed("ext") {
		cfg.Scan.Extensions = opts.extensions
	}

	if flags.Changed("exclude") {
		cfg.Scan.Exclude = opts.exclude
	}

	if flags.Changed("text-report") {
		cfg.Reporting.Text = opts.textReport
	}

	if flags.Changed("fail-on-findings") {
		cfg.Scan.FailOnFindings = opts.failOnFindings
	}

	return wf.Scan(domain.ScanArgs{
		Paths:          parsePaths(args),
		Extensions:     cfg.Scan.Extensions,
		Exclude:        cfg.Scan.Exclude,
		Threads:        cfg.Scan.Parallel,
		Reports:        m.Path(cfg.Reporting.Dir),
		Incremental:    opts.incremental,
		TextReport:     cfg.Reporting.Text,
		FailOnFindings: cfg.Scan.FailOnFindings,
	})
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
