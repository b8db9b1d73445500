// Package cmd provides the root command and CLI setup for hazard.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hazard/internal/adapter"
	"github.com/mouse-blink/hazard/internal/config"
	"github.com/mouse-blink/hazard/internal/controller"
	"github.com/mouse-blink/hazard/internal/domain"
	"github.com/mouse-blink/hazard/internal/logging"
	m "github.com/mouse-blink/hazard/internal/model"
)

var configFlag string
var logLevelFlag string
var logFormatFlag string
var rulesFlag string
var reportsFlag string

// newWorkflow wires the adapters for a run.
var newWorkflow = buildWorkflow

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

const scanLongDescription = `Hazard flags source lines that match known dangerous constructs
(eval/exec, os.system, subprocess calls, pickle, unvalidated input,
bare try/except) and literal division or modulo by 0 or NaN.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - app.py lib     scan a file and a directory (non-recursive)`

func newRootCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:          "hazard [paths...]",
		Short:        "Static hazard scanner for Python sources",
		Long:         scanLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default "+config.DefaultFile+" when present)")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFormatFlag, "log-format", "", "log format: text or json")
	flags.StringVar(&rulesFlag, "rules", "", "YAML rule pack extending or replacing the built-in rules")
	flags.StringVarP(&reportsFlag, "reports", "o", config.DefaultConfig().Reporting.Dir, "directory for YAML reports")

	addScanFlags(cmd, opts)

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// prepare resolves the effective configuration for cmd and builds the
// workflow. Precedence: defaults, config file, HAZARD_* env, then flags.
func prepare(cmd *cobra.Command) (config.Config, domain.Workflow, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevelFlag
	}

	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormatFlag
	}

	if flags.Changed("rules") {
		cfg.Rules.File = rulesFlag
	}

	if flags.Changed("reports") {
		cfg.Reporting.Dir = reportsFlag
	}

	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		return config.Config{}, nil, err
	}

	wf, err := newWorkflow(cmd, cfg, logger)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, wf, nil
}

func buildWorkflow(cmd *cobra.Command, cfg config.Config, logger *logrus.Logger) (domain.Workflow, error) {
	table, err := domain.LoadRuleTable(adapter.NewRuleStore(), m.Path(cfg.Rules.File))
	if err != nil {
		return nil, err
	}

	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewReportStore(),
		ui,
		table,
		logger,
	), nil
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
