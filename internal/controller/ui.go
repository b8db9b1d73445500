// Package controller provides output adapters for displaying scan results.
package controller

import (
	m "github.com/mouse-blink/hazard/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithScanMode sets the UI to show fresh scan results.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithViewMode sets the UI to show previously saved reports.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeScan}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying scan results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayScanInfo(files int, threads int)
	DisplayReports(reports []m.Report) error
	DisplayRules(rules []m.Rule) error
	DisplayReportSaved(path m.Path)
}
