package model

import (
	"fmt"
	"strings"
)

// DetectorKind names the detector that produced a finding.
type DetectorKind string

const (
	// DetectorRule marks findings produced by the rule table.
	DetectorRule DetectorKind = "rule"
	// DetectorNumericHazard marks zero/NaN divisor findings.
	DetectorNumericHazard DetectorKind = "numeric-hazard"
)

// Finding is one reported hazard at a specific line.
type Finding struct {
	Line     int
	Text     string
	Issue    string
	Detector DetectorKind
	// RuleID is empty for findings that do not come from the rule table.
	RuleID string
}

// String renders the finding the way plain-text reports print it.
func (f Finding) String() string {
	return fmt.Sprintf("Line %d: %s\n  Issue: %s\n", f.Line, f.Text, f.Issue)
}

// TextReport concatenates the findings in plain-text report form.
func TextReport(findings []Finding) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(f.String())
	}

	return b.String()
}
