package detectors

import (
	m "github.com/mouse-blink/hazard/internal/model"
)

// LineMatcher applies a rule table to single lines.
type LineMatcher struct {
	table *RuleTable
}

// NewLineMatcher constructs a LineMatcher over table.
func NewLineMatcher(table *RuleTable) *LineMatcher {
	return &LineMatcher{table: table}
}

// Kind implements Detector.
func (lm *LineMatcher) Kind() m.DetectorKind {
	return m.DetectorRule
}

// Detect emits one finding per rule whose pattern occurs anywhere in the raw
// line, in table order. Repeated matches of one rule count once.
func (lm *LineMatcher) Detect(line m.SourceLine) []m.Finding {
	if lm.table == nil {
		return nil
	}

	var findings []m.Finding

	for _, c := range lm.table.rules {
		if !c.re.MatchString(line.Raw) {
			continue
		}

		findings = append(findings, m.Finding{
			Line:     line.Number,
			Text:     line.Text,
			Issue:    c.rule.Message,
			Detector: m.DetectorRule,
			RuleID:   c.rule.ID,
		})
	}

	return findings
}
