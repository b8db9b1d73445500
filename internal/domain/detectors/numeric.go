package detectors

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/hazard/internal/model"
)

// NumericHazardMessage is the issue text of numeric-hazard findings.
const NumericHazardMessage = "Potential zero-division or invalid operation detected."

// The divisor must be exactly 0 or NaN: 0.0, 0x1 and 00 are not flagged.
var zeroDivisorPattern = regexp.MustCompile(`(//|/|%)\s*(0|NaN)([^\w.]|$)`)

// NumericHazardDetector flags division or modulo by a literal 0 or NaN.
type NumericHazardDetector struct{}

// NewNumericHazardDetector constructs a NumericHazardDetector.
func NewNumericHazardDetector() *NumericHazardDetector {
	return &NumericHazardDetector{}
}

// Kind implements Detector.
func (d *NumericHazardDetector) Kind() m.DetectorKind {
	return m.DetectorNumericHazard
}

// Detect returns at most one finding for the line.
func (d *NumericHazardDetector) Detect(line m.SourceLine) []m.Finding {
	if !hasDivisionOperator(line.Raw) {
		return nil
	}

	if !zeroDivisorPattern.MatchString(line.Raw) {
		return nil
	}

	return []m.Finding{{
		Line:     line.Number,
		Text:     line.Text,
		Issue:    NumericHazardMessage,
		Detector: m.DetectorNumericHazard,
	}}
}

// hasDivisionOperator covers "/", "//" and "%"; "//" always contains "/".
func hasDivisionOperator(s string) bool {
	return strings.ContainsAny(s, "/%")
}
