// Package detectors provides the line-level hazard detectors used by the scanner.
package detectors

import (
	m "github.com/mouse-blink/hazard/internal/model"
)

// Detector inspects one source line at a time.
type Detector interface {
	Kind() m.DetectorKind
	Detect(line m.SourceLine) []m.Finding
}
