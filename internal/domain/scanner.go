package domain

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/hazard/internal/domain/detectors"
	m "github.com/mouse-blink/hazard/internal/model"
)

// Scanner runs every detector across the lines of one file.
//
// Findings come back grouped by detector: the full rule-based block first,
// then the numeric-hazard block, each in ascending line order.
type Scanner interface {
	Scan(lines []string) []m.Finding
	ScanParallel(ctx context.Context, lines []string, workers int) ([]m.Finding, error)
}

type scanner struct {
	detectors []detectors.Detector
}

// NewScanner creates a Scanner backed by the given rule table.
func NewScanner(table *detectors.RuleTable) Scanner {
	return &scanner{
		detectors: []detectors.Detector{
			detectors.NewLineMatcher(table),
			detectors.NewNumericHazardDetector(),
		},
	}
}

func (s *scanner) Scan(lines []string) []m.Finding {
	sourceLines := m.NewSourceLines(lines)
	findings := []m.Finding{}

	for _, detector := range s.detectors {
		for _, line := range sourceLines {
			findings = append(findings, detector.Detect(line)...)
		}
	}

	return findings
}

// ScanParallel splits lines into chunks and scans them concurrently. Results
// are gathered per detector and per chunk before concatenation, so the output
// is identical to Scan.
func (s *scanner) ScanParallel(ctx context.Context, lines []string, workers int) ([]m.Finding, error) {
	if workers <= 1 || len(lines) == 0 {
		return s.Scan(lines), nil
	}

	sourceLines := m.NewSourceLines(lines)
	chunks := chunkBounds(len(sourceLines), workers)

	results := make([][][]m.Finding, len(s.detectors))
	for i := range results {
		results[i] = make([][]m.Finding, len(chunks))
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for di, detector := range s.detectors {
		for ci, bounds := range chunks {
			group.Go(func() error {
				var out []m.Finding

				for _, line := range sourceLines[bounds[0]:bounds[1]] {
					if err := gctx.Err(); err != nil {
						return err
					}

					out = append(out, detector.Detect(line)...)
				}

				results[di][ci] = out

				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	findings := []m.Finding{}

	for _, perDetector := range results {
		for _, chunk := range perDetector {
			findings = append(findings, chunk...)
		}
	}

	return findings, nil
}

// chunkBounds splits n items into at most parts contiguous [start, end) ranges.
func chunkBounds(n, parts int) [][2]int {
	if parts > n {
		parts = n
	}

	if parts <= 0 {
		return nil
	}

	size := (n + parts - 1) / parts
	bounds := make([][2]int, 0, parts)

	for start := 0; start < n; start += size {
		end := min(start+size, n)
		bounds = append(bounds, [2]int{start, end})
	}

	return bounds
}
