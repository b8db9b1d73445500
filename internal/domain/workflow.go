// Package domain runs scans: it resolves sources, applies the detectors and
// hands the findings to the UI and the report store.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/hazard/internal/adapter"
	"github.com/mouse-blink/hazard/internal/controller"
	"github.com/mouse-blink/hazard/internal/domain/detectors"
	m "github.com/mouse-blink/hazard/internal/model"
)

// ErrFindingsDetected is returned by Scan when FailOnFindings is set and at
// least one finding was reported.
var ErrFindingsDetected = errors.New("findings detected")

const (
	textReportSuffix = "_report.txt"
	textReportPerm   = 0o600
)

// ScanArgs configures a scan run.
type ScanArgs struct {
	Paths      []m.Path
	Extensions []string
	Exclude    []string
	Threads    int
	// Reports is the YAML report directory. Empty disables saving.
	Reports m.Path
	// Incremental reuses saved reports for files whose hash and rule table
	// are unchanged.
	Incremental    bool
	TextReport     bool
	FailOnFindings bool
}

// ViewArgs configures displaying saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the scan operations exposed to the CLI.
type Workflow interface {
	Scan(args ScanArgs) error
	ScanFile(path m.Path) error
	Rules() error
	View(args ViewArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	table       *detectors.RuleTable
	scanner     Scanner
	log         logrus.FieldLogger
}

// NewWorkflow creates a new Workflow scanning with the given rule table.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	table *detectors.RuleTable,
	log logrus.FieldLogger,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		table:       table,
		scanner:     NewScanner(table),
		log:         log,
	}
}

// Scan resolves args.Paths, scans every file and displays the reports in
// discovery order.
func (w *workflow) Scan(args ScanArgs) error {
	if err := w.ui.Start(controller.WithScanMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close()

	sources, err := w.fsAdapter.Get(args.Paths, adapter.GetOptions{
		Extensions: args.Extensions,
		Exclude:    args.Exclude,
	})
	if err != nil {
		return fmt.Errorf("collect sources: %w", err)
	}

	threads := max(args.Threads, 1)

	pending, cached, err := w.partitionCached(args, sources)
	if err != nil {
		return err
	}

	w.log.WithFields(logrus.Fields{
		"files":   len(sources),
		"cached":  len(cached),
		"threads": threads,
	}).Debug("starting scan")
	w.ui.DisplayScanInfo(len(sources), threads)

	scanned, err := w.scanSources(pending, threads)
	if err != nil {
		return err
	}

	reports := mergeReports(sources, scanned, cached)

	if err := w.ui.DisplayReports(reports); err != nil {
		return fmt.Errorf("display reports: %w", err)
	}

	if args.TextReport {
		if err := w.writeTextReports(reports); err != nil {
			return err
		}
	}

	if args.Reports != "" {
		if err := w.saveReports(args.Reports, reports); err != nil {
			return err
		}
	}

	if args.FailOnFindings && m.Total(reports) > 0 {
		return ErrFindingsDetected
	}

	return nil
}

// ScanFile scans one file and writes its text report, as the interactive
// menu does. Paths that are missing or not regular files are rejected.
func (w *workflow) ScanFile(path m.Path) error {
	info, err := w.fsAdapter.FileInfo(path)
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("scan %s: is a directory: %w", path, fs.ErrInvalid)
	}

	return w.Scan(ScanArgs{
		Paths:      []m.Path{path},
		Threads:    1,
		TextReport: true,
	})
}

// Rules displays the active rule table.
func (w *workflow) Rules() error {
	return w.ui.DisplayRules(w.table.Rules())
}

// View displays previously saved reports.
func (w *workflow) View(args ViewArgs) error {
	if err := w.ui.Start(controller.WithViewMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close()

	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.ui.DisplayReports(reports); err != nil {
		return fmt.Errorf("display reports: %w", err)
	}

	return nil
}

// partitionCached splits sources into those that need scanning and saved
// reports that can be reused unchanged.
func (w *workflow) partitionCached(args ScanArgs, sources []m.Source) ([]m.Source, map[m.Path]m.Report, error) {
	if !args.Incremental || args.Reports == "" {
		return sources, nil, nil
	}

	changed, err := w.reportStore.CheckUpdates(args.Reports, sources, w.table.Fingerprint())
	if err != nil {
		return nil, nil, fmt.Errorf("check saved reports: %w", err)
	}

	if len(changed) == len(sources) {
		return sources, nil, nil
	}

	saved, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return nil, nil, fmt.Errorf("load reports: %w", err)
	}

	savedByPath := make(map[m.Path]m.Report, len(saved))
	for _, r := range saved {
		if r.Source.Origin != nil {
			savedByPath[r.Source.Origin.Path] = r
		}
	}

	needsScan := make(map[m.Path]struct{}, len(changed))
	for _, s := range changed {
		needsScan[s.Origin.Path] = struct{}{}
	}

	pending := make([]m.Source, 0, len(changed))
	cached := make(map[m.Path]m.Report)

	for _, source := range sources {
		path := source.Origin.Path

		if _, ok := needsScan[path]; !ok {
			if r, ok := savedByPath[path]; ok {
				cached[path] = m.Report{Source: source, Findings: r.Findings, Rules: r.Rules}
				continue
			}
		}

		pending = append(pending, source)
	}

	return pending, cached, nil
}

// scanSources scans files concurrently. A single file gets all workers for
// its lines instead.
func (w *workflow) scanSources(sources []m.Source, threads int) (map[m.Path]m.Report, error) {
	reports := make([]m.Report, len(sources))

	lineWorkers := 1
	if len(sources) == 1 {
		lineWorkers = threads
	}

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(threads)

	for i, source := range sources {
		group.Go(func() error {
			report, err := w.scanSource(ctx, source, lineWorkers)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	byPath := make(map[m.Path]m.Report, len(reports))
	for _, r := range reports {
		byPath[r.Source.Origin.Path] = r
	}

	return byPath, nil
}

func (w *workflow) scanSource(ctx context.Context, source m.Source, workers int) (m.Report, error) {
	path := source.Origin.Path

	loaded := w.fsAdapter.LoadLines(path)
	if !loaded.OK() {
		w.log.WithError(loaded.Err).WithField("path", path).Warn("failed to load file")

		return m.Report{Source: source, Findings: []m.Finding{}, Err: loaded.Err, Rules: w.table.Fingerprint()}, nil
	}

	findings, err := w.scanner.ScanParallel(ctx, loaded.Lines, workers)
	if err != nil {
		return m.Report{}, fmt.Errorf("scan %s: %w", path, err)
	}

	w.log.WithFields(logrus.Fields{
		"path":     path,
		"lines":    len(loaded.Lines),
		"findings": len(findings),
	}).Debug("scanned file")

	return m.Report{Source: source, Findings: findings, Rules: w.table.Fingerprint()}, nil
}

func (w *workflow) writeTextReports(reports []m.Report) error {
	for _, r := range reports {
		if len(r.Findings) == 0 || r.Source.Origin == nil {
			continue
		}

		path := TextReportPath(r.Source.Origin.Path)
		if err := w.fsAdapter.WriteFile(path, []byte(m.TextReport(r.Findings)), textReportPerm); err != nil {
			return fmt.Errorf("text report for %s: %w", r.Source.Origin.Path, err)
		}

		w.ui.DisplayReportSaved(path)
	}

	return nil
}

func (w *workflow) saveReports(dir m.Path, reports []m.Report) error {
	if err := w.reportStore.SaveReports(dir, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	if err := w.reportStore.RegenerateIndex(dir); err != nil {
		return fmt.Errorf("regenerate index: %w", err)
	}

	w.log.WithFields(logrus.Fields{"dir": dir, "reports": len(reports)}).Info("reports saved")

	return nil
}

// TextReportPath returns the plain-text report path for a scanned file:
// the file name without its extension plus "_report.txt".
func TextReportPath(path m.Path) m.Path {
	p := string(path)

	ext := filepath.Ext(p)
	if ext != "" && ext != filepath.Base(p) {
		p = strings.TrimSuffix(p, ext)
	}

	return m.Path(p + textReportSuffix)
}

func mergeReports(sources []m.Source, scanned, cached map[m.Path]m.Report) []m.Report {
	reports := make([]m.Report, 0, len(sources))

	for _, source := range sources {
		path := source.Origin.Path

		if r, ok := scanned[path]; ok {
			reports = append(reports, r)
			continue
		}

		if r, ok := cached[path]; ok {
			reports = append(reports, r)
		}
	}

	return reports
}
