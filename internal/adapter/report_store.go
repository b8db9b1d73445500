package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/hazard/internal/model"
)

const indexFileName = "_index.yaml"

// ReportStore persists and retrieves scan reports.
type ReportStore interface {
	// SaveReports writes one YAML file per report into dir.
	SaveReports(dir m.Path, reports []m.Report) error
	// RegenerateIndex rebuilds dir/_index.yaml from the saved reports.
	RegenerateIndex(dir m.Path) error
	// LoadReports reads every saved report, ordered by source path.
	LoadReports(dir m.Path) ([]m.Report, error)
	// CheckUpdates returns the sources whose content or rule table differs
	// from their saved report.
	CheckUpdates(dir m.Path, sources []m.Source, rules string) ([]m.Source, error)
}

// LocalReportStore keeps reports as YAML files on disk.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

type reportYAML struct {
	Source   sourceYAML    `yaml:"source"`
	Error    string        `yaml:"error,omitempty"`
	Rules    string        `yaml:"rules,omitempty"`
	Findings []findingYAML `yaml:"findings"`
}

type sourceYAML struct {
	Path string `yaml:"path"`
	Hash string `yaml:"hash"`
}

type findingYAML struct {
	Line     int    `yaml:"line"`
	Text     string `yaml:"text"`
	Issue    string `yaml:"issue"`
	Detector string `yaml:"detector"`
	RuleID   string `yaml:"rule_id,omitempty"`
}

type indexEntry struct {
	TotalFindings     int            `yaml:"total_findings"`
	RuleFindings      int            `yaml:"rule_findings"`
	NumericFindings   int            `yaml:"numeric_findings"`
	Files             int            `yaml:"files"`
	FilesWithFindings int            `yaml:"files_with_findings"`
	FailedFiles       int            `yaml:"failed_files"`
	ByRule            map[string]int `yaml:"by_rule"`
	Reports           []indexReport  `yaml:"reports"`
}

type indexReport struct {
	Path     string `yaml:"path"`
	Hash     string `yaml:"hash"`
	Report   string `yaml:"report"`
	Findings int    `yaml:"findings"`
}

// SaveReports writes each report to <dir>/<hash>.yaml, where hash is derived
// from the source path so a rescan overwrites the previous report.
func (rs *LocalReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if dir == "" {
		return fmt.Errorf("reports directory path is required")
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	for _, report := range reports {
		if report.Source.Origin == nil {
			continue
		}

		data, err := yaml.Marshal(toReportYAML(report))
		if err != nil {
			return fmt.Errorf("marshal report for %s: %w", report.Source.Origin.Path, err)
		}

		name := rs.computeReportHash(report.Source.Origin.Path) + ".yaml"
		if err := os.WriteFile(filepath.Join(string(dir), name), data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", name, err)
		}
	}

	return nil
}

// RegenerateIndex summarizes every saved report into _index.yaml.
func (rs *LocalReportStore) RegenerateIndex(dir m.Path) error {
	reports, names, err := rs.readReports(dir)
	if err != nil {
		return err
	}

	idx := indexEntry{ByRule: map[string]int{}, Reports: make([]indexReport, 0, len(reports))}

	for i, r := range reports {
		idx.Files++
		if r.Error != "" {
			idx.FailedFiles++
		}

		if len(r.Findings) > 0 {
			idx.FilesWithFindings++
		}

		for _, f := range r.Findings {
			idx.TotalFindings++

			if m.DetectorKind(f.Detector) == m.DetectorNumericHazard {
				idx.NumericFindings++
				continue
			}

			idx.RuleFindings++
			idx.ByRule[f.RuleID]++
		}

		idx.Reports = append(idx.Reports, indexReport{
			Path:     r.Source.Path,
			Hash:     r.Source.Hash,
			Report:   names[i],
			Findings: len(r.Findings),
		})
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(string(dir), indexFileName), data, 0o600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

// LoadReports reads saved reports back into model values.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	raw, _, err := rs.readReports(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]m.Report, 0, len(raw))
	for _, r := range raw {
		reports = append(reports, fromReportYAML(r))
	}

	return reports, nil
}

// CheckUpdates compares source hashes and the rule table fingerprint with
// saved reports. A missing reports directory means every source needs scanning.
func (rs *LocalReportStore) CheckUpdates(dir m.Path, sources []m.Source, rules string) ([]m.Source, error) {
	if dir == "" {
		return nil, fmt.Errorf("reports directory path is required")
	}

	info, err := os.Stat(string(dir))
	if errors.Is(err, os.ErrNotExist) {
		return sources, nil
	}

	if err != nil {
		return nil, fmt.Errorf("stat reports dir: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: path is not a directory", dir)
	}

	saved, _, err := rs.readReports(dir)
	if err != nil {
		return nil, err
	}

	known := make(map[string]string, len(saved))
	for _, r := range saved {
		if r.Error != "" || r.Rules != rules {
			continue
		}

		known[r.Source.Path] = r.Source.Hash
	}

	changed := make([]m.Source, 0, len(sources))

	for _, source := range sources {
		if source.Origin == nil {
			continue
		}

		hash, ok := known[string(source.Origin.Path)]
		if !ok || hash != source.Origin.Hash {
			changed = append(changed, source)
		}
	}

	return changed, nil
}

func (rs *LocalReportStore) computeReportHash(path m.Path) string {
	sum := sha256.Sum256([]byte(path))

	return hex.EncodeToString(sum[:8])
}

// readReports returns decoded reports sorted by source path along with their
// file names.
func (rs *LocalReportStore) readReports(dir m.Path) ([]reportYAML, []string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("read reports dir: %w", err)
	}

	type named struct {
		name   string
		report reportYAML
	}

	var all []named

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == indexFileName || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(string(dir), entry.Name()))
		if err != nil {
			return nil, nil, fmt.Errorf("read report %s: %w", entry.Name(), err)
		}

		var r reportYAML
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, nil, fmt.Errorf("parse report %s: %w", entry.Name(), err)
		}

		all = append(all, named{name: entry.Name(), report: r})
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].report.Source.Path < all[j].report.Source.Path
	})

	reports := make([]reportYAML, 0, len(all))
	names := make([]string, 0, len(all))

	for _, n := range all {
		reports = append(reports, n.report)
		names = append(names, n.name)
	}

	return reports, names, nil
}

func toReportYAML(report m.Report) reportYAML {
	out := reportYAML{
		Source:   sourceYAML{Path: string(report.Source.Origin.Path), Hash: report.Source.Origin.Hash},
		Rules:    report.Rules,
		Findings: make([]findingYAML, 0, len(report.Findings)),
	}

	if report.Err != nil {
		out.Error = report.Err.Error()
	}

	for _, f := range report.Findings {
		out.Findings = append(out.Findings, findingYAML{
			Line:     f.Line,
			Text:     f.Text,
			Issue:    f.Issue,
			Detector: string(f.Detector),
			RuleID:   f.RuleID,
		})
	}

	return out
}

func fromReportYAML(r reportYAML) m.Report {
	report := m.Report{
		Source:   m.Source{Origin: &m.File{Path: m.Path(r.Source.Path), Hash: r.Source.Hash}},
		Rules:    r.Rules,
		Findings: make([]m.Finding, 0, len(r.Findings)),
	}

	if r.Error != "" {
		report.Err = errors.New(r.Error)
	}

	for _, f := range r.Findings {
		report.Findings = append(report.Findings, m.Finding{
			Line:     f.Line,
			Text:     f.Text,
			Issue:    f.Issue,
			Detector: m.DetectorKind(f.Detector),
			RuleID:   f.RuleID,
		})
	}

	return report
}
