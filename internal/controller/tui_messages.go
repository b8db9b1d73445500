package controller

import (
	"path/filepath"

	m "github.com/mouse-blink/hazard/internal/model"
)

// Message types.
type findingsMsg struct {
	total    int
	files    int
	failed   int
	failures []string
	items    []findingItem
}

func newFindingsMsg(reports []m.Report) findingsMsg {
	msg := findingsMsg{files: len(reports)}

	for _, r := range reports {
		path := ""
		if r.Source.Origin != nil {
			path = string(r.Source.Origin.Path)
		}

		if r.Err != nil {
			msg.failed++
			msg.failures = append(msg.failures, r.Err.Error())
		}

		for _, f := range r.Findings {
			msg.items = append(msg.items, newFindingItem(path, f))
		}
	}

	msg.total = len(msg.items)

	return msg
}

// List item types.
type findingItem struct {
	path  string
	line  int
	label string
	text  string
	issue string
}

func newFindingItem(path string, f m.Finding) findingItem {
	label := f.RuleID
	if f.Detector == m.DetectorNumericHazard {
		label = "numeric"
	}

	return findingItem{
		path:  path,
		line:  f.Line,
		label: label,
		text:  f.Text,
		issue: f.Issue,
	}
}

func (f findingItem) location() string {
	if f.path == "" {
		return f.text
	}

	return filepath.Base(f.path) + ": " + f.text
}

func (f findingItem) FilterValue() string {
	return f.path + " " + f.label + " " + f.text
}
