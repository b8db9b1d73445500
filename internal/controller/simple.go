package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/hazard/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.mode = newStartConfig(options...).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayScanInfo prints worker settings for multi-file scans.
func (s *SimpleUI) DisplayScanInfo(files int, threads int) {
	if files <= 1 {
		return
	}

	s.printf("Scanning %d files with %d worker(s)\n", files, threads)
}

// DisplayReports prints every finding in the plain report format, followed
// by a per-file summary table when more than one file was scanned.
func (s *SimpleUI) DisplayReports(reports []m.Report) error {
	for _, r := range reports {
		if r.Err != nil {
			s.printf("Error loading file: %v\n", r.Err)
		}
	}

	if m.Total(reports) == 0 {
		s.printf("\nNo vulnerabilities found!\n")
		return nil
	}

	if s.mode == ModeView {
		s.printf("\nSaved findings:\n")
	} else {
		s.printf("\nPotential vulnerabilities detected:\n")
	}

	multi := len(reports) > 1

	for _, r := range reports {
		if len(r.Findings) == 0 {
			continue
		}

		if multi && r.Source.Origin != nil {
			s.printf("\n%s\n", r.Source.Origin.Path)
		}

		for _, f := range r.Findings {
			s.printf("%s\n", f.String())
		}
	}

	if multi {
		s.renderSummary(reports)
	}

	return nil
}

// DisplayRules prints the active rule table.
func (s *SimpleUI) DisplayRules(rules []m.Rule) error {
	if len(rules) == 0 {
		s.printf("No rules configured\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "ID", "Pattern", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for i, rule := range rules {
		table.Append([]string{fmt.Sprintf("%d", i+1), rule.ID, rule.Pattern, rule.Message})
	}

	table.Render()
	s.printf("%s", tableBuffer.String())

	return nil
}

// DisplayReportSaved confirms where a text report was written.
func (s *SimpleUI) DisplayReportSaved(path m.Path) {
	s.printf("\nReport saved to %s\n", path)
}

func (s *SimpleUI) renderSummary(reports []m.Report) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Findings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, r := range reports {
		if r.Source.Origin == nil {
			continue
		}

		count := fmt.Sprintf("%d", len(r.Findings))
		if r.Err != nil {
			count = "error"
		}

		table.Append([]string{string(r.Source.Origin.Path), count})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		fmt.Sprintf("%d", m.Total(reports)),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
