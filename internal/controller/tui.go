package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/hazard/internal/model"
	"golang.org/x/term"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	mode   StartMode
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	t.mode = newStartConfig(options...).mode

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {

}

// DisplayScanInfo shows concurrency settings.
func (t *TUI) DisplayScanInfo(files int, threads int) {
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	_, _ = fmt.Fprintln(t.output, infoStyle.Render(
		fmt.Sprintf("Scanning %d file(s) with %d worker(s)", files, threads)))
}

// DisplayReports renders the findings browser. Results that fit the
// terminal are printed once; longer ones open an interactive list.
func (t *TUI) DisplayReports(reports []m.Report) error {
	model := newFindingsModel(t.title())
	model = model.handleFindingsMsg(newFindingsMsg(reports))

	if width, height, ok := t.terminalSize(); ok {
		model.width = width
		model.height = height
	}

	if !model.needsPaging() {
		_, _ = fmt.Fprint(t.output, model.View())
		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("findings browser: %w", err)
	}

	return nil
}

// DisplayRules prints the active rule table.
func (t *TUI) DisplayRules(rules []m.Rule) error {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Width(labelColumnWidth)
	patternStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2 + labelColumnWidth)

	_, _ = fmt.Fprintln(t.output, titleStyle.Render(fmt.Sprintf("Active rules (%d)", len(rules))))

	for _, rule := range rules {
		_, _ = fmt.Fprintf(t.output, "%s  %s\n%s\n",
			idStyle.Render(rule.ID),
			patternStyle.Render(rule.Pattern),
			messageStyle.Render(rule.Message),
		)
	}

	return nil
}

// DisplayReportSaved confirms where a text report was written.
func (t *TUI) DisplayReportSaved(path m.Path) {
	savedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	_, _ = fmt.Fprintln(t.output, savedStyle.Render(fmt.Sprintf("Report saved to %s", path)))
}

func (t *TUI) title() string {
	if t.mode == ModeView {
		return "Hazard Saved Reports"
	}

	return "Hazard Scan Results"
}

func (t *TUI) terminalSize() (int, int, bool) {
	file, ok := t.output.(*os.File)
	if !ok {
		return 0, 0, false
	}

	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0, 0, false
	}

	return width, height, true
}
