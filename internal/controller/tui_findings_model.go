package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

const (
	lineColumnWidth  = 6
	labelColumnWidth = 14
	// title, summary, headers, issue line, footer and borders.
	chromeHeight = 11
)

// Simple delegate for finding list items. With showIssue every row carries
// its issue on a second line.
type findingDelegate struct {
	offset    int
	showIssue bool
}

func (d findingDelegate) Height() int {
	if d.showIssue {
		return 2
	}

	return 1
}

func (d findingDelegate) Spacing() int { return 0 }
func (d findingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d findingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	finding, ok := item.(findingItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var textStyle, lineStyle, labelStyle lipgloss.Style

	var displayText string

	width := m.Width() - lineColumnWidth - labelColumnWidth - 4

	if isSelected {
		base := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		textStyle = base
		lineStyle = base.Width(lineColumnWidth).Align(lipgloss.Right)
		labelStyle = base.Width(labelColumnWidth)

		displayText = animateScroll(finding.location(), width, d.offset)
	} else {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(lineColumnWidth).
			Align(lipgloss.Right)
		labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Width(labelColumnWidth)

		displayText = truncateToWidth(finding.location(), width)
	}

	line := fmt.Sprintf("%s  %s  %s",
		lineStyle.Render(fmt.Sprintf("%d", finding.line)),
		labelStyle.Render(truncateToWidth(finding.label, labelColumnWidth)),
		textStyle.Render(displayText),
	)

	if d.showIssue {
		issueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		indent := strings.Repeat(" ", lineColumnWidth+2)
		line += "\n" + indent + issueStyle.Render(
			truncateToWidth("Issue: "+finding.issue, m.Width()-lineColumnWidth-4))
	}

	_, _ = fmt.Fprint(w, line)
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	gap := "   "

	// ticks to hold the start of the text before scrolling
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// findingsModel browses the findings of one scan or of saved reports.
type findingsModel struct {
	title        string
	width        int
	height       int
	findingList  list.Model
	delegate     findingDelegate
	items        []findingItem
	total        int
	files        int
	failed       int
	failures     []string
	rendered     bool
	animOffset   int
	lastSelected int
}

func newFindingsModel(title string) findingsModel {
	delegate := findingDelegate{}
	findingList := list.New([]list.Item{}, delegate, 80, 20)
	findingList.SetShowPagination(false)
	findingList.SetShowFilter(true)
	findingList.SetShowHelp(false)
	findingList.SetShowTitle(false)
	findingList.SetShowStatusBar(false)
	findingList.FilterInput.Placeholder = "Filter by file, rule or code…"

	return findingsModel{
		title:        title,
		width:        80,
		findingList:  findingList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (m findingsModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m findingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.findingList.SetWidth(m.width)

	case tickMsg:
		if m.findingList.FilterState() != list.Filtering && m.rendered {
			m.animOffset++
			m.delegate.offset = m.animOffset
			m.findingList.SetDelegate(m.delegate)

			return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			var newList list.Model

			newList, cmd = m.findingList.Update(msg)
			m.findingList = newList

			if m.findingList.Index() != m.lastSelected {
				m.lastSelected = m.findingList.Index()
				m.animOffset = 0
				m.delegate.offset = 0
				m.findingList.SetDelegate(m.delegate)
			}

			return m, cmd
		}

	case findingsMsg:
		m = m.handleFindingsMsg(msg)
	}

	return m, cmd
}

func (m findingsModel) handleFindingsMsg(msg findingsMsg) findingsModel {
	m.total = msg.total
	m.files = msg.files
	m.failed = msg.failed
	m.failures = msg.failures
	m.items = msg.items

	items := make([]list.Item, 0, len(msg.items))
	for _, item := range msg.items {
		items = append(items, item)
	}

	m.findingList.SetItems(items)
	m.rendered = true

	if len(items) > 0 && m.lastSelected == -1 {
		m.lastSelected = 0
	}

	return m
}

// needsPaging reports whether the findings, two lines each when printed
// statically, overflow a known terminal height.
func (m findingsModel) needsPaging() bool {
	return m.height > 0 && 2*len(m.items)+len(m.failures)+chromeHeight > m.height
}

func (m findingsModel) View() string {
	if !m.rendered {
		return "Scanning…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	title := titleStyle.Render(m.title)

	summaryText := fmt.Sprintf(
		"Findings: %s   Files: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.total)),
		accentStyle.Render(fmt.Sprintf("%d", m.files)),
	)
	if m.failed > 0 {
		summaryText += "   Failed: " + warnStyle.Render(fmt.Sprintf("%d", m.failed))
	}

	summary := summaryStyle.Render(summaryText)

	header := []string{title, summary}
	if len(m.failures) > 0 {
		header = append(header, m.renderFailures())
	}

	if m.total == 0 {
		if m.files > 0 && m.failed == m.files {
			return lipgloss.JoinVertical(lipgloss.Left, header...) + "\n"
		}

		clean := lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Padding(0, 0, 1, 2).
			Render("No vulnerabilities found!")

		return lipgloss.JoinVertical(lipgloss.Left, append(header, clean)...) + "\n"
	}

	table := m.renderTable()

	if !m.needsPaging() {
		return lipgloss.JoinVertical(lipgloss.Left, append(header, table)...) + "\n"
	}

	issue := m.renderIssue()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, append(header, table, issue, footer)...)
}

func (m findingsModel) renderFailures() string {
	failureStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Padding(0, 0, 0, 2)

	lines := make([]string, 0, len(m.failures))
	for _, f := range m.failures {
		lines = append(lines, failureStyle.Render("Error loading file: "+f))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m findingsModel) renderIssue() string {
	issueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Padding(0, 0, 0, 2)

	item, ok := m.findingList.SelectedItem().(findingItem)
	if !ok {
		return issueStyle.Render("")
	}

	return issueStyle.Render(truncateToWidth("Issue: "+item.issue, m.width-2))
}

func (m findingsModel) renderTable() string {
	// the filter bar above the items takes two lines
	listHeight := 2*len(m.items) + 2
	if m.needsPaging() {
		listHeight = m.height - chromeHeight - len(m.failures)
	} else {
		delegate := m.delegate
		delegate.showIssue = true
		m.findingList.SetDelegate(delegate)
	}

	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := m.width - 6

	m.findingList.SetHeight(listHeight)
	m.findingList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%*s  %-*s  %s",
		lineColumnWidth, "Line", labelColumnWidth, "Rule", "Code"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.findingList.View(),
		),
	)
}
