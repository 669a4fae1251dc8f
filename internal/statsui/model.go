// Package statsui provides the Bubble Tea results dashboard.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/swimstat/swimstat/internal/filter"
	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/session"
)

const (
	tabOverview = iota
	tabRecords
)

const defaultPlotHeight = 10

const (
	inputKind = iota
	inputClub
	inputFrom
	inputTo
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#2F8FC8"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A030"))
)

// Options configures the dashboard.
type Options struct {
	PlotHeight int
	Color      bool
	Logger     *zap.Logger
}

// Model implements the Bubble Tea results dashboard.
type Model struct {
	sess   *session.Session
	opts   Options
	logger *zap.Logger

	errMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	recordsTable table.Model
	tableLayout  tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width  int
	height int
}

// NewModel constructs a dashboard over a session.
func NewModel(sess *session.Session, opts Options) *Model {
	if opts.PlotHeight <= 0 {
		opts.PlotHeight = defaultPlotHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		sess:   sess,
		opts:   opts,
		logger: logger,
		tabs:   []string{"Overview", "Records"},
	}
	m.initInputs()
	m.initRecordsTable()
	m.initViewports()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.activeTab == tabRecords {
			m.recordsTable.Focus()
		} else {
			m.recordsTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "K":
			in := m.sess.Input()
			in.Kind = nextKind(in.Kind)
			m.apply(in)
			return m, nil
		case "c":
			in := m.sess.Input()
			in.Club = nextClub(m.sess.Clubs(), in.Club)
			m.apply(in)
			return m, nil
		case "r":
			m.reload()
			return m, nil
		case "g", "home":
			if m.activeTab == tabRecords {
				m.recordsTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabRecords {
				m.recordsTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabRecords {
				var cmd tea.Cmd
				m.recordsTable, cmd = m.recordsTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Kind (any/finals/splits): "),
		newFilterInput("Club: "),
		newFilterInput("From (" + filter.DateHint + "): "),
		newFilterInput("To (" + filter.DateHint + "): "),
	}
	m.setInputsFromSession()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromSession() {
	if len(m.filterInputs) == 0 {
		return
	}
	in := m.sess.Input()
	m.filterInputs[inputKind].SetValue(in.Kind.String())
	m.filterInputs[inputClub].SetValue(in.Club)
	m.filterInputs[inputFrom].SetValue(in.From)
	m.filterInputs[inputTo].SetValue(in.To)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode {
		footerHeight += len(m.noticeLines())
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabRecords {
		m.recordsTable.Focus()
	} else {
		m.recordsTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Filters: %s  (%d of %d)", filter.Describe(m.sess.Criteria()), len(m.sess.Filtered()), len(m.sess.Records()))
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down  Filters: /  Kind: K  Club: c  Reload: r  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
}

// noticeLines returns the error and warning lines shown under the help line.
func (m *Model) noticeLines() []string {
	var lines []string
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(truncateLine(m.errMsg, m.width)))
	}
	for _, w := range m.sess.Warnings() {
		lines = append(lines, warnStyle.Render(truncateLine(w.String(), m.width)))
	}
	return lines
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	lines := append([]string{m.renderHelp()}, m.noticeLines()...)
	return strings.Join(lines, "\n")
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if clubs := m.sess.Clubs(); len(clubs) > 0 {
		lines = append(lines, headerStyle.Render("Clubs: "+strings.Join(clubs, ", ")))
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if !m.sess.Loaded() {
		return fitLines("No file loaded.", m.width, height)
	}
	if m.activeTab == tabRecords {
		if len(m.sess.Filtered()) == 0 {
			return fitLines("No records match the filters.", m.width, height)
		}
		return fitLines(m.recordsTable.View(), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

// refresh rebuilds every tab from the session snapshots.
func (m *Model) refresh() {
	m.recordsTable.SetRows(recordRows(m.sess.Filtered()))
	m.recordsTable.GotoTop()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.sess, width, m.opts.PlotHeight, m.opts.Color))
	m.viewports[tabRecords].SetContent("")
}

func (m *Model) apply(in filter.Input) {
	m.sess.Apply(in)
	m.errMsg = ""
	m.refresh()
	m.updateLayout()
}

func (m *Model) reload() {
	if err := m.sess.Reload(context.Background()); err != nil {
		m.errMsg = err.Error()
		m.logger.Warn("reload failed", zap.Error(err))
	} else {
		m.errMsg = ""
		m.logger.Info("reloaded", zap.String("path", m.sess.Path()), zap.Int("records", len(m.sess.Records())))
		m.refresh()
	}
	m.updateLayout()
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromSession()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		m.updateLayout()
		return m, nil
	case tea.KeyEnter:
		in, err := m.filterInput()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.apply(in)
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

// filterInput reads the form. Only the kind blocks submission; bad dates
// are applied as warnings by the session.
func (m *Model) filterInput() (filter.Input, error) {
	kind, err := filter.ParseKind(m.filterInputs[inputKind].Value())
	if err != nil {
		return filter.Input{}, fmt.Errorf("invalid kind (use any, finals or splits)")
	}
	return filter.Input{
		Kind: kind,
		Club: strings.TrimSpace(m.filterInputs[inputClub].Value()),
		From: strings.TrimSpace(m.filterInputs[inputFrom].Value()),
		To:   strings.TrimSpace(m.filterInputs[inputTo].Value()),
	}, nil
}

func nextKind(k model.KindFilter) model.KindFilter {
	switch k {
	case model.KindAny:
		return model.KindFinalsOnly
	case model.KindFinalsOnly:
		return model.KindSplitsOnly
	default:
		return model.KindAny
	}
}

// nextClub steps through the clubs, with "" (any club) after the last one.
func nextClub(clubs []string, current string) string {
	if len(clubs) == 0 {
		return ""
	}
	if current == "" {
		return clubs[0]
	}
	for i, c := range clubs {
		if c == current {
			if i+1 < len(clubs) {
				return clubs[i+1]
			}
			return ""
		}
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
