package statsui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/stats"
)

var recordColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Time", Width: 8},
	{Title: "Pool", Width: 5},
	{Title: "Kind", Width: 4},
	{Title: "Club", Width: 24},
	{Title: "Venue", Width: 24},
}

func (m *Model) initRecordsTable() {
	m.recordsTable = table.New(
		table.WithColumns(recordColumns),
		table.WithHeight(1),
	)
	m.recordsTable.SetStyles(recordsTableStyles())
}

func recordRows(records []model.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row(stats.RecordRow(r)))
	}
	return rows
}

func (m *Model) setTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.tableLayout.width == width && m.tableLayout.height == viewportHeight {
		return
	}
	m.tableLayout.width = width
	m.tableLayout.height = viewportHeight
	m.recordsTable.SetWidth(width)
	m.recordsTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustTableHeight(height)
	if m.tableLayout.height != viewportHeight {
		m.tableLayout.height = viewportHeight
		m.recordsTable.SetHeight(viewportHeight)
	}
}

// adjustTableHeight corrects for the header border so the table fills the body exactly.
func (m *Model) adjustTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.recordsTable.Height()
	viewHeight := lipgloss.Height(m.recordsTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func recordsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
