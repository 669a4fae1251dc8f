package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth caps free-text columns such as club and venue names.
const maxCellWidth = 28

type column struct {
	title string
	right bool
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	cols := make([]column, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, column{title: h, right: rightAlignCols[i]})
	}
	for _, row := range rows {
		for len(cols) < len(row) {
			cols = append(cols, column{right: rightAlignCols[len(cols)]})
		}
	}
	if len(cols) == 0 {
		return nil
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = displayWidth(c.title)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(clipCell(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, joinCells(headers, cols, widths))
	}
	for _, row := range rows {
		lines = append(lines, joinCells(row, cols, widths))
	}
	return lines
}

func joinCells(cells []string, cols []column, widths []int) string {
	var b strings.Builder
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = clipCell(cells[i])
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], c.right))
	}
	return strings.TrimRight(b.String(), " ")
}

func clipCell(value string) string {
	return runewidth.Truncate(value, maxCellWidth, "…")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
