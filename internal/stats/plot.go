package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
)

type lineStyle struct {
	name   string
	period int
	on     int
}

// ColorMode controls ANSI coloring of plot lines.
type ColorMode int

const (
	// ColorAuto colors only when writing to a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 8
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var colorPalette = []ansiColor{
	{name: "blue", code: "\x1b[34m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "magenta", code: "\x1b[35m"},
}

// PlotProgression renders a braille plot of race times over dates, one line
// per course, on a shared scale.
func PlotProgression(w io.Writer, title string, series []model.CourseSeries, width, height int, color ColorMode) error {
	series = nonEmpty(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	first, last := dateBounds(series)
	minVal, maxVal := valueBounds(series)
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}

	dotRows := height * 4
	seriesCells := make([][][]uint8, len(series))
	for si, s := range series {
		seriesCells[si] = makeCells(height, width)
		style := lineStyles[si%len(lineStyles)]
		prevX, prevY := -1, -1
		for _, p := range s.Points {
			px := dateToColumn(p.Date, first, last, width) * 2
			py := valueToRow(p.Seconds, minVal, maxVal, dotRows)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setBrailleDot(seriesCells[si], dx, dy)
					}
				})
			}
			// Points are always drawn so dashed styles never hide a swim.
			setBrailleDot(seriesCells[si], px, py)
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, color)
	axisLabels := makeAxisLabels(height, minVal, maxVal)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisLabelWidth, axisLabels[y], axisSeparator))
		for x := 0; x < width; x++ {
			mask, colorIdx := composeCell(seriesCells, x, y)
			ch := brailleFromMask(mask)
			if useColor && colorIdx >= 0 {
				row.WriteString(colorPalette[colorIdx%len(colorPalette)].code)
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, dateAxis(first, last, width)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, renderLegend(series, useColor)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func nonEmpty(series []model.CourseSeries) []model.CourseSeries {
	out := make([]model.CourseSeries, 0, len(series))
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func dateBounds(series []model.CourseSeries) (time.Time, time.Time) {
	var first, last time.Time
	for _, s := range series {
		for _, p := range s.Points {
			if first.IsZero() || p.Date.Before(first) {
				first = p.Date
			}
			if last.IsZero() || p.Date.After(last) {
				last = p.Date
			}
		}
	}
	return first, last
}

func valueBounds(series []model.CourseSeries) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			minVal = math.Min(minVal, p.Seconds)
			maxVal = math.Max(maxVal, p.Seconds)
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, 0
	}
	return minVal, maxVal
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisLabelWidth - utf8.RuneCountInString(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, mode ColorMode) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int, minVal, maxVal float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = racetime.Format(maxVal)
	if height > 2 {
		labels[height/2] = racetime.Format((minVal + maxVal) / 2)
	}
	if height > 1 {
		labels[height-1] = racetime.Format(minVal)
	}
	return labels
}

func dateAxis(first, last time.Time, width int) string {
	prefix := strings.Repeat(" ", axisLabelWidth+utf8.RuneCountInString(axisSeparator))
	left := FormatDate(first)
	if first.Equal(last) {
		return prefix + left
	}
	right := FormatDate(last)
	gap := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		return prefix + left + " " + right
	}
	return prefix + left + strings.Repeat(" ", gap) + right
}

func dateToColumn(d, first, last time.Time, width int) int {
	span := last.Sub(first)
	if span <= 0 || width <= 1 {
		return width / 2
	}
	pos := float64(d.Sub(first)) / float64(span)
	col := int(math.Round(pos * float64(width-1)))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(seriesCells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range seriesCells {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func renderLegend(series []model.CourseSeries, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for i, s := range series {
		styleName := lineStyles[i%len(lineStyles)].name
		best := s.Points[s.Best]
		label := fmt.Sprintf("%c %s (%s) PB %s on %s", marker, s.Course, styleName, racetime.Format(best.Seconds), FormatDate(best.Date))
		if useColor {
			label = colorPalette[i%len(colorPalette)].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) {
		return
	}
	if cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
