package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
	"github.com/swimstat/swimstat/internal/session"
	"github.com/swimstat/swimstat/internal/stats"
)

const (
	sparklineWidth  = 20
	sparklineHeight = 2
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sparklineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2F8FC8"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

func renderOverview(sess *session.Session, width, plotHeight int, color bool) string {
	if !sess.Loaded() {
		return "No file loaded."
	}
	summary := sess.Summary()
	var b strings.Builder
	b.WriteString(cardValueStyle.Render(stats.Title(summary)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(loadLine(sess)))
	b.WriteString("\n\n")
	if summary.Count == 0 {
		b.WriteString("No records match the filters.")
		return b.String()
	}
	b.WriteString(renderCourseCards(summary, sess.Series(), width))
	if summary.Unknown > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d swims in unclassified pools", summary.Unknown)))
	}
	b.WriteString("\n\n")
	b.WriteString(renderPlot(sess.Series(), width, plotHeight, color))
	return strings.TrimRight(b.String(), "\n")
}

func loadLine(sess *session.Session) string {
	ls := sess.LoadStats()
	line := fmt.Sprintf("%s: %d rows, %d kept", sess.Path(), ls.Rows, ls.Kept())
	if ls.DroppedTime > 0 {
		line += fmt.Sprintf(", %d without a valid time", ls.DroppedTime)
	}
	if ls.MissingDate > 0 {
		line += fmt.Sprintf(", %d undated", ls.MissingDate)
	}
	return line
}

func renderCourseCards(summary model.Summary, series []model.CourseSeries, width int) string {
	cards := make([]string, 0, 2)
	for _, course := range []model.Course{model.CourseShort, model.CourseLong} {
		cards = append(cards, courseCard(course, summary.ByCourse(course), seriesFor(series, course)))
	}
	if width < 2*(sparklineWidth+4) {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func courseCard(course model.Course, cs model.CourseStats, s model.CourseSeries) string {
	best := racetime.Format(cs.Best)
	if cs.HasBest() && !cs.BestDate.IsZero() {
		best += " " + dimStyle.Render(stats.FormatDate(cs.BestDate))
	}
	lines := []string{
		cardTitleStyle.Render("Pool " + course.String()),
		cardTitleStyle.Render("PB   ") + cardValueStyle.Render(best),
		cardTitleStyle.Render("Avg  ") + cardValueStyle.Render(racetime.Format(cs.Mean)),
		cardTitleStyle.Render("Swims ") + cardValueStyle.Render(fmt.Sprintf("%d", cs.Count)),
		createSparkline(stats.Values(s)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func seriesFor(series []model.CourseSeries, course model.Course) model.CourseSeries {
	for _, s := range series {
		if s.Course == course {
			return s
		}
	}
	return model.CourseSeries{Course: course}
}

// createSparkline draws the dated times with faster swims as taller bars.
func createSparkline(times []float64) string {
	if len(times) == 0 {
		return dimStyle.Render(fmt.Sprintf("%-*s", sparklineWidth, "no dated swims"))
	}
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range sparkValues(times) {
		spark.Push(v)
	}
	spark.Draw()
	return sparklineStyle.Render(spark.View())
}

// sparkValues maps times to bar heights measured up from the slowest swim.
func sparkValues(times []float64) []float64 {
	slowest := times[0]
	fastest := times[0]
	for _, v := range times {
		if v > slowest {
			slowest = v
		}
		if v < fastest {
			fastest = v
		}
	}
	floor := (slowest - fastest) * 0.1
	if floor == 0 {
		floor = 1
	}
	out := make([]float64, len(times))
	for i, v := range times {
		out[i] = slowest - v + floor
	}
	return out
}

func renderPlot(series []model.CourseSeries, width, height int, color bool) string {
	if len(series) == 0 {
		return dimStyle.Render("No dated swims to plot.")
	}
	mode := stats.ColorNever
	if color {
		mode = stats.ColorAlways
	}
	var buf bytes.Buffer
	if err := stats.PlotProgression(&buf, "Progression", series, stats.PlotWidthFor(width), height, mode); err != nil {
		return fmt.Sprintf("Failed to render plot: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}
