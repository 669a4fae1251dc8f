// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
)

// Summarize computes per-course personal bests and means. The swimmer and
// event come from the first record.
func Summarize(records []model.Record) model.Summary {
	s := model.Summary{
		Count: len(records),
		Short: courseStats(records, model.CourseShort),
		Long:  courseStats(records, model.CourseLong),
	}
	if len(records) > 0 {
		s.Swimmer = records[0].Name
		s.Event = records[0].Event
	}
	for _, r := range records {
		if r.Course == model.CourseUnknown {
			s.Unknown++
		}
	}
	return s
}

func courseStats(records []model.Record, course model.Course) model.CourseStats {
	cs := model.CourseStats{Best: racetime.Absent(), Mean: racetime.Absent()}
	var sum float64
	for _, r := range records {
		if r.Course != course {
			continue
		}
		if cs.Count == 0 || r.Seconds < cs.Best {
			cs.Best = r.Seconds
			cs.BestDate = r.Date
		}
		sum += r.Seconds
		cs.Count++
	}
	if cs.Count > 0 {
		cs.Mean = sum / float64(cs.Count)
	}
	return cs
}

// Title returns "swimmer - event", or a placeholder when there is no data.
func Title(s model.Summary) string {
	if s.Count == 0 {
		return "No data"
	}
	return fmt.Sprintf("%s - %s", s.Swimmer, s.Event)
}

// RenderSummary prints the personal best summary.
func RenderSummary(w io.Writer, s model.Summary) error {
	if _, err := fmt.Fprintln(w, Title(s)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Records: %d\n", s.Count); err != nil {
		return err
	}
	for _, c := range []model.Course{model.CourseShort, model.CourseLong} {
		cs := s.ByCourse(c)
		if _, err := fmt.Fprintf(w, "PB %s: %s%s\n", c, racetime.Format(cs.Best), bestDateSuffix(cs)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Avg %s: %s (%d swims)\n", c, racetime.Format(cs.Mean), cs.Count); err != nil {
			return err
		}
	}
	if s.Unknown > 0 {
		if _, err := fmt.Fprintf(w, "Unclassified pool: %d\n", s.Unknown); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func bestDateSuffix(cs model.CourseStats) string {
	if !cs.HasBest() || cs.BestDate.IsZero() {
		return ""
	}
	return " (" + FormatDate(cs.BestDate) + ")"
}

// FormatDate renders a record date day first, or "--" when absent.
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return "--"
	}
	return d.Format("02/01/2006")
}

// RenderRecords prints the records as an aligned table.
func RenderRecords(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	headers := []string{"Date", "Time", "Pool", "Kind", "Club", "Venue"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, RecordRow(r))
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RecordRow returns the display cells for a record.
func RecordRow(r model.Record) []string {
	return []string{
		FormatDate(r.Date),
		racetime.Format(r.Seconds),
		r.Course.String(),
		r.Kind,
		r.Club,
		r.Venue,
	}
}
