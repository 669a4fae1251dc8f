package stats

import (
	"github.com/swimstat/swimstat/internal/model"
)

// Progression splits dated records into one series per course, short course
// first. Undated records cannot be placed on a date axis and are skipped.
func Progression(records []model.Record) []model.CourseSeries {
	out := make([]model.CourseSeries, 0, 2)
	for _, course := range []model.Course{model.CourseShort, model.CourseLong} {
		s := model.CourseSeries{Course: course}
		for _, r := range records {
			if r.Course != course || !r.HasDate() {
				continue
			}
			if len(s.Points) == 0 || r.Seconds < s.Points[s.Best].Seconds {
				s.Best = len(s.Points)
			}
			s.Points = append(s.Points, model.Point{Date: r.Date, Seconds: r.Seconds})
		}
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Values returns the times of a series in order.
func Values(s model.CourseSeries) []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Seconds
	}
	return out
}
