// Package export writes summaries and charts to files.
package export

import (
	"io"
	"math"

	"github.com/valyala/fastjson"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
)

const isoDate = "2006-01-02"

// WriteSummaryJSON writes the summary and the criteria it was computed under
// as a single JSON object. Absent values are written as null.
func WriteSummaryJSON(w io.Writer, s model.Summary, c model.Criteria) error {
	var a fastjson.Arena
	root := a.NewObject()
	root.Set("swimmer", a.NewString(s.Swimmer))
	root.Set("event", a.NewString(s.Event))
	root.Set("records", a.NewNumberInt(s.Count))
	root.Set("unclassified", a.NewNumberInt(s.Unknown))

	courses := a.NewObject()
	for _, course := range []model.Course{model.CourseShort, model.CourseLong} {
		courses.Set(course.String(), courseJSON(&a, s.ByCourse(course)))
	}
	root.Set("courses", courses)
	root.Set("filters", criteriaJSON(&a, c))

	buf := root.MarshalTo(nil)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

func courseJSON(a *fastjson.Arena, cs model.CourseStats) *fastjson.Value {
	o := a.NewObject()
	o.Set("count", a.NewNumberInt(cs.Count))
	o.Set("best", number(a, cs.Best))
	o.Set("best_time", timeText(a, cs.Best))
	if cs.HasBest() && !cs.BestDate.IsZero() {
		o.Set("best_date", a.NewString(cs.BestDate.Format(isoDate)))
	} else {
		o.Set("best_date", a.NewNull())
	}
	o.Set("mean", number(a, cs.Mean))
	o.Set("mean_time", timeText(a, cs.Mean))
	return o
}

func criteriaJSON(a *fastjson.Arena, c model.Criteria) *fastjson.Value {
	o := a.NewObject()
	o.Set("kind", a.NewString(c.Kind.String()))
	if c.Club == "" {
		o.Set("club", a.NewNull())
	} else {
		o.Set("club", a.NewString(c.Club))
	}
	if c.From != nil {
		o.Set("from", a.NewString(c.From.Format(isoDate)))
	} else {
		o.Set("from", a.NewNull())
	}
	if c.To != nil {
		o.Set("to", a.NewString(c.To.Format(isoDate)))
	} else {
		o.Set("to", a.NewNull())
	}
	return o
}

func number(a *fastjson.Arena, v float64) *fastjson.Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return a.NewNull()
	}
	return a.NewNumberFloat64(math.Round(v*1000) / 1000)
}

func timeText(a *fastjson.Arena, v float64) *fastjson.Value {
	if racetime.IsAbsent(v) || math.IsInf(v, 0) {
		return a.NewNull()
	}
	return a.NewString(racetime.Format(v))
}
