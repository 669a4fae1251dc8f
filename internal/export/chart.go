package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
)

// ErrNoData is returned when there is nothing dated to chart.
var ErrNoData = errors.New("no dated records to chart")

const (
	DefaultChartWidth  = 1024
	DefaultChartHeight = 480
)

var courseColors = map[model.Course]drawing.Color{
	model.CourseShort: chart.ColorBlue,
	model.CourseLong:  chart.ColorRed,
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    4,
	}
}

// WriteChartPNG renders the progression as a PNG line chart with the
// personal best of each course annotated.
func WriteChartPNG(w io.Writer, title string, series []model.CourseSeries, width, height int) error {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	var out []chart.Series
	var pbs []chart.Value2
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.Date
			ys[i] = p.Seconds
			minY = math.Min(minY, p.Seconds)
			maxY = math.Max(maxY, p.Seconds)
		}
		// Pad to at least two X values for go-chart.
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(24*time.Hour))
			ys = append(ys, ys[0])
		}
		out = append(out, chart.TimeSeries{
			Name:    s.Course.String(),
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(courseColors[s.Course]),
		})
		best := s.Points[s.Best]
		pbs = append(pbs, chart.Value2{
			XValue: chart.TimeToFloat64(best.Date),
			YValue: best.Seconds,
			Label:  fmt.Sprintf("PB %s %s", s.Course, racetime.Format(best.Seconds)),
		})
	}
	if len(out) == 0 {
		return ErrNoData
	}
	out = append(out, chart.AnnotationSeries{Annotations: pbs})

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: dateFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Time",
			ValueFormatter: raceTimeFormatter,
		},
		Series: out,
	}
	// go-chart cannot scale a zero height range.
	if maxY-minY < 1e-9 {
		ch.YAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func raceTimeFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return racetime.Format(f)
	}
	return ""
}

func dateFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("02/01/06")
	case float64:
		return time.Unix(0, int64(t)).UTC().Format("02/01/06")
	}
	return ""
}
