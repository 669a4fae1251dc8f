package export

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWriteSummaryJSON(t *testing.T) {
	from := day(2023, 1, 1)
	s := model.Summary{
		Count:   4,
		Swimmer: "PEREZ, ANA",
		Event:   "50 Libre",
		Short:   model.CourseStats{Count: 3, Best: 29.8, BestDate: day(2023, 3, 4), Mean: 30.3333333},
		Long:    model.CourseStats{Best: racetime.Absent(), Mean: racetime.Absent()},
		Unknown: 1,
	}
	c := model.Criteria{Kind: model.KindFinalsOnly, From: &from}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryJSON(&buf, s, c))

	v, err := fastjson.ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "PEREZ, ANA", string(v.GetStringBytes("swimmer")))
	assert.Equal(t, 4, v.GetInt("records"))
	assert.Equal(t, 1, v.GetInt("unclassified"))

	assert.Equal(t, 3, v.GetInt("courses", "25m", "count"))
	assert.InDelta(t, 29.8, v.GetFloat64("courses", "25m", "best"), 1e-9)
	assert.Equal(t, "29.80", string(v.GetStringBytes("courses", "25m", "best_time")))
	assert.Equal(t, "2023-03-04", string(v.GetStringBytes("courses", "25m", "best_date")))
	assert.InDelta(t, 30.333, v.GetFloat64("courses", "25m", "mean"), 1e-9)

	assert.Equal(t, fastjson.TypeNull, v.Get("courses", "50m", "best").Type())
	assert.Equal(t, fastjson.TypeNull, v.Get("courses", "50m", "best_time").Type())
	assert.Equal(t, fastjson.TypeNull, v.Get("courses", "50m", "best_date").Type())
	assert.Equal(t, fastjson.TypeNull, v.Get("courses", "50m", "mean").Type())

	assert.Equal(t, "finals", string(v.GetStringBytes("filters", "kind")))
	assert.Equal(t, fastjson.TypeNull, v.Get("filters", "club").Type())
	assert.Equal(t, "2023-01-01", string(v.GetStringBytes("filters", "from")))
	assert.Equal(t, fastjson.TypeNull, v.Get("filters", "to").Type())
}

func TestWriteChartPNG(t *testing.T) {
	series := []model.CourseSeries{
		{Course: model.CourseShort, Best: 1, Points: []model.Point{
			{Date: day(2023, 1, 15), Seconds: 30.2},
			{Date: day(2023, 3, 4), Seconds: 29.8},
			{Date: day(2023, 6, 10), Seconds: 31.0},
		}},
		{Course: model.CourseLong, Points: []model.Point{
			{Date: day(2023, 2, 1), Seconds: 31.5},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChartPNG(&buf, "PEREZ, ANA - 50 Libre", series, 640, 360))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 360, img.Bounds().Dy())
}

func TestWriteChartPNGSingleSwim(t *testing.T) {
	series := []model.CourseSeries{
		{Course: model.CourseShort, Points: []model.Point{
			{Date: day(2023, 3, 4), Seconds: 29.8},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChartPNG(&buf, "single", series, 640, 360))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
}

func TestWriteChartPNGEqualTimes(t *testing.T) {
	series := []model.CourseSeries{
		{Course: model.CourseShort, Points: []model.Point{
			{Date: day(2023, 1, 15), Seconds: 30},
			{Date: day(2023, 3, 4), Seconds: 30},
		}},
		{Course: model.CourseLong, Points: []model.Point{
			{Date: day(2023, 2, 1), Seconds: 30},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChartPNG(&buf, "flat", series, 640, 360))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 360, img.Bounds().Dy())
}

func TestWriteChartPNGNoData(t *testing.T) {
	var buf bytes.Buffer
	err := WriteChartPNG(&buf, "", []model.CourseSeries{{Course: model.CourseShort}}, 0, 0)
	require.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1:09.50", raceTimeFormatter(69.5))
	assert.Equal(t, "", raceTimeFormatter("x"))
	assert.Equal(t, "04/03/23", dateFormatter(day(2023, 3, 4)))
	assert.Equal(t, "04/03/23", dateFormatter(float64(day(2023, 3, 4).UnixNano())))
}
