package stats

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swimstat/swimstat/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Name: "Ana Pérez", Event: "50 Libre", Course: model.CourseShort, Seconds: 30.2, Date: day(2023, 1, 15), Kind: model.KindFinal, Club: "CN Lugo"},
		{Name: "Ana Pérez", Event: "50 Libre", Course: model.CourseShort, Seconds: 29.8, Date: day(2023, 3, 4), Kind: model.KindFinal, Club: "CN Lugo"},
		{Name: "Ana Pérez", Event: "50 Libre", Course: model.CourseShort, Seconds: 31.0, Date: day(2023, 6, 10), Kind: model.KindFinal, Club: "CN Lugo"},
		{Name: "Ana Pérez", Event: "50 Libre", Course: model.CourseLong, Seconds: 31.5, Kind: model.KindSplit, Venue: "Riazor"},
		{Name: "Ana Pérez", Event: "50 Libre", Course: model.CourseUnknown, Seconds: 33.0},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, "Ana Pérez", s.Swimmer)
	assert.Equal(t, "50 Libre", s.Event)
	assert.Equal(t, 1, s.Unknown)

	assert.Equal(t, 3, s.Short.Count)
	assert.InDelta(t, 29.8, s.Short.Best, 1e-9)
	assert.Equal(t, day(2023, 3, 4), s.Short.BestDate)
	assert.InDelta(t, 30.333, s.Short.Mean, 1e-3)

	assert.Equal(t, 1, s.Long.Count)
	assert.InDelta(t, 31.5, s.Long.Best, 1e-9)
	assert.True(t, s.Long.BestDate.IsZero())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Count)
	assert.Empty(t, s.Swimmer)
	assert.True(t, math.IsNaN(s.Short.Best))
	assert.True(t, math.IsNaN(s.Short.Mean))
	assert.True(t, math.IsNaN(s.Long.Best))
	assert.Equal(t, 0, s.Long.Count)
	assert.False(t, s.Short.HasBest())
	assert.Equal(t, "No data", Title(s))
}

func TestSummarizeOneCourseOnly(t *testing.T) {
	records := sampleRecords()[:3]
	s := Summarize(records)

	assert.True(t, s.Short.HasBest())
	assert.False(t, s.Long.HasBest())
	assert.True(t, math.IsNaN(s.Long.Mean))
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, Summarize(sampleRecords())))

	out := buf.String()
	assert.Contains(t, out, "Ana Pérez - 50 Libre")
	assert.Contains(t, out, "Records: 5")
	assert.Contains(t, out, "PB 25m: 29.80 (04/03/2023)")
	assert.Contains(t, out, "Avg 25m: 30.33 (3 swims)")
	assert.Contains(t, out, "PB 50m: 31.50\n")
	assert.Contains(t, out, "Unclassified pool: 1")
}

func TestRenderSummaryAbsentValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, Summarize(nil)))

	out := buf.String()
	assert.Contains(t, out, "No data")
	assert.Contains(t, out, "PB 25m: --")
	assert.Contains(t, out, "Avg 50m: -- (0 swims)")
	assert.NotContains(t, out, "Unclassified")
}

func TestRenderRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRecords(&buf, sampleRecords()[2:4]))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "Date        Time Pool Kind Club    Venue", string(lines[0]))
	assert.Equal(t, "10/06/2023 31.00 25m  N    CN Lugo", string(lines[1]))
	assert.Equal(t, "--         31.50 50m  S            Riazor", string(lines[2]))
}

func TestRenderRecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRecords(&buf, nil))
	assert.Equal(t, "No records found.\n", buf.String())
}
