// Package results turns federation CSV exports into normalized race records.
package results

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/racetime"
)

// FieldCount is the number of positional fields in an export row.
const FieldCount = 10

const dateLayout = "20060102"

const (
	colLicense = iota
	colName
	colBirthYear
	colClub
	colEvent
	colTime
	colPool
	colDate
	colVenue
	colKind
)

var (
	// ErrFieldCount is returned when a row does not have FieldCount fields.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrNoRows is returned when an export holds no rows at all.
	ErrNoRows = errors.New("no rows")
)

// LoadStats counts what normalization did to the raw rows.
type LoadStats struct {
	Rows        int
	DroppedTime int
	MissingDate int
}

// Kept returns the number of rows that became records.
func (s LoadStats) Kept() int {
	return s.Rows - s.DroppedTime
}

// Normalize converts raw rows into records sorted by date, undated first.
// Rows with an unusable time are dropped; rows with an unusable date are kept.
func Normalize(rows [][]string) ([]model.Record, LoadStats, error) {
	stats := LoadStats{Rows: len(rows)}
	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != FieldCount {
			return nil, LoadStats{}, fmt.Errorf("line %d: %w (got %d, want %d)", i+1, ErrFieldCount, len(row), FieldCount)
		}
		rec, ok := normalizeRow(row)
		if !ok {
			stats.DroppedTime++
			continue
		}
		if !rec.HasDate() {
			stats.MissingDate++
		}
		records = append(records, rec)
	}
	sortByDate(records)
	return records, stats, nil
}

func normalizeRow(row []string) (model.Record, bool) {
	date, _ := parseDate(row[colDate])
	secs, err := racetime.Parse(row[colTime])
	if err != nil || secs <= 0 {
		return model.Record{}, false
	}
	return model.Record{
		License:   row[colLicense],
		Name:      row[colName],
		BirthYear: parseBirthYear(row[colBirthYear]),
		Club:      row[colClub],
		Event:     row[colEvent],
		Seconds:   secs,
		RawTime:   strings.TrimSpace(row[colTime]),
		Course:    ClassifyPool(row[colPool]),
		PoolCode:  row[colPool],
		Date:      date,
		Venue:     row[colVenue],
		Kind:      strings.TrimSpace(row[colKind]),
	}, true
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) != len(dateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func parseBirthYear(raw string) int {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year < 0 {
		return 0
	}
	return year
}

// ClassifyPool maps a pool-info code to a course. "25" wins over "50" when a
// code contains both.
func ClassifyPool(code string) model.Course {
	c := strings.ToUpper(code)
	switch {
	case strings.Contains(c, "25"):
		return model.CourseShort
	case strings.Contains(c, "50"):
		return model.CourseLong
	default:
		return model.CourseUnknown
	}
}

func sortByDate(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.HasDate() {
			return b.HasDate()
		}
		if !b.HasDate() {
			return false
		}
		return a.Date.Before(b.Date)
	})
}

// Clubs returns the distinct club names in sorted order.
func Clubs(records []model.Record) []string {
	seen := make(map[string]struct{}, len(records))
	clubs := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Club]; ok {
			continue
		}
		seen[r.Club] = struct{}{}
		clubs = append(clubs, r.Club)
	}
	sort.Strings(clubs)
	return clubs
}
