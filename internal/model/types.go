// Package model defines shared data structures.
package model

import (
	"math"
	"time"
)

// Course classifies the pool length a result was swum in.
type Course int

const (
	CourseUnknown Course = iota
	CourseShort
	CourseLong
)

// String returns the label used in reports.
func (c Course) String() string {
	switch c {
	case CourseShort:
		return "25m"
	case CourseLong:
		return "50m"
	default:
		return "other"
	}
}

// Result kind codes as they appear in federation exports.
const (
	KindFinal = "N"
	KindSplit = "S"
)

// Record is a single normalized race result.
type Record struct {
	License   string
	Name      string
	BirthYear int
	Club      string
	Event     string
	Seconds   float64
	RawTime   string
	Course    Course
	PoolCode  string
	Date      time.Time // zero when the export carried no usable date
	Venue     string
	Kind      string
}

// HasDate reports whether the record carries a calendar date.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// KindFilter selects results by kind code.
type KindFilter int

const (
	KindAny KindFilter = iota
	KindFinalsOnly
	KindSplitsOnly
)

// String returns the flag spelling of the filter.
func (k KindFilter) String() string {
	switch k {
	case KindFinalsOnly:
		return "finals"
	case KindSplitsOnly:
		return "splits"
	default:
		return "any"
	}
}

// Criteria defines the active row filters. Zero value keeps everything.
type Criteria struct {
	Kind KindFilter
	Club string     // empty matches any club
	From *time.Time // inclusive
	To   *time.Time // inclusive
}

// HasDateBound reports whether either date bound is set.
func (c Criteria) HasDateBound() bool {
	return c.From != nil || c.To != nil
}

// CourseStats summarizes the results of one pool classification.
// Best and Mean are NaN when Count is zero.
type CourseStats struct {
	Count    int
	Best     float64
	BestDate time.Time
	Mean     float64
}

// HasBest reports whether a personal best exists.
func (s CourseStats) HasBest() bool {
	return s.Count > 0 && !math.IsNaN(s.Best)
}

// Summary is the per-course personal best report over a record set.
type Summary struct {
	Count   int
	Swimmer string
	Event   string
	Short   CourseStats
	Long    CourseStats
	Unknown int
}

// ByCourse returns the stats for the given classification.
func (s Summary) ByCourse(c Course) CourseStats {
	switch c {
	case CourseShort:
		return s.Short
	case CourseLong:
		return s.Long
	default:
		return CourseStats{Best: math.NaN(), Mean: math.NaN()}
	}
}

// Point is a dated time used for plotting.
type Point struct {
	Date    time.Time
	Seconds float64
}

// CourseSeries is the dated progression of one pool classification.
type CourseSeries struct {
	Course Course
	Points []Point
	Best   int // index of the fastest point
}
