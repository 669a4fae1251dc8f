// Package racetime converts between race time text and seconds.
package racetime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("empty race time")
	// ErrMalformed is returned when the text is not a race time.
	ErrMalformed = errors.New("malformed race time")
)

const absentText = "--"

// Absent returns the value used for a missing time.
func Absent() float64 {
	return math.NaN()
}

// IsAbsent reports whether v represents a missing time.
func IsAbsent(v float64) bool {
	return math.IsNaN(v)
}

// Parse converts "M:SS.cc" or "SS.cc" into seconds.
func Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmpty
	}
	minutesText, secondsText, hasColon := strings.Cut(text, ":")
	if !hasColon {
		secs, err := parseComponent(text)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		return secs, nil
	}
	if strings.Contains(secondsText, ":") {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, text)
	}
	mins, err := parseComponent(minutesText)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, text)
	}
	secs, err := parseComponent(secondsText)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, text)
	}
	return mins*60 + secs, nil
}

func parseComponent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	// Plain decimals only; ParseFloat alone would take hex, exponents and "inf".
	if strings.IndexFunc(s, notDecimal) >= 0 {
		return 0, ErrMalformed
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrMalformed
	}
	return v, nil
}

func notDecimal(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != '+' && r != '-'
}

// Format renders seconds as "M:SS.cc" when at least a minute, else "SS.cc".
// NaN renders as "--". The value is rounded to hundredths before the minutes
// are split off, so 59.996 renders as "1:00.00" rather than "60.00".
func Format(seconds float64) string {
	if math.IsNaN(seconds) {
		return absentText
	}
	if math.IsInf(seconds, 0) {
		return absentText
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	seconds = math.Round(seconds*100) / 100
	minutes := math.Floor(seconds / 60)
	remaining := seconds - minutes*60
	if minutes > 0 {
		return fmt.Sprintf("%s%d:%05.2f", sign, int64(minutes), remaining)
	}
	return fmt.Sprintf("%s%.2f", sign, remaining)
}
