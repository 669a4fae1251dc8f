package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/swimstat/swimstat/internal/model"
)

var (
	// ErrUnknownKind is returned for an unrecognized result kind filter.
	ErrUnknownKind = errors.New("unknown result kind")
	// ErrBadDate is returned for a date bound that is not a day-first date.
	ErrBadDate = errors.New("invalid date")
)

// DateHint describes the accepted bound format to users.
const DateHint = "DD/MM/YYYY"

var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2006-01-02",
}

// Input holds user-entered filter values before parsing.
type Input struct {
	Kind model.KindFilter
	Club string
	From string
	To   string
}

// Warning reports a filter value that was ignored.
type Warning struct {
	Field string
	Value string
	Err   error
}

func (w Warning) String() string {
	return fmt.Sprintf("ignoring %s date %q (use %s)", w.Field, w.Value, DateHint)
}

// ParseKind parses a result kind filter name.
func ParseKind(text string) (model.KindFilter, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "any", "all":
		return model.KindAny, nil
	case "finals", "final", "n":
		return model.KindFinalsOnly, nil
	case "splits", "split", "s":
		return model.KindSplitsOnly, nil
	default:
		return model.KindAny, fmt.Errorf("%w %q (use any, finals or splits)", ErrUnknownKind, text)
	}
}

// ParseDayFirst parses a calendar date written day first, e.g. 05/03/2023.
// ISO dates (2023-03-05) are accepted as well.
func ParseDayFirst(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range dayFirstLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrBadDate, text)
}

// Build turns user input into criteria. A date bound that does not parse is
// dropped and reported; every other value still applies.
func Build(in Input) (model.Criteria, []Warning) {
	c := model.Criteria{
		Kind: in.Kind,
		Club: strings.TrimSpace(in.Club),
	}
	var warnings []Warning
	if from, w, ok := parseBound("from", in.From); ok {
		c.From = from
	} else if w != nil {
		warnings = append(warnings, *w)
	}
	if to, w, ok := parseBound("to", in.To); ok {
		c.To = to
	} else if w != nil {
		warnings = append(warnings, *w)
	}
	return c, warnings
}

func parseBound(field, text string) (*time.Time, *Warning, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, false
	}
	d, err := ParseDayFirst(text)
	if err != nil {
		return nil, &Warning{Field: field, Value: text, Err: err}, false
	}
	return &d, nil, true
}

// Describe renders a one-line description of the criteria.
func Describe(c model.Criteria) string {
	club := c.Club
	if club == "" {
		club = "any"
	}
	from := "any"
	if c.From != nil {
		from = c.From.Format("02/01/2006")
	}
	to := "any"
	if c.To != nil {
		to = c.To.Format("02/01/2006")
	}
	return fmt.Sprintf("kind=%s  club=%s  from=%s  to=%s", c.Kind, club, from, to)
}
