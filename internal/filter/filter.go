// Package filter selects race records by kind, club and date range.
package filter

import (
	"github.com/swimstat/swimstat/internal/model"
)

// Apply returns the records matching every criterion, in input order.
// The input slice is never modified.
func Apply(records []model.Record, c model.Criteria) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if Match(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether a single record satisfies the criteria.
func Match(r model.Record, c model.Criteria) bool {
	switch c.Kind {
	case model.KindFinalsOnly:
		if r.Kind != model.KindFinal {
			return false
		}
	case model.KindSplitsOnly:
		if r.Kind != model.KindSplit {
			return false
		}
	}
	if c.Club != "" && r.Club != c.Club {
		return false
	}
	// An undated record compares false against any bound.
	if c.From != nil && (!r.HasDate() || r.Date.Before(*c.From)) {
		return false
	}
	if c.To != nil && (!r.HasDate() || r.Date.After(*c.To)) {
		return false
	}
	return true
}
