// Package session owns the loaded and filtered result sets behind the CLI
// and the dashboard.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/swimstat/swimstat/internal/filter"
	"github.com/swimstat/swimstat/internal/model"
	"github.com/swimstat/swimstat/internal/results"
	"github.com/swimstat/swimstat/internal/stats"
)

// ErrNoFile is returned by Reload before any file was loaded.
var ErrNoFile = errors.New("no file loaded")

// Session holds the current snapshots. Every transition replaces them wholesale.
type Session struct {
	logger *zap.Logger

	path      string
	records   []model.Record
	loadStats results.LoadStats
	clubs     []string

	input    filter.Input
	criteria model.Criteria
	warnings []filter.Warning
	filtered []model.Record
	summary  model.Summary
	series   []model.CourseSeries
}

// New creates an empty session that will filter with in once data arrives.
func New(logger *zap.Logger, in filter.Input) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{logger: logger}
	s.Apply(in)
	return s
}

// Load reads and normalizes path, then reapplies the current filters.
// On error the previously loaded data is kept. When data was already loaded,
// a club filter naming a club absent from the new data is cleared.
func (s *Session) Load(ctx context.Context, path string) error {
	records, ls, err := results.Load(ctx, path)
	if err != nil {
		s.logger.Warn("load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	replacing := s.path != ""
	s.path = path
	s.records = records
	s.loadStats = ls
	s.clubs = results.Clubs(records)
	s.logger.Info("loaded results",
		zap.String("path", path),
		zap.Int("rows", ls.Rows),
		zap.Int("kept", ls.Kept()),
		zap.Int("dropped_time", ls.DroppedTime),
		zap.Int("missing_date", ls.MissingDate),
	)
	if replacing && s.input.Club != "" && !slices.Contains(s.clubs, s.input.Club) {
		s.logger.Info("club filter cleared", zap.String("club", s.input.Club))
		s.input.Club = ""
		s.criteria.Club = ""
	}
	s.refresh()
	return nil
}

// Reload loads the current file again.
func (s *Session) Reload(ctx context.Context) error {
	if s.path == "" {
		return ErrNoFile
	}
	if err := s.Load(ctx, s.path); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return nil
}

// Apply replaces the filter input and recomputes the filtered snapshot.
// Date bounds that do not parse are ignored and returned as warnings.
func (s *Session) Apply(in filter.Input) []filter.Warning {
	s.input = in
	s.criteria, s.warnings = filter.Build(in)
	for _, w := range s.warnings {
		s.logger.Warn("ignored filter value",
			zap.String("field", w.Field),
			zap.String("value", w.Value),
			zap.Error(w.Err),
		)
	}
	s.refresh()
	return s.warnings
}

func (s *Session) refresh() {
	s.filtered = filter.Apply(s.records, s.criteria)
	s.summary = stats.Summarize(s.filtered)
	s.series = stats.Progression(s.filtered)
	s.logger.Debug("filters applied",
		zap.String("criteria", filter.Describe(s.criteria)),
		zap.Int("matched", len(s.filtered)),
	)
}

// Loaded reports whether a file has been loaded successfully.
func (s *Session) Loaded() bool { return s.path != "" }

// Path returns the loaded file path.
func (s *Session) Path() string { return s.path }

// Records returns the full loaded set.
func (s *Session) Records() []model.Record { return s.records }

// LoadStats returns counters from the last successful load.
func (s *Session) LoadStats() results.LoadStats { return s.loadStats }

// Clubs returns the distinct clubs in the loaded set.
func (s *Session) Clubs() []string { return s.clubs }

// Input returns the filter values as entered.
func (s *Session) Input() filter.Input { return s.input }

// Criteria returns the parsed criteria in effect.
func (s *Session) Criteria() model.Criteria { return s.criteria }

// Warnings returns the warnings from the last Apply.
func (s *Session) Warnings() []filter.Warning { return s.warnings }

// Filtered returns the records matching the current criteria.
func (s *Session) Filtered() []model.Record { return s.filtered }

// Summary returns the summary of the filtered set.
func (s *Session) Summary() model.Summary { return s.summary }

// Series returns the dated progression of the filtered set.
func (s *Session) Series() []model.CourseSeries { return s.series }
