package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/model"
)

// ScheduleStore defines the database operations needed to check the schedule
type ScheduleStore interface {
	ListGameDates(ctx context.Context) ([]model.GameDate, error)
}

// ScheduleReport compares the expected recurrence with the stored game dates
type ScheduleReport struct {
	From  time.Time
	Until time.Time
	// Occurrences are the civil dates generated by the rule within [From, Until]
	Occurrences []time.Time
	// Missing are occurrences with no active game date
	Missing []time.Time
	// Unexpected are active game dates within the window that the rule does not generate
	Unexpected []model.GameDate
}

// OK reports whether the stored schedule matches the rule exactly
func (r *ScheduleReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Unexpected) == 0
}

// CheckSchedule expands rule over [from, until] and reports the differences with the
// active game dates in the store. If the rule has no DTSTART, from is used.
func CheckSchedule(ctx context.Context, store ScheduleStore, logger *zap.Logger, rule string, from, until time.Time) (*ScheduleReport, error) {
	from, until = model.Day(from), model.Day(until)
	if until.Before(from) {
		return nil, fmt.Errorf("invalid window: %s is before %s", until.Format(model.DateLayout), from.Format(model.DateLayout))
	}

	logger.Debug("Starting checkSchedule",
		zap.String("rrule", rule),
		zap.String("from", from.Format(model.DateLayout)),
		zap.String("until", until.Format(model.DateLayout)))

	occurrences, err := expandRule(rule, from, until)
	if err != nil {
		return nil, err
	}

	dates, err := store.ListGameDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game dates: %w", err)
	}

	expected := make(map[time.Time]bool, len(occurrences))
	for _, o := range occurrences {
		expected[o] = true
	}

	stored := make(map[time.Time]bool, len(dates))
	report := &ScheduleReport{From: from, Until: until, Occurrences: occurrences}

	for _, d := range dates {
		if !d.IsActive || d.Date.Before(from) || d.Date.After(until) {
			continue
		}
		stored[d.Date] = true
		if !expected[d.Date] {
			report.Unexpected = append(report.Unexpected, d)
		}
	}

	for _, o := range occurrences {
		if !stored[o] {
			report.Missing = append(report.Missing, o)
		}
	}

	logger.Debug("Checked schedule",
		zap.Int("occurrences", len(occurrences)),
		zap.Int("missing", len(report.Missing)),
		zap.Int("unexpected", len(report.Unexpected)))

	return report, nil
}

// expandRule returns the distinct civil dates generated by rule within [from, until]
func expandRule(rule string, from, until time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}
	if !strings.Contains(strings.ToUpper(rule), "DTSTART") {
		r.DTStart(from)
	}

	// until is inclusive, so search up to the end of that day
	raw := r.Between(from, until.AddDate(0, 0, 1).Add(-time.Nanosecond), true)

	seen := make(map[time.Time]bool, len(raw))
	out := make([]time.Time, 0, len(raw))
	for _, t := range raw {
		day := model.Day(t)
		if day.Before(from) || day.After(until) || seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	return out, nil
}
