package attendance

import (
	"time"

	"github.com/gamenight/attendance/pkg/core/model"
)

// FindByDate returns the first active game date on the given day
func FindByDate(dates []model.GameDate, day time.Time) (model.GameDate, bool) {
	day = model.Day(day)
	for _, d := range dates {
		if d.IsActive && d.Date.Equal(day) {
			return d, true
		}
	}
	return model.GameDate{}, false
}

// NearestFuture returns the earliest active game date strictly after day.
// Ties keep the first row in input order.
func NearestFuture(dates []model.GameDate, day time.Time) (model.GameDate, bool) {
	day = model.Day(day)
	var best model.GameDate
	found := false
	for _, d := range dates {
		if !d.IsActive || !d.Date.After(day) {
			continue
		}
		if !found || d.Date.Before(best.Date) {
			best = d
			found = true
		}
	}
	return best, found
}

// NearestPast returns the latest active game date strictly before day.
// Ties keep the first row in input order.
func NearestPast(dates []model.GameDate, day time.Time) (model.GameDate, bool) {
	day = model.Day(day)
	var best model.GameDate
	found := false
	for _, d := range dates {
		if !d.IsActive || !d.Date.Before(day) {
			continue
		}
		if !found || d.Date.After(best.Date) {
			best = d
			found = true
		}
	}
	return best, found
}

// ResolveActiveDate picks the game date the live dashboard shows: today if active,
// else the nearest future active date, else the nearest past active date.
// Returns nil when there is no active schedule at all.
func ResolveActiveDate(today time.Time, dates []model.GameDate) *model.GameDate {
	if d, ok := FindByDate(dates, today); ok {
		return &d
	}
	if d, ok := NearestFuture(dates, today); ok {
		return &d
	}
	if d, ok := NearestPast(dates, today); ok {
		return &d
	}
	return nil
}
