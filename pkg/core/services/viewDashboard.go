package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

// DashboardStore defines the database operations needed for the live dashboard
type DashboardStore interface {
	GetGameDateByDate(ctx context.Context, day time.Time) (model.GameDate, error)
	GetNearestFutureActiveDate(ctx context.Context, day time.Time) (model.GameDate, error)
	GetNearestPastActiveDate(ctx context.Context, day time.Time) (model.GameDate, error)
	ListVolunteers(ctx context.Context, filter db.VolunteerFilter) ([]model.Volunteer, error)
	ListAttendanceRecords(ctx context.Context, filter db.RecordFilter) ([]model.AttendanceRecord, error)
}

// ViewDashboard loads the live single-date dashboard for today.
// When no active game date exists at all, an empty dashboard is returned without
// querying volunteers or records.
func ViewDashboard(ctx context.Context, store DashboardStore, logger *zap.Logger, today time.Time) (*attendance.Dashboard, error) {
	logger.Debug("Starting viewDashboard", zap.String("today", model.Day(today).Format(model.DateLayout)))

	date, err := resolveDate(ctx, store, logger, today)
	if err != nil {
		return nil, err
	}
	if date == nil {
		logger.Debug("No active game date found")
		return attendance.BuildDashboard(nil, nil, nil), nil
	}

	volunteers, err := store.ListVolunteers(ctx, db.VolunteerFilter{ActiveOnly: true, Order: db.OrderByFirstName})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	records, err := store.ListAttendanceRecords(ctx, db.RecordFilter{DateID: date.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	dash := attendance.BuildDashboard(date, volunteers, records)
	logDuplicates(logger, dash.Duplicates)

	logger.Debug("Built dashboard",
		zap.String("date", date.DateString()),
		zap.Int("total", dash.Stats.Total),
		zap.Int("present", dash.Stats.Present),
		zap.Int("departments", dash.Stats.Departments))

	return dash, nil
}

// resolveDate runs the today, next, previous fallback chain against the store.
// Returns nil when no step finds an active date.
func resolveDate(ctx context.Context, store DashboardStore, logger *zap.Logger, today time.Time) (*model.GameDate, error) {
	steps := []struct {
		name   string
		lookup func(context.Context, time.Time) (model.GameDate, error)
	}{
		{"today", store.GetGameDateByDate},
		{"next", store.GetNearestFutureActiveDate},
		{"previous", store.GetNearestPastActiveDate},
	}

	for _, step := range steps {
		date, err := step.lookup(ctx, today)
		if err == nil {
			logger.Debug("Resolved game date", zap.String("step", step.name), zap.String("date", date.DateString()))
			return &date, nil
		}
		if !db.IsNotFound(err) {
			return nil, fmt.Errorf("failed to resolve %s game date: %w", step.name, err)
		}
	}

	return nil, nil
}

func logDuplicates(logger *zap.Logger, dups []attendance.DuplicateRecord) {
	for _, d := range dups {
		logger.Warn("Duplicate attendance record ignored",
			zap.String("volunteer_id", d.VolunteerID),
			zap.String("date_id", d.DateID),
			zap.String("kept", string(d.Kept)),
			zap.String("dropped", string(d.Dropped)))
	}
}
