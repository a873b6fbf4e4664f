package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

// OverviewStore defines the database operations needed for the full-history overview
type OverviewStore interface {
	ListGameDates(ctx context.Context) ([]model.GameDate, error)
	ListVolunteers(ctx context.Context, filter db.VolunteerFilter) ([]model.Volunteer, error)
	ListAttendanceRecords(ctx context.Context, filter db.RecordFilter) ([]model.AttendanceRecord, error)
}

// ViewOverview loads every game date, every volunteer and every attendance record
// and joins them. The three reads run concurrently; if any fails the whole load fails.
func ViewOverview(ctx context.Context, store OverviewStore, logger *zap.Logger) (*attendance.Overview, error) {
	logger.Debug("Starting viewOverview")

	var (
		dates      []model.GameDate
		volunteers []model.Volunteer
		records    []model.AttendanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if dates, err = store.ListGameDates(gctx); err != nil {
			return fmt.Errorf("failed to fetch game dates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if volunteers, err = store.ListVolunteers(gctx, db.VolunteerFilter{Order: db.OrderByDepartment}); err != nil {
			return fmt.Errorf("failed to fetch volunteers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if records, err = store.ListAttendanceRecords(gctx, db.RecordFilter{}); err != nil {
			return fmt.Errorf("failed to fetch attendance records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Fetched overview data",
		zap.Int("dates", len(dates)),
		zap.Int("volunteers", len(volunteers)),
		zap.Int("records", len(records)))

	overview := attendance.BuildOverview(dates, volunteers, records)
	logDuplicates(logger, overview.Duplicates)

	return overview, nil
}
