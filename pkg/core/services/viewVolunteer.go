package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

// VolunteerStore defines the database operations needed for the volunteer detail view
type VolunteerStore interface {
	GetVolunteer(ctx context.Context, id string) (model.Volunteer, error)
	ListGameDates(ctx context.Context) ([]model.GameDate, error)
	ListAttendanceRecords(ctx context.Context, filter db.RecordFilter) ([]model.AttendanceRecord, error)
}

// ViewVolunteer loads one volunteer's summary and history across every game date.
// The returned error wraps db.ErrNotFound when the volunteer does not exist.
func ViewVolunteer(ctx context.Context, store VolunteerStore, logger *zap.Logger, volunteerID string) (*attendance.VolunteerDetail, error) {
	logger.Debug("Starting viewVolunteer", zap.String("volunteer_id", volunteerID))

	vol, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	dates, err := store.ListGameDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game dates: %w", err)
	}

	records, err := store.ListAttendanceRecords(ctx, db.RecordFilter{VolunteerID: volunteerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	detail := attendance.BuildVolunteerDetail(dates, vol, records)
	logDuplicates(logger, detail.Duplicates)

	return detail, nil
}
