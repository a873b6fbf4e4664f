package db

import (
	"context"
	"time"

	"github.com/gamenight/attendance/pkg/core/model"
)

// VolunteerOrder selects the ordering of ListVolunteers
type VolunteerOrder int

const (
	// OrderByDepartment sorts by department declaration order (no department last), then last name
	OrderByDepartment VolunteerOrder = iota
	// OrderByFirstName sorts by first name
	OrderByFirstName
)

func (o VolunteerOrder) String() string {
	switch o {
	case OrderByDepartment:
		return "department"
	case OrderByFirstName:
		return "first_name"
	default:
		return "unknown"
	}
}

// VolunteerFilter narrows ListVolunteers
type VolunteerFilter struct {
	ActiveOnly bool
	Order      VolunteerOrder
}

// RecordFilter narrows ListAttendanceRecords. Empty fields match everything.
type RecordFilter struct {
	DateID      string
	VolunteerID string
}

// Database defines the read operations the dashboard needs.
// Both the SheetsSQL-backed db.DB and postgres.DB implement this interface.
//
// Lookups that find nothing return ErrNotFound; any other failure is a *QueryError.
type Database interface {
	// ListGameDates returns every game date ordered by date ascending
	ListGameDates(ctx context.Context) ([]model.GameDate, error)
	ListVolunteers(ctx context.Context, filter VolunteerFilter) ([]model.Volunteer, error)
	ListAttendanceRecords(ctx context.Context, filter RecordFilter) ([]model.AttendanceRecord, error)
	GetVolunteer(ctx context.Context, id string) (model.Volunteer, error)

	// GetGameDateByDate returns the active game date on day
	GetGameDateByDate(ctx context.Context, day time.Time) (model.GameDate, error)
	GetNearestFutureActiveDate(ctx context.Context, day time.Time) (model.GameDate, error)
	GetNearestPastActiveDate(ctx context.Context, day time.Time) (model.GameDate, error)

	Ping(ctx context.Context) error
	Close()
}
