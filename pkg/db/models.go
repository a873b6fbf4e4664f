package db

import (
	"fmt"
	"time"

	"github.com/gamenight/attendance/pkg/core/model"
)

// VolunteerRow represents a row of the volunteers tab
type VolunteerRow struct {
	ID         string `ssql_header:"id" ssql_type:"uuid"`
	FirstName  string `ssql_header:"first_name" ssql_type:"text"`
	LastName   string `ssql_header:"last_name" ssql_type:"text"`
	Department string `ssql_header:"department" ssql_type:"department"`
	IsActive   bool   `ssql_header:"is_active" ssql_type:"bool"`
	CreatedAt  string `ssql_header:"created_at" ssql_type:"timestamp"`
	UpdatedAt  string `ssql_header:"updated_at" ssql_type:"timestamp"`
}

// GameDateRow represents a row of the game dates tab
type GameDateRow struct {
	ID        string `ssql_header:"id" ssql_type:"uuid"`
	Date      string `ssql_header:"date" ssql_type:"date"`
	IsActive  bool   `ssql_header:"is_active" ssql_type:"bool"`
	CreatedAt string `ssql_header:"created_at" ssql_type:"timestamp"`
	UpdatedAt string `ssql_header:"updated_at" ssql_type:"timestamp"`
}

// VolunteerDateStatusRow represents a row of the attendance status tab
type VolunteerDateStatusRow struct {
	VolunteerID string `ssql_header:"volunteer_id" ssql_type:"uuid"`
	DateID      string `ssql_header:"date_id" ssql_type:"uuid"`
	Status      string `ssql_header:"status" ssql_type:"attendance_status"`
	CreatedAt   string `ssql_header:"created_at" ssql_type:"timestamp"`
	UpdatedAt   string `ssql_header:"updated_at" ssql_type:"timestamp"`
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseTimestamps(created, updated string) (time.Time, time.Time, error) {
	c, err := parseTimestamp(created)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	u, err := parseTimestamp(updated)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return c, u, nil
}

// ToModel converts the row into a domain volunteer
func (r VolunteerRow) ToModel() (model.Volunteer, error) {
	dept, err := model.ParseDepartment(r.Department)
	if err != nil {
		return model.Volunteer{}, fmt.Errorf("volunteer %s: %w", r.ID, err)
	}
	created, updated, err := parseTimestamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return model.Volunteer{}, fmt.Errorf("volunteer %s: %w", r.ID, err)
	}
	return model.Volunteer{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Department: dept,
		IsActive:   r.IsActive,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

// ToModel converts the row into a domain game date
func (r GameDateRow) ToModel() (model.GameDate, error) {
	date, err := model.ParseDay(r.Date)
	if err != nil {
		return model.GameDate{}, fmt.Errorf("game date %s: %w", r.ID, err)
	}
	created, updated, err := parseTimestamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return model.GameDate{}, fmt.Errorf("game date %s: %w", r.ID, err)
	}
	return model.GameDate{
		ID:        r.ID,
		Date:      date,
		IsActive:  r.IsActive,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// ToModel converts the row into a domain attendance record
func (r VolunteerDateStatusRow) ToModel() (model.AttendanceRecord, error) {
	status, err := model.ParseAttendanceStatus(r.Status)
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("status for volunteer %s on %s: %w", r.VolunteerID, r.DateID, err)
	}
	created, updated, err := parseTimestamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("status for volunteer %s on %s: %w", r.VolunteerID, r.DateID, err)
	}
	return model.AttendanceRecord{
		VolunteerID: r.VolunteerID,
		DateID:      r.DateID,
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}
