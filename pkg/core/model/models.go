package model

import (
	"fmt"
	"time"
)

// Department is the fixed set of volunteer departments
type Department string

const (
	DepartmentCaster      Department = "caster"
	DepartmentCosplay     Department = "cosplay"
	DepartmentCreatives   Department = "creatives"
	DepartmentHost        Department = "host"
	DepartmentMedia       Department = "media"
	DepartmentProduction  Department = "production"
	DepartmentSocmed      Department = "socmed"
	DepartmentSponsorship Department = "sponsorship"
	DepartmentWriter      Department = "writer"
	DepartmentNone        Department = "n/a"
)

// Departments lists every department in declaration order. Stores sort by this order.
var Departments = []Department{
	DepartmentCaster,
	DepartmentCosplay,
	DepartmentCreatives,
	DepartmentHost,
	DepartmentMedia,
	DepartmentProduction,
	DepartmentSocmed,
	DepartmentSponsorship,
	DepartmentWriter,
	DepartmentNone,
}

func (d Department) IsValid() bool {
	return d.Rank() >= 0
}

// Rank returns the department's position in declaration order, or -1 if unknown
func (d Department) Rank() int {
	for i, dept := range Departments {
		if dept == d {
			return i
		}
	}
	return -1
}

// ParseDepartment parses a stored department value. An empty value means no department.
func ParseDepartment(s string) (Department, error) {
	if s == "" {
		return "", nil
	}
	d := Department(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown department %q", s)
	}
	return d, nil
}

// AttendanceStatus is the status of one volunteer for one game date
type AttendanceStatus string

const (
	StatusScheduled AttendanceStatus = "scheduled"
	StatusPresent   AttendanceStatus = "present"
	StatusAbsent    AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusScheduled || s == StatusPresent || s == StatusAbsent
}

// ParseAttendanceStatus parses a stored status value
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	status := AttendanceStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
	return status, nil
}

// Volunteer represents a volunteer at the event series
type Volunteer struct {
	ID         string
	FirstName  string
	LastName   string
	Department Department // empty when the volunteer has no department
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName returns "first last"
func (v Volunteer) FullName() string {
	return v.FirstName + " " + v.LastName
}

// DepartmentKey returns the department used for grouping, with n/a for a missing department
func (v Volunteer) DepartmentKey() Department {
	if v.Department == "" {
		return DepartmentNone
	}
	return v.Department
}

// GameDate is one calendar date on which volunteers may be scheduled
type GameDate struct {
	ID        string
	Date      time.Time // civil date, midnight UTC
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateString returns the game date as YYYY-MM-DD
func (g GameDate) DateString() string {
	return g.Date.Format(DateLayout)
}

// AttendanceRecord links one volunteer to one game date
type AttendanceRecord struct {
	VolunteerID string
	DateID      string
	Status      AttendanceStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DateLayout is the storage format for civil dates
const DateLayout = "2006-01-02"

// Day returns the civil date of t (as seen in t's location) at midnight UTC
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD civil date
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
