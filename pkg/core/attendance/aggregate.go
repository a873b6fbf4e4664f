package attendance

import (
	"time"

	"github.com/gamenight/attendance/pkg/core/model"
)

// DuplicateRecord reports an attendance record dropped because an earlier record
// already exists for the same volunteer and date
type DuplicateRecord struct {
	VolunteerID string                 `json:"volunteerId"`
	DateID      string                 `json:"dateId"`
	Kept        model.AttendanceStatus `json:"kept"`
	Dropped     model.AttendanceStatus `json:"dropped"`
}

type recordKey struct {
	volunteerID string
	dateID      string
}

// Dedupe keeps the first record seen for each (volunteer, date) pair
func Dedupe(records []model.AttendanceRecord) ([]model.AttendanceRecord, []DuplicateRecord) {
	seen := make(map[recordKey]model.AttendanceStatus, len(records))
	unique := make([]model.AttendanceRecord, 0, len(records))
	var dups []DuplicateRecord

	for _, r := range records {
		key := recordKey{volunteerID: r.VolunteerID, dateID: r.DateID}
		if kept, ok := seen[key]; ok {
			dups = append(dups, DuplicateRecord{
				VolunteerID: r.VolunteerID,
				DateID:      r.DateID,
				Kept:        kept,
				Dropped:     r.Status,
			})
			continue
		}
		seen[key] = r.Status
		unique = append(unique, r)
	}

	return unique, dups
}

// VolunteerHistory is a volunteer with their status on every game date
type VolunteerHistory struct {
	Volunteer model.Volunteer
	// Statuses has one entry per game date ID; nil when there is no record
	Statuses map[string]*model.AttendanceStatus
	Summary  StatusSummary
}

// Overview is the full-history model
type Overview struct {
	Dates        []model.GameDate
	Volunteers   []VolunteerHistory
	ByDepartment *Groups[VolunteerHistory]
	Duplicates   []DuplicateRecord
}

// Departments returns the departments present in the overview, in grouping order
func (o *Overview) Departments() []model.Department {
	return o.ByDepartment.Departments()
}

// BuildOverview joins volunteers with their records across all game dates.
// Volunteer order is preserved; grouping follows that order.
func BuildOverview(dates []model.GameDate, volunteers []model.Volunteer, records []model.AttendanceRecord) *Overview {
	unique, dups := Dedupe(records)

	byVolunteer := make(map[string][]model.AttendanceRecord)
	for _, r := range unique {
		byVolunteer[r.VolunteerID] = append(byVolunteer[r.VolunteerID], r)
	}

	histories := make([]VolunteerHistory, 0, len(volunteers))
	groups := NewGroups[VolunteerHistory]()

	for _, vol := range volunteers {
		history := buildHistory(dates, vol, byVolunteer[vol.ID])
		histories = append(histories, history)
		groups.Add(vol.DepartmentKey(), history)
	}

	return &Overview{
		Dates:        dates,
		Volunteers:   histories,
		ByDepartment: groups,
		Duplicates:   dups,
	}
}

func buildHistory(dates []model.GameDate, vol model.Volunteer, records []model.AttendanceRecord) VolunteerHistory {
	byDate := make(map[string]model.AttendanceStatus, len(records))
	statuses := make([]model.AttendanceStatus, 0, len(records))
	for _, r := range records {
		byDate[r.DateID] = r.Status
		statuses = append(statuses, r.Status)
	}

	statusMap := make(map[string]*model.AttendanceStatus, len(dates))
	for _, d := range dates {
		if status, ok := byDate[d.ID]; ok {
			statusMap[d.ID] = &status
		} else {
			statusMap[d.ID] = nil
		}
	}

	return VolunteerHistory{
		Volunteer: vol,
		Statuses:  statusMap,
		Summary:   Summarize(statuses),
	}
}

// HistoryEntry is one row of a volunteer's attendance history
type HistoryEntry struct {
	GameDate model.GameDate
	Status   *model.AttendanceStatus
}

// VolunteerDetail is a single volunteer's summary and dated history
type VolunteerDetail struct {
	Volunteer  model.Volunteer
	Summary    StatusSummary
	History    []HistoryEntry
	Duplicates []DuplicateRecord
}

// BuildVolunteerDetail builds the detail view for one volunteer. Records for
// other volunteers are ignored.
func BuildVolunteerDetail(dates []model.GameDate, vol model.Volunteer, records []model.AttendanceRecord) *VolunteerDetail {
	own := make([]model.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.VolunteerID == vol.ID {
			own = append(own, r)
		}
	}
	unique, dups := Dedupe(own)
	history := buildHistory(dates, vol, unique)

	entries := make([]HistoryEntry, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, HistoryEntry{GameDate: d, Status: history.Statuses[d.ID]})
	}

	return &VolunteerDetail{
		Volunteer:  vol,
		Summary:    history.Summary,
		History:    entries,
		Duplicates: dups,
	}
}

// ScheduledVolunteer is a volunteer on the live dashboard with their status for the day
type ScheduledVolunteer struct {
	Volunteer model.Volunteer
	Status    model.AttendanceStatus
}

// DashboardStats are the live dashboard counters
type DashboardStats struct {
	Total       int `json:"total"`
	Present     int `json:"present"`
	Scheduled   int `json:"scheduled"`
	Departments int `json:"departments"`
}

// AttendanceRate returns present / total * 100, or 0 with no volunteers.
// Present may include records of unlisted volunteers, so it is not capped at 100.
func (s DashboardStats) AttendanceRate() float64 {
	return rate(s.Present, s.Total)
}

// Dashboard is the live, single-date model
type Dashboard struct {
	// Date is nil when no active game date could be resolved
	Date         *model.GameDate
	ByDepartment *Groups[ScheduledVolunteer]
	Stats        DashboardStats
	Duplicates   []DuplicateRecord
}

// HasDate reports whether a game date was resolved
func (d *Dashboard) HasDate() bool {
	return d.Date != nil
}

// ShowingOtherDay reports whether the dashboard shows a date other than today
func (d *Dashboard) ShowingOtherDay(today time.Time) bool {
	return d.Date != nil && !d.Date.Date.Equal(model.Day(today))
}

// BuildDashboard selects the volunteers scheduled or present on date and groups
// them by department. volunteers should already be restricted to active ones;
// their order is preserved within each department. Total counts the listed
// volunteers while Present and Scheduled count all records on the date.
func BuildDashboard(date *model.GameDate, volunteers []model.Volunteer, records []model.AttendanceRecord) *Dashboard {
	dash := &Dashboard{
		Date:         date,
		ByDepartment: NewGroups[ScheduledVolunteer](),
	}
	if date == nil {
		return dash
	}

	onDate := make([]model.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.DateID == date.ID {
			onDate = append(onDate, r)
		}
	}
	unique, dups := Dedupe(onDate)
	dash.Duplicates = dups

	statusByVolunteer := make(map[string]model.AttendanceStatus, len(unique))
	for _, r := range unique {
		statusByVolunteer[r.VolunteerID] = r.Status
		// counted over every record on the date, listed or not
		switch r.Status {
		case model.StatusPresent:
			dash.Stats.Present++
		case model.StatusScheduled:
			dash.Stats.Scheduled++
		}
	}

	for _, vol := range volunteers {
		status, ok := statusByVolunteer[vol.ID]
		if !ok || (status != model.StatusScheduled && status != model.StatusPresent) {
			continue
		}
		dash.ByDepartment.Add(vol.DepartmentKey(), ScheduledVolunteer{Volunteer: vol, Status: status})
		dash.Stats.Total++
	}
	dash.Stats.Departments = dash.ByDepartment.Len()

	return dash
}
