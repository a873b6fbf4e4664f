package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/core/services"
)

func testDay(s string) time.Time {
	d, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testOverview() *attendance.Overview {
	dates := []model.GameDate{
		{ID: "d1", Date: testDay("2024-03-01"), IsActive: true},
		{ID: "d2", Date: testDay("2024-03-08"), IsActive: true},
	}
	volunteers := []model.Volunteer{
		{ID: "v1", FirstName: "Anna", LastName: "Smith", Department: model.DepartmentMedia, IsActive: true},
		{ID: "v2", FirstName: "Ben", LastName: "Jones", Department: model.DepartmentHost, IsActive: true},
		{ID: "v3", FirstName: "Cara", LastName: "Lee", IsActive: false},
	}
	records := []model.AttendanceRecord{
		{VolunteerID: "v1", DateID: "d1", Status: model.StatusPresent},
		{VolunteerID: "v1", DateID: "d2", Status: model.StatusScheduled},
		{VolunteerID: "v2", DateID: "d2", Status: model.StatusPresent},
	}
	return attendance.BuildOverview(dates, volunteers, records)
}

func TestParseDepartmentFilter(t *testing.T) {
	d, err := parseDepartmentFilter("")
	require.NoError(t, err)
	assert.Equal(t, attendance.AllDepartments, d)

	d, err = parseDepartmentFilter(" Media ")
	require.NoError(t, err)
	assert.Equal(t, model.DepartmentMedia, d)

	d, err = parseDepartmentFilter("n/a")
	require.NoError(t, err)
	assert.Equal(t, model.DepartmentNone, d)

	_, err = parseDepartmentFilter("juggling")
	assert.ErrorContains(t, err, `unknown department "juggling"`)
}

func TestRenderDashboard(t *testing.T) {
	date := model.GameDate{ID: "d2", Date: testDay("2024-03-08"), IsActive: true}
	volunteers := []model.Volunteer{
		{ID: "v1", FirstName: "Anna", LastName: "Smith", Department: model.DepartmentMedia, IsActive: true},
		{ID: "v2", FirstName: "Ben", LastName: "Jones", Department: model.DepartmentHost, IsActive: true},
	}
	records := []model.AttendanceRecord{
		{VolunteerID: "v1", DateID: "d2", Status: model.StatusPresent},
		{VolunteerID: "v2", DateID: "d2", Status: model.StatusScheduled},
	}
	dash := attendance.BuildDashboard(&date, volunteers, records)

	var buf bytes.Buffer
	newRenderer(&buf, false).dashboard(dash, dash.ByDepartment, testDay("2024-03-05"), time.Date(2024, 3, 5, 18, 4, 5, 0, time.UTC))
	out := buf.String()

	assert.Contains(t, out, "Tue 05 Mar 2024 18:04:05")
	assert.Contains(t, out, "Showing schedule for Fri 08 Mar 2024 (no game scheduled for today)")
	assert.Contains(t, out, "Total 2  Present 1  Scheduled 1  Departments 2  Attendance 50.0%")
	assert.Contains(t, out, "MEDIA (1)")
	assert.Contains(t, out, "✓ Anna Smith")
	assert.NotContains(t, out, "\033[")
}

func TestRenderDashboard_NoDate(t *testing.T) {
	var buf bytes.Buffer
	newRenderer(&buf, true).dashboard(attendance.BuildDashboard(nil, nil, nil), nil, testDay("2024-03-05"), time.Now())
	assert.Contains(t, buf.String(), "No active game dates scheduled.")
}

func TestRenderOverview_Table(t *testing.T) {
	var buf bytes.Buffer
	renderOverview(newRenderer(&buf, false), testOverview(), attendance.Filter{Department: attendance.AllDepartments}, false)
	out := buf.String()

	assert.Contains(t, out, "Mar 01")
	assert.Contains(t, out, "Mar 08")
	assert.Contains(t, out, "Anna Smith")
	assert.Contains(t, out, "1/2")
	assert.NotContains(t, out, "Cara Lee")

	var annaLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Anna Smith") {
			annaLine = line
		}
	}
	require.NotEmpty(t, annaLine)
	assert.Contains(t, annaLine, "media")
	assert.Contains(t, annaLine, "✓")
	assert.Contains(t, annaLine, "•")
}

func TestRenderOverview_GroupsWithFilters(t *testing.T) {
	var buf bytes.Buffer
	filter := attendance.Filter{Department: model.DepartmentNone, ShowInactive: true}
	renderOverview(newRenderer(&buf, false), testOverview(), filter, true)
	out := buf.String()

	assert.Contains(t, out, "N/A (1)")
	assert.Contains(t, out, "Cara Lee")
	assert.NotContains(t, out, "MEDIA")
}

func TestRenderOverview_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	renderOverview(newRenderer(&buf, false), testOverview(), attendance.Filter{Query: "zed"}, false)
	assert.Contains(t, buf.String(), "No volunteers match the current filters.")
}

func TestRenderVolunteer(t *testing.T) {
	overview := testOverview()
	records := []model.AttendanceRecord{
		{VolunteerID: "v1", DateID: "d1", Status: model.StatusPresent},
		{VolunteerID: "v1", DateID: "d1", Status: model.StatusAbsent},
	}
	detail := attendance.BuildVolunteerDetail(overview.Dates, overview.Volunteers[0].Volunteer, records)

	var buf bytes.Buffer
	r := newRenderer(&buf, false)
	r.volunteer(detail)
	r.duplicates(detail.Duplicates)
	out := buf.String()

	assert.Contains(t, out, "Anna Smith")
	assert.Contains(t, out, "Department: media")
	assert.Contains(t, out, "Present 1  Scheduled 0  Absent 0  Total 1  Attendance 100.0%")
	assert.Contains(t, out, "Fri 01 Mar 2024  ✓ present")
	assert.Contains(t, out, "Fri 08 Mar 2024  - no record")
	assert.Contains(t, out, "1 duplicate attendance record(s) ignored")
}

func TestRenderSchedule(t *testing.T) {
	var buf bytes.Buffer
	report := &services.ScheduleReport{
		From:        testDay("2024-03-01"),
		Until:       testDay("2024-03-31"),
		Occurrences: []time.Time{testDay("2024-03-02"), testDay("2024-03-09")},
		Missing:     []time.Time{testDay("2024-03-09")},
		Unexpected:  []model.GameDate{{ID: "d9", Date: testDay("2024-03-20"), IsActive: true}},
	}
	newRenderer(&buf, false).schedule("FREQ=WEEKLY;BYDAY=SA", report)
	out := buf.String()

	assert.Contains(t, out, "Window: 2024-03-01 to 2024-03-31 (2 expected dates)")
	assert.Contains(t, out, "Missing game dates:\n  Sat 09 Mar 2024")
	assert.Contains(t, out, "Wed 20 Mar 2024  d9")

	buf.Reset()
	newRenderer(&buf, false).schedule("FREQ=WEEKLY", &services.ScheduleReport{})
	assert.Contains(t, buf.String(), "Every expected date has an active game date")
}
