package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

const (
	annaID = "7f1c7a9e-3b9e-4c1e-9a57-0d6f0b1e2a01"
	benID  = "7f1c7a9e-3b9e-4c1e-9a57-0d6f0b1e2a02"
	caraID = "7f1c7a9e-3b9e-4c1e-9a57-0d6f0b1e2a03"
)

// fakeStore serves fixed data and can be made to fail
type fakeStore struct {
	dates      []model.GameDate
	volunteers []model.Volunteer
	records    []model.AttendanceRecord
	err        error
	pingErr    error
}

func (f *fakeStore) ListGameDates(ctx context.Context) ([]model.GameDate, error) {
	return f.dates, f.err
}

func (f *fakeStore) ListVolunteers(ctx context.Context, filter db.VolunteerFilter) ([]model.Volunteer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Volunteer
	for _, v := range f.volunteers {
		if !filter.ActiveOnly || v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAttendanceRecords(ctx context.Context, filter db.RecordFilter) ([]model.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.AttendanceRecord
	for _, r := range f.records {
		if (filter.DateID == "" || r.DateID == filter.DateID) && (filter.VolunteerID == "" || r.VolunteerID == filter.VolunteerID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetVolunteer(ctx context.Context, id string) (model.Volunteer, error) {
	for _, v := range f.volunteers {
		if v.ID == id {
			return v, nil
		}
	}
	return model.Volunteer{}, db.ErrNotFound
}

func (f *fakeStore) find(day time.Time, lookup func([]model.GameDate, time.Time) (model.GameDate, bool)) (model.GameDate, error) {
	if f.err != nil {
		return model.GameDate{}, f.err
	}
	if d, ok := lookup(f.dates, day); ok {
		return d, nil
	}
	return model.GameDate{}, db.ErrNotFound
}

func (f *fakeStore) GetGameDateByDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return f.find(day, attendance.FindByDate)
}

func (f *fakeStore) GetNearestFutureActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return f.find(day, attendance.NearestFuture)
}

func (f *fakeStore) GetNearestPastActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return f.find(day, attendance.NearestPast)
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func newFakeStore() *fakeStore {
	march := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	return &fakeStore{
		dates: []model.GameDate{
			{ID: "d1", Date: march(1), IsActive: true},
			{ID: "d2", Date: march(8), IsActive: true},
		},
		volunteers: []model.Volunteer{
			{ID: annaID, FirstName: "Anna", LastName: "Smith", Department: model.DepartmentMedia, IsActive: true},
			{ID: benID, FirstName: "Ben", LastName: "Jones", Department: model.DepartmentHost, IsActive: true},
			{ID: caraID, FirstName: "Cara", LastName: "Lee", IsActive: false},
		},
		records: []model.AttendanceRecord{
			{VolunteerID: annaID, DateID: "d1", Status: model.StatusPresent},
			{VolunteerID: annaID, DateID: "d2", Status: model.StatusScheduled},
			{VolunteerID: benID, DateID: "d2", Status: model.StatusPresent},
			{VolunteerID: caraID, DateID: "d1", Status: model.StatusAbsent},
		},
	}
}

func newTestApp(store *fakeStore) *fiber.App {
	now := func() time.Time { return time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC) }
	app := NewApp(zap.NewNop(), 5*time.Second, RouteConfig{
		Health:     NewHealthHandler("attendance", "test", "postgres", store),
		Attendance: NewAttendanceHandler(store, zap.NewNop(), now, time.UTC),
	})
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })
	return app
}

func doGet(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	var live map[string]any
	assert.Equal(t, http.StatusOK, doGet(t, app, "/health/live", &live))
	assert.Equal(t, "alive", live["status"])

	var ready map[string]any
	assert.Equal(t, http.StatusOK, doGet(t, app, "/health/ready", &ready))
	assert.Equal(t, "ready", ready["status"])

	store.pingErr = errors.New("connection refused")
	var unavailable errorBody
	assert.Equal(t, http.StatusServiceUnavailable, doGet(t, app, "/health/ready", &unavailable))
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", unavailable.Error.Code)
	assert.Equal(t, "connection refused", unavailable.Error.Details["postgres"])
}

func TestDashboard(t *testing.T) {
	app := newTestApp(newFakeStore())

	var resp dashboardResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/dashboard", &resp))

	assert.Equal(t, "2024-03-08", resp.Today)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "d2", resp.Date.ID)
	assert.False(t, resp.ShowingOtherDay)
	assert.Equal(t, 2, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Present)
	assert.InDelta(t, 50.0, resp.Stats.AttendanceRate, 0.001)

	require.Len(t, resp.Departments, 2)
	assert.Equal(t, model.DepartmentMedia, resp.Departments[0].Department)
	assert.Equal(t, "Anna Smith", resp.Departments[0].Members[0].FullName)
	assert.Equal(t, model.StatusScheduled, resp.Departments[0].Members[0].Status)
}

func TestDashboard_SearchAndOtherDay(t *testing.T) {
	app := newTestApp(newFakeStore())

	var resp dashboardResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/dashboard?today=2024-03-05&search=BEN", &resp))

	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-03-08", resp.Date.Date)
	assert.True(t, resp.ShowingOtherDay)
	require.Len(t, resp.Departments, 1)
	assert.Equal(t, model.DepartmentHost, resp.Departments[0].Department)
	// stats are not narrowed by the search
	assert.Equal(t, 2, resp.Stats.Total)
}

func TestDashboard_NoActiveDate(t *testing.T) {
	store := newFakeStore()
	store.dates = nil
	app := newTestApp(store)

	var resp dashboardResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/dashboard", &resp))
	assert.Nil(t, resp.Date)
	assert.Empty(t, resp.Departments)
	assert.Equal(t, 0, resp.Stats.Total)
}

func TestOverview_Table(t *testing.T) {
	app := newTestApp(newFakeStore())

	var resp overviewResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/overview", &resp))

	assert.Len(t, resp.Dates, 2)
	assert.Equal(t, []model.Department{model.DepartmentMedia, model.DepartmentHost, model.DepartmentNone}, resp.Departments)
	// inactive Cara is hidden by default
	require.Len(t, resp.Volunteers, 2)
	assert.Equal(t, annaID, resp.Volunteers[0].Volunteer.ID)
	assert.Equal(t, model.StatusPresent, *resp.Volunteers[0].Statuses["d1"])
	assert.Equal(t, 2, resp.Volunteers[0].Summary.Total)

	var inactive overviewResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/overview?show_inactive=true&department=n/a", &inactive))
	require.Len(t, inactive.Volunteers, 1)
	assert.Equal(t, caraID, inactive.Volunteers[0].Volunteer.ID)
	assert.Nil(t, inactive.Volunteers[0].Statuses["d2"])
}

func TestOverview_DepartmentView(t *testing.T) {
	app := newTestApp(newFakeStore())

	var resp overviewResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/overview?view=department&search=smith", &resp))

	assert.Empty(t, resp.Volunteers)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, model.DepartmentMedia, resp.Groups[0].Department)
	assert.Equal(t, "Anna Smith", resp.Groups[0].Members[0].Volunteer.FullName)
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(newFakeStore())

	for _, target := range []string{
		"/api/dashboard?today=08-03-2024",
		"/api/overview?department=juggling",
		"/api/overview?show_inactive=maybe",
		"/api/overview?view=grid",
		"/api/volunteers/not-a-uuid",
	} {
		t.Run(target, func(t *testing.T) {
			var body errorBody
			assert.Equal(t, http.StatusBadRequest, doGet(t, app, target, &body))
			assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		})
	}
}

func TestVolunteer(t *testing.T) {
	app := newTestApp(newFakeStore())

	var resp volunteerDetailResponse
	require.Equal(t, http.StatusOK, doGet(t, app, "/api/volunteers/"+annaID, &resp))
	assert.Equal(t, "Anna Smith", resp.Volunteer.FullName)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "2024-03-01", resp.History[0].Date.Date)
	assert.Equal(t, model.StatusPresent, *resp.History[0].Status)
	assert.Equal(t, 1, resp.Summary.Scheduled)

	var body errorBody
	assert.Equal(t, http.StatusNotFound, doGet(t, app, "/api/volunteers/00000000-0000-0000-0000-000000000000", &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "volunteer not found", body.Error.Message)
}

func TestErrorMapping(t *testing.T) {
	store := newFakeStore()
	store.err = db.NewQueryError("list volunteers", errors.New("timeout"))
	app := newTestApp(store)

	var body errorBody
	assert.Equal(t, http.StatusBadGateway, doGet(t, app, "/api/overview", &body))
	assert.Equal(t, "QUERY_FAILED", body.Error.Code)

	assert.Equal(t, http.StatusNotFound, doGet(t, app, "/api/missing", &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	assert.Equal(t, http.StatusInternalServerError, doGet(t, app, "/panic", &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.Equal(t, "NOT_FOUND", ToDomainError(db.ErrNotFound).Code)
	assert.Equal(t, "INTERNAL_ERROR", ToDomainError(errors.New("x")).Code)

	wrapped := NewValidationError("bad", nil)
	assert.Same(t, wrapped, ToDomainError(wrapped))
}
