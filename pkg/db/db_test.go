package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenight/attendance/pkg/core/model"
)

// fakeSheetsClient serves whole tabs, answering header-range reads with the first two rows
type fakeSheetsClient struct {
	tabs map[string][][]interface{}
	err  error
}

func (f *fakeSheetsClient) GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	tab, rng, hasRange := strings.Cut(sheetRange, "!")
	values, ok := f.tabs[tab]
	if !ok {
		return nil, errors.New("unknown tab " + tab)
	}
	if hasRange && rng == "A1:ZZ2" && len(values) > 2 {
		return values[:2], nil
	}
	return values, nil
}

func (f *fakeSheetsClient) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	titles := make([]string, 0, len(f.tabs))
	for name := range f.tabs {
		titles = append(titles, name)
	}
	return titles, nil
}

func table(row interface{}, data ...[]interface{}) [][]interface{} {
	var headers, types []interface{}
	switch row.(type) {
	case VolunteerRow:
		headers = []interface{}{"id", "first_name", "last_name", "department", "is_active", "created_at", "updated_at"}
		types = []interface{}{"uuid", "text", "text", "department", "bool", "timestamp", "timestamp"}
	case GameDateRow:
		headers = []interface{}{"id", "date", "is_active", "created_at", "updated_at"}
		types = []interface{}{"uuid", "date", "bool", "timestamp", "timestamp"}
	case VolunteerDateStatusRow:
		headers = []interface{}{"volunteer_id", "date_id", "status", "created_at", "updated_at"}
		types = []interface{}{"uuid", "uuid", "attendance_status", "timestamp", "timestamp"}
	}
	return append([][]interface{}{headers, types}, data...)
}

func newTestDB(t *testing.T) (*DB, *fakeSheetsClient) {
	client := &fakeSheetsClient{tabs: map[string][][]interface{}{
		"volunteers": table(VolunteerRow{},
			[]interface{}{"v1", "Zoe", "Adams", "media", "TRUE", "2024-01-01T10:00:00Z", ""},
			[]interface{}{"v2", "Anna", "Smith", "", "TRUE"},
			[]interface{}{"v3", "Ben", "Jones", "caster", "FALSE"},
			[]interface{}{"v4", "Cara", "Brown", "media", "TRUE"},
			[]interface{}{"v5", "Dan", "Kay", "n/a", "TRUE"},
		),
		"game_dates": table(GameDateRow{},
			[]interface{}{"d3", "2024-03-15", "TRUE"},
			[]interface{}{"d1", "2024-03-01", "TRUE"},
			[]interface{}{"d2", "2024-03-08", "FALSE"},
		),
		"volunteer_date_status": table(VolunteerDateStatusRow{},
			[]interface{}{"v1", "d1", "present"},
			[]interface{}{"v2", "d1", "scheduled"},
			[]interface{}{"v1", "d3", "absent"},
		),
	}}

	db, err := Open(context.Background(), client, "sheet-id", DefaultTables)
	require.NoError(t, err)
	return db, client
}

func volunteerIDs(vols []model.Volunteer) []string {
	ids := make([]string, 0, len(vols))
	for _, v := range vols {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestDB_ListVolunteers(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	t.Run("by department, no department last", func(t *testing.T) {
		vols, err := db.ListVolunteers(ctx, VolunteerFilter{Order: OrderByDepartment})
		require.NoError(t, err)
		assert.Equal(t, []string{"v3", "v1", "v4", "v5", "v2"}, volunteerIDs(vols))
		assert.Equal(t, model.Department(""), vols[4].Department)
	})

	t.Run("active only by first name", func(t *testing.T) {
		vols, err := db.ListVolunteers(ctx, VolunteerFilter{ActiveOnly: true, Order: OrderByFirstName})
		require.NoError(t, err)
		assert.Equal(t, []string{"v2", "v4", "v5", "v1"}, volunteerIDs(vols))
	})

	t.Run("timestamps parsed", func(t *testing.T) {
		v, err := db.GetVolunteer(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, 2024, v.CreatedAt.Year())
		assert.True(t, v.UpdatedAt.IsZero())
	})
}

func TestDB_GetVolunteer_NotFound(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.GetVolunteer(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsQueryError(err))
}

func TestDB_ListGameDates_Ordered(t *testing.T) {
	db, _ := newTestDB(t)

	dates, err := db.ListGameDates(context.Background())
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, "d1", dates[0].ID)
	assert.Equal(t, "d2", dates[1].ID)
	assert.Equal(t, "d3", dates[2].ID)
	assert.False(t, dates[1].IsActive)
}

func TestDB_DateLookups(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	day := func(s string) time.Time {
		d, err := model.ParseDay(s)
		require.NoError(t, err)
		return d
	}

	got, err := db.GetGameDateByDate(ctx, day("2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, "d3", got.ID)

	_, err = db.GetGameDateByDate(ctx, day("2024-03-08"))
	assert.True(t, IsNotFound(err), "inactive date is not returned")

	got, err = db.GetNearestFutureActiveDate(ctx, day("2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "d3", got.ID, "skips inactive d2")

	got, err = db.GetNearestPastActiveDate(ctx, day("2024-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)

	_, err = db.GetNearestFutureActiveDate(ctx, day("2024-04-01"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDB_ListAttendanceRecords(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	all, err := db.ListAttendanceRecords(ctx, RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onDate, err := db.ListAttendanceRecords(ctx, RecordFilter{DateID: "d1"})
	require.NoError(t, err)
	require.Len(t, onDate, 2)
	assert.Equal(t, model.StatusPresent, onDate[0].Status)

	forVolunteer, err := db.ListAttendanceRecords(ctx, RecordFilter{VolunteerID: "v1"})
	require.NoError(t, err)
	assert.Len(t, forVolunteer, 2)
}

func TestDB_QueryErrors(t *testing.T) {
	db, client := newTestDB(t)
	ctx := context.Background()

	client.err = errors.New("network down")

	_, err := db.ListGameDates(ctx)
	assert.True(t, IsQueryError(err))
	assert.ErrorContains(t, err, "network down")

	_, err = db.ListVolunteers(ctx, VolunteerFilter{})
	assert.True(t, IsQueryError(err))

	_, err = db.GetNearestPastActiveDate(ctx, time.Now())
	assert.True(t, IsQueryError(err))
	assert.False(t, IsNotFound(err))
}

func TestDB_InvalidRows(t *testing.T) {
	db, client := newTestDB(t)
	client.tabs["volunteer_date_status"] = table(VolunteerDateStatusRow{},
		[]interface{}{"v1", "d1", "late"},
	)

	_, err := db.ListAttendanceRecords(context.Background(), RecordFilter{})
	require.Error(t, err)
	assert.True(t, IsQueryError(err))
	assert.Contains(t, err.Error(), `unknown attendance status "late"`)
}

func TestOpen_SchemaMismatch(t *testing.T) {
	client := &fakeSheetsClient{tabs: map[string][][]interface{}{
		"volunteers":            table(VolunteerRow{}),
		"game_dates":            {{"id", "date"}, {"uuid", "date"}},
		"volunteer_date_status": table(VolunteerDateStatusRow{}),
	}}

	_, err := Open(context.Background(), client, "sheet-id", DefaultTables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game_dates")
}
