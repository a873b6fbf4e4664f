package services

import (
	"context"
	"sync"
	"time"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

// mockStore implements every store interface in this package over in-memory slices
type mockStore struct {
	dates      []model.GameDate
	volunteers []model.Volunteer
	records    []model.AttendanceRecord

	listDatesErr      error
	listVolunteersErr error
	listRecordsErr    error
	lookupErr         error

	mu              sync.Mutex
	calls           []string
	volunteerFilter db.VolunteerFilter
	recordFilter    db.RecordFilter
}

func (m *mockStore) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockStore) called(call string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (m *mockStore) ListGameDates(ctx context.Context) ([]model.GameDate, error) {
	m.record("ListGameDates")
	if m.listDatesErr != nil {
		return nil, m.listDatesErr
	}
	return m.dates, nil
}

func (m *mockStore) ListVolunteers(ctx context.Context, filter db.VolunteerFilter) ([]model.Volunteer, error) {
	m.record("ListVolunteers")
	m.mu.Lock()
	m.volunteerFilter = filter
	m.mu.Unlock()
	if m.listVolunteersErr != nil {
		return nil, m.listVolunteersErr
	}
	var out []model.Volunteer
	for _, v := range m.volunteers {
		if filter.ActiveOnly && !v.IsActive {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockStore) ListAttendanceRecords(ctx context.Context, filter db.RecordFilter) ([]model.AttendanceRecord, error) {
	m.record("ListAttendanceRecords")
	m.mu.Lock()
	m.recordFilter = filter
	m.mu.Unlock()
	if m.listRecordsErr != nil {
		return nil, m.listRecordsErr
	}
	var out []model.AttendanceRecord
	for _, r := range m.records {
		if filter.DateID != "" && r.DateID != filter.DateID {
			continue
		}
		if filter.VolunteerID != "" && r.VolunteerID != filter.VolunteerID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockStore) GetVolunteer(ctx context.Context, id string) (model.Volunteer, error) {
	m.record("GetVolunteer")
	for _, v := range m.volunteers {
		if v.ID == id {
			return v, nil
		}
	}
	return model.Volunteer{}, db.ErrNotFound
}

func (m *mockStore) lookup(call string, day time.Time, find func([]model.GameDate, time.Time) (model.GameDate, bool)) (model.GameDate, error) {
	m.record(call)
	if m.lookupErr != nil {
		return model.GameDate{}, m.lookupErr
	}
	if d, ok := find(m.dates, day); ok {
		return d, nil
	}
	return model.GameDate{}, db.ErrNotFound
}

func (m *mockStore) GetGameDateByDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return m.lookup("GetGameDateByDate", day, attendance.FindByDate)
}

func (m *mockStore) GetNearestFutureActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return m.lookup("GetNearestFutureActiveDate", day, attendance.NearestFuture)
}

func (m *mockStore) GetNearestPastActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return m.lookup("GetNearestPastActiveDate", day, attendance.NearestPast)
}

func day(s string) time.Time {
	d, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func gameDate(id, date string, active bool) model.GameDate {
	return model.GameDate{ID: id, Date: day(date), IsActive: active}
}

func volunteer(id, first, last string, dept model.Department, active bool) model.Volunteer {
	return model.Volunteer{ID: id, FirstName: first, LastName: last, Department: dept, IsActive: active}
}

func record(volID, dateID string, status model.AttendanceStatus) model.AttendanceRecord {
	return model.AttendanceRecord{VolunteerID: volID, DateID: dateID, Status: status}
}
