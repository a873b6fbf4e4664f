package db

import (
	"context"
	"fmt"

	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/sheetssql"
)

// ListAttendanceRecords retrieves attendance records matching filter, in row order
func (db *DB) ListAttendanceRecords(ctx context.Context, filter RecordFilter) ([]model.AttendanceRecord, error) {
	rows, err := sheetssql.GetTableAs[VolunteerDateStatusRow](ctx, db.ssql, db.tables.Statuses)
	if err != nil {
		return nil, NewQueryError("list attendance records", fmt.Errorf("failed to get attendance records: %w", err))
	}

	records := make([]model.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		if filter.DateID != "" && row.DateID != filter.DateID {
			continue
		}
		if filter.VolunteerID != "" && row.VolunteerID != filter.VolunteerID {
			continue
		}
		r, err := row.ToModel()
		if err != nil {
			return nil, NewQueryError("list attendance records", err)
		}
		records = append(records, r)
	}

	return records, nil
}
