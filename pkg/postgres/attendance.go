package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

// recordsQuery builds the ListAttendanceRecords statement and its arguments.
// Rows come back in insertion order so duplicate handling keeps the earliest record.
func recordsQuery(filter db.RecordFilter) (string, []any) {
	var where []string
	var args []any

	if filter.DateID != "" {
		args = append(args, filter.DateID)
		where = append(where, fmt.Sprintf("date_id = $%d::uuid", len(args)))
	}
	if filter.VolunteerID != "" {
		args = append(args, filter.VolunteerID)
		where = append(where, fmt.Sprintf("volunteer_id = $%d::uuid", len(args)))
	}

	query := `SELECT volunteer_id::text, date_id::text, status::text, created_at, updated_at FROM volunteer_date_status`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, ctid`

	return query, args
}

// ListAttendanceRecords retrieves attendance records matching filter
func (d *DB) ListAttendanceRecords(ctx context.Context, filter db.RecordFilter) ([]model.AttendanceRecord, error) {
	query, args := recordsQuery(filter)

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.NewQueryError("list attendance records", fmt.Errorf("failed to query attendance records: %w", err))
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var r model.AttendanceRecord
		var status string
		if err := rows.Scan(&r.VolunteerID, &r.DateID, &status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, db.NewQueryError("list attendance records", fmt.Errorf("failed to scan attendance record: %w", err))
		}
		r.Status, err = model.ParseAttendanceStatus(status)
		if err != nil {
			return nil, db.NewQueryError("list attendance records", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, db.NewQueryError("list attendance records", fmt.Errorf("error iterating attendance records: %w", err))
	}

	return records, nil
}
