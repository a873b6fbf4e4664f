package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

const volunteerColumns = `id::text, first_name, last_name, department::text, is_active, created_at, updated_at`

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanVolunteer(row scanner) (model.Volunteer, error) {
	var v model.Volunteer
	var department *string
	if err := row.Scan(&v.ID, &v.FirstName, &v.LastName, &department, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return model.Volunteer{}, err
	}
	if department != nil {
		dept, err := model.ParseDepartment(*department)
		if err != nil {
			return model.Volunteer{}, fmt.Errorf("volunteer %s: %w", v.ID, err)
		}
		v.Department = dept
	}
	return v, nil
}

// volunteersQuery builds the ListVolunteers statement. Enum columns sort by
// declaration order and ascending order puts NULL last.
func volunteersQuery(filter db.VolunteerFilter) string {
	query := `SELECT ` + volunteerColumns + ` FROM volunteers`
	if filter.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	switch filter.Order {
	case db.OrderByFirstName:
		query += ` ORDER BY first_name, id`
	default:
		query += ` ORDER BY department ASC NULLS LAST, last_name, id`
	}
	return query
}

// ListVolunteers retrieves volunteers, optionally only active ones, in the requested order
func (d *DB) ListVolunteers(ctx context.Context, filter db.VolunteerFilter) ([]model.Volunteer, error) {
	rows, err := d.pool.Query(ctx, volunteersQuery(filter))
	if err != nil {
		return nil, db.NewQueryError("list volunteers", fmt.Errorf("failed to query volunteers: %w", err))
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, db.NewQueryError("list volunteers", fmt.Errorf("failed to scan volunteer: %w", err))
		}
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, db.NewQueryError("list volunteers", fmt.Errorf("error iterating volunteers: %w", err))
	}

	return volunteers, nil
}

// GetVolunteer retrieves a single volunteer by ID
func (d *DB) GetVolunteer(ctx context.Context, id string) (model.Volunteer, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1::uuid`, id)

	v, err := scanVolunteer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Volunteer{}, db.ErrNotFound
	}
	if err != nil {
		return model.Volunteer{}, db.NewQueryError("get volunteer", err)
	}
	return v, nil
}
