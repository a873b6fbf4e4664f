package db

import (
	"context"
	"fmt"

	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/sheetssql"
)

func (db *DB) loadVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := sheetssql.GetTableAs[VolunteerRow](ctx, db.ssql, db.tables.Volunteers)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteers: %w", err)
	}

	volunteers := make([]model.Volunteer, 0, len(rows))
	for _, row := range rows {
		v, err := row.ToModel()
		if err != nil {
			return nil, err
		}
		volunteers = append(volunteers, v)
	}
	return volunteers, nil
}

// ListVolunteers retrieves volunteers, optionally only active ones, in the requested order
func (db *DB) ListVolunteers(ctx context.Context, filter VolunteerFilter) ([]model.Volunteer, error) {
	all, err := db.loadVolunteers(ctx)
	if err != nil {
		return nil, NewQueryError("list volunteers", err)
	}

	volunteers := all
	if filter.ActiveOnly {
		volunteers = make([]model.Volunteer, 0, len(all))
		for _, v := range all {
			if v.IsActive {
				volunteers = append(volunteers, v)
			}
		}
	}

	SortVolunteers(volunteers, filter.Order)
	return volunteers, nil
}

// GetVolunteer retrieves a single volunteer by ID
func (db *DB) GetVolunteer(ctx context.Context, id string) (model.Volunteer, error) {
	all, err := db.loadVolunteers(ctx)
	if err != nil {
		return model.Volunteer{}, NewQueryError("get volunteer", err)
	}

	for _, v := range all {
		if v.ID == id {
			return v, nil
		}
	}
	return model.Volunteer{}, ErrNotFound
}
