package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/sheetssql"
)

// ListGameDates retrieves all game dates ordered by date
func (db *DB) ListGameDates(ctx context.Context) ([]model.GameDate, error) {
	rows, err := sheetssql.GetTableAs[GameDateRow](ctx, db.ssql, db.tables.GameDates)
	if err != nil {
		return nil, NewQueryError("list game dates", fmt.Errorf("failed to get game dates: %w", err))
	}

	dates := make([]model.GameDate, 0, len(rows))
	for _, row := range rows {
		d, err := row.ToModel()
		if err != nil {
			return nil, NewQueryError("list game dates", err)
		}
		dates = append(dates, d)
	}

	SortGameDates(dates)
	return dates, nil
}

type dateLookup func([]model.GameDate, time.Time) (model.GameDate, bool)

func (db *DB) findDate(ctx context.Context, op string, day time.Time, lookup dateLookup) (model.GameDate, error) {
	dates, err := db.ListGameDates(ctx)
	if err != nil {
		return model.GameDate{}, fmt.Errorf("%s: %w", op, err)
	}

	d, ok := lookup(dates, day)
	if !ok {
		return model.GameDate{}, ErrNotFound
	}
	return d, nil
}

// GetGameDateByDate retrieves the active game date on day
func (db *DB) GetGameDateByDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return db.findDate(ctx, "get game date by date", day, attendance.FindByDate)
}

// GetNearestFutureActiveDate retrieves the earliest active game date after day
func (db *DB) GetNearestFutureActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return db.findDate(ctx, "get nearest future active date", day, attendance.NearestFuture)
}

// GetNearestPastActiveDate retrieves the latest active game date before day
func (db *DB) GetNearestPastActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return db.findDate(ctx, "get nearest past active date", day, attendance.NearestPast)
}
