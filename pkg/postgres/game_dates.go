package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

const gameDateColumns = `id::text, date, is_active, created_at, updated_at`

func scanGameDate(row scanner) (model.GameDate, error) {
	var g model.GameDate
	if err := row.Scan(&g.ID, &g.Date, &g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return model.GameDate{}, err
	}
	g.Date = model.Day(g.Date)
	return g, nil
}

// ListGameDates retrieves all game dates ordered by date
func (d *DB) ListGameDates(ctx context.Context) ([]model.GameDate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+gameDateColumns+`
		FROM game_dates
		ORDER BY date, created_at, id
	`)
	if err != nil {
		return nil, db.NewQueryError("list game dates", fmt.Errorf("failed to query game dates: %w", err))
	}
	defer rows.Close()

	var dates []model.GameDate
	for rows.Next() {
		g, err := scanGameDate(rows)
		if err != nil {
			return nil, db.NewQueryError("list game dates", fmt.Errorf("failed to scan game date: %w", err))
		}
		dates = append(dates, g)
	}

	if err := rows.Err(); err != nil {
		return nil, db.NewQueryError("list game dates", fmt.Errorf("error iterating game dates: %w", err))
	}

	return dates, nil
}

// Date lookups over active game dates. Ties on date resolve by creation time, then ID.
const (
	gameDateByDateQuery = `
		SELECT ` + gameDateColumns + `
		FROM game_dates
		WHERE is_active = TRUE AND date = $1::date
		ORDER BY created_at, id
		LIMIT 1`

	nearestFutureQuery = `
		SELECT ` + gameDateColumns + `
		FROM game_dates
		WHERE is_active = TRUE AND date > $1::date
		ORDER BY date ASC, created_at, id
		LIMIT 1`

	nearestPastQuery = `
		SELECT ` + gameDateColumns + `
		FROM game_dates
		WHERE is_active = TRUE AND date < $1::date
		ORDER BY date DESC, created_at, id
		LIMIT 1`
)

func (d *DB) getGameDate(ctx context.Context, op, query string, day time.Time) (model.GameDate, error) {
	row := d.pool.QueryRow(ctx, query, model.Day(day).Format(model.DateLayout))

	g, err := scanGameDate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GameDate{}, db.ErrNotFound
	}
	if err != nil {
		return model.GameDate{}, db.NewQueryError(op, err)
	}
	return g, nil
}

// GetGameDateByDate retrieves the active game date on day
func (d *DB) GetGameDateByDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return d.getGameDate(ctx, "get game date by date", gameDateByDateQuery, day)
}

// GetNearestFutureActiveDate retrieves the earliest active game date after day
func (d *DB) GetNearestFutureActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return d.getGameDate(ctx, "get nearest future active date", nearestFutureQuery, day)
}

// GetNearestPastActiveDate retrieves the latest active game date before day
func (d *DB) GetNearestPastActiveDate(ctx context.Context, day time.Time) (model.GameDate, error) {
	return d.getGameDate(ctx, "get nearest past active date", nearestPastQuery, day)
}
