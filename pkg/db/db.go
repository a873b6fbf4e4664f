package db

import (
	"context"
	"fmt"

	"github.com/gamenight/attendance/pkg/sheetssql"
)

// Tables names the spreadsheet tabs holding each table
type Tables struct {
	Volunteers string
	GameDates  string
	Statuses   string
}

// DefaultTables uses the Postgres table names as tab names
var DefaultTables = Tables{
	Volunteers: "volunteers",
	GameDates:  "game_dates",
	Statuses:   "volunteer_date_status",
}

// Schema returns the SheetsSQL schema for the given tab names
func Schema(tables Tables) (*sheetssql.Schema, error) {
	volunteers, err := sheetssql.NamedTable(tables.Volunteers, VolunteerRow{})
	if err != nil {
		return nil, err
	}
	gameDates, err := sheetssql.NamedTable(tables.GameDates, GameDateRow{})
	if err != nil {
		return nil, err
	}
	statuses, err := sheetssql.NamedTable(tables.Statuses, VolunteerDateStatusRow{})
	if err != nil {
		return nil, err
	}
	return &sheetssql.Schema{Tables: []sheetssql.TableSchema{volunteers, gameDates, statuses}}, nil
}

// DB provides database operations using SheetsSQL
type DB struct {
	ssql   *sheetssql.DB
	tables Tables
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB, tables Tables) *DB {
	return &DB{
		ssql:   ssql,
		tables: tables,
	}
}

// Open verifies the spreadsheet schema and returns a ready database
func Open(ctx context.Context, client sheetssql.SheetsClient, spreadsheetID string, tables Tables) (*DB, error) {
	schema, err := Schema(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	ssql, err := sheetssql.NewDB(ctx, client, spreadsheetID, schema)
	if err != nil {
		return nil, NewQueryError("open spreadsheet", err)
	}

	return NewDB(ssql, tables), nil
}

// Ping checks the spreadsheet is reachable
func (db *DB) Ping(ctx context.Context) error {
	return NewQueryError("ping", db.ssql.Ping(ctx))
}

// Close is a no-op; the Sheets client holds no pooled connections
func (db *DB) Close() {}
