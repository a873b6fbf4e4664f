package sheetssql

import (
	"context"
	"fmt"
)

// SheetsClient defines the read operations SheetsSQL needs from a sheets client
type SheetsClient interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
}

// Column defines a column with name and type
type Column struct {
	Name string
	Type string // e.g., "text", "date", "bool", "uuid", "timestamp"
}

// TableSchema defines the structure of a table
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema defines the database schema
type Schema struct {
	Tables []TableSchema
}

// Table returns the schema of the named table
func (s *Schema) Table(name string) (TableSchema, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSchema{}, false
}

// DB represents a read-only connection to a Google Sheets "database"
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema
}

// NewDB creates a new Sheets SQL database connection and verifies the schema.
// Missing tabs are an error: the spreadsheet is never written to.
func NewDB(ctx context.Context, client SheetsClient, spreadsheetID string, schema *Schema) (*DB, error) {
	db := &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}

	if err := db.verifySchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}

	return db, nil
}

// SpreadsheetID returns the database spreadsheet ID
func (db *DB) SpreadsheetID() string {
	return db.spreadsheetID
}

// Ping checks the spreadsheet is reachable
func (db *DB) Ping(ctx context.Context) error {
	if _, err := db.client.SheetTitles(ctx, db.spreadsheetID); err != nil {
		return fmt.Errorf("failed to reach spreadsheet: %w", err)
	}
	return nil
}
