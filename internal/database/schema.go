package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ledgers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS asset_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ledger_id INTEGER NOT NULL,
		amount REAL NOT NULL,
		note TEXT,
		period TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (ledger_id) REFERENCES ledgers (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_asset_records_ledger_created
		ON asset_records (ledger_id, created_at)`,
}

// Migrate creates the tables that do not exist yet. It is safe to call on
// every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	return nil
}
