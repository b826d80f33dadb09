package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

const busyTimeoutMillis = 5000

// New opens the store file at path, creating it if needed, and makes sure the
// schema exists. Failures to reach the file are reported as
// ledger.ErrStoreUnavailable.
func New(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ledger.ErrStoreUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pinging database: %v", ledger.ErrStoreUnavailable, err)
	}

	// SQLite locks the whole database on write; a single connection keeps
	// every operation serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", fmt.Sprint(busyTimeoutMillis))

	return "file:" + path + "?" + q.Encode()
}
