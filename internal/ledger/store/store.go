package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanLedger expects the columns id, name, description, created_at.
func scanLedger(s scanner) (*ledger.Ledger, error) {
	var l ledger.Ledger

	var desc sql.NullString

	if err := s.Scan(&l.ID, &l.Name, &desc, &l.CreatedAt); err != nil {
		return nil, err
	}

	l.Description = desc.String

	return &l, nil
}

// scanRecord expects the columns id, ledger_id, amount, note, period, created_at.
func scanRecord(s scanner) (*ledger.Record, error) {
	var r ledger.Record

	var note, period sql.NullString

	if err := s.Scan(&r.ID, &r.LedgerID, &r.Amount, &note, &period, &r.CreatedAt); err != nil {
		return nil, err
	}

	r.Note = note.String
	r.Period = period.String

	return &r, nil
}

const (
	selectLedgerColumns = `id, name, description, created_at`
	selectRecordColumns = `ar.id, ar.ledger_id, ar.amount, ar.note, ar.period, ar.created_at`
)

// constraintError translates SQLite constraint failures into ledger.ErrConflict
// and keeps the store's reason in the message.
func constraintError(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %s", op, ledger.ErrConflict, sqliteErr.Error())
	}

	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) CreateLedger(ctx context.Context, l *ledger.Ledger) error {
	query := `
		INSERT INTO ledgers (name, description, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, l.Name, l.Description, l.CreatedAt.UTC()).Scan(&l.ID)
	if err != nil {
		return constraintError("creating ledger", err)
	}

	return nil
}

func (s *Store) GetLedger(ctx context.Context, id int64) (*ledger.Ledger, error) {
	query := `SELECT ` + selectLedgerColumns + ` FROM ledgers WHERE id = ?`

	l, err := scanLedger(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ledger %d: %w", id, ledger.ErrNotFound)
		}

		return nil, fmt.Errorf("getting ledger: %w", err)
	}

	return l, nil
}

func (s *Store) ListLedgers(ctx context.Context) ([]*ledger.Ledger, error) {
	query := `SELECT ` + selectLedgerColumns + ` FROM ledgers ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []*ledger.Ledger

	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger: %w", err)
		}

		ledgers = append(ledgers, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return ledgers, nil
}

// DeleteLedger removes the ledger's records and then the ledger in a single
// database transaction.
func (s *Store) DeleteLedger(ctx context.Context, id int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM asset_records WHERE ledger_id = ?`, id); err != nil {
		return fmt.Errorf("deleting ledger records: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM ledgers WHERE id = ?`, id); err != nil {
		return constraintError("deleting ledger", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// AddRecord checks that the owning ledger exists and inserts the record in
// the same database transaction.
func (s *Store) AddRecord(ctx context.Context, r *ledger.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var exists int

	err = dbTx.QueryRowContext(ctx, `SELECT 1 FROM ledgers WHERE id = ?`, r.LedgerID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("ledger %d: %w", r.LedgerID, ledger.ErrNotFound)
		}

		return fmt.Errorf("checking ledger: %w", err)
	}

	query := `
		INSERT INTO asset_records (ledger_id, amount, note, period, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	err = dbTx.QueryRowContext(ctx, query,
		r.LedgerID,
		r.Amount,
		r.Note,
		r.Period,
		r.CreatedAt.UTC(),
	).Scan(&r.ID)
	if err != nil {
		return constraintError("creating record", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListRecords(ctx context.Context) ([]*ledger.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM asset_records ar
		ORDER BY ar.created_at DESC, ar.id DESC`

	return s.queryRecords(ctx, "listing records", query)
}

func (s *Store) ListHistory(ctx context.Context, ledgerID int64) ([]*ledger.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM asset_records ar
		WHERE ar.ledger_id = ?
		ORDER BY ar.created_at DESC, ar.id DESC`

	return s.queryRecords(ctx, "listing history", query, ledgerID)
}

// LatestRecords joins every record against the per-ledger maximum created_at
// and, among records sharing that timestamp, keeps the highest id.
func (s *Store) LatestRecords(ctx context.Context) ([]*ledger.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM asset_records ar
		INNER JOIN (
			SELECT r.ledger_id, MAX(r.id) AS id
			FROM asset_records r
			INNER JOIN (
				SELECT ledger_id, MAX(created_at) AS max_created
				FROM asset_records
				GROUP BY ledger_id
			) m ON r.ledger_id = m.ledger_id AND r.created_at = m.max_created
			GROUP BY r.ledger_id
		) latest ON ar.id = latest.id
		ORDER BY ar.ledger_id ASC`

	return s.queryRecords(ctx, "listing latest records", query)
}

func (s *Store) queryRecords(ctx context.Context, op, query string, args ...any) ([]*ledger.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []*ledger.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	return records, nil
}
