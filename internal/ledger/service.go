package ledger

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateLedger(ctx context.Context, l *Ledger) error
	GetLedger(ctx context.Context, id int64) (*Ledger, error)
	ListLedgers(ctx context.Context) ([]*Ledger, error)
	DeleteLedger(ctx context.Context, id int64) error

	AddRecord(ctx context.Context, r *Record) error
	ListRecords(ctx context.Context) ([]*Record, error)
	ListHistory(ctx context.Context, ledgerID int64) ([]*Record, error)
	LatestRecords(ctx context.Context) ([]*Record, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateLedgerParams struct {
	Name        string
	Description string
	CreatedAt   time.Time // Zero means now
}

type AddRecordParams struct {
	LedgerID  int64
	Amount    float64
	Note      string
	Period    string
	CreatedAt time.Time // Zero means now
}

func (s *Service) CreateLedger(ctx context.Context, params CreateLedgerParams) (*Ledger, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: ledger name cannot be empty", ErrValidation)
	}

	l := &Ledger{
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		CreatedAt:   stamp(params.CreatedAt),
	}
	if err := s.repo.CreateLedger(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) GetLedger(ctx context.Context, id int64) (*Ledger, error) {
	return s.repo.GetLedger(ctx, id)
}

// ListLedgers returns every ledger ordered by id.
func (s *Service) ListLedgers(ctx context.Context) ([]*Ledger, error) {
	return s.repo.ListLedgers(ctx)
}

// DeleteLedger removes a ledger together with all of its records.
// Deleting an id that does not exist is not an error.
func (s *Service) DeleteLedger(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid ledger id %d", ErrValidation, id)
	}

	return s.repo.DeleteLedger(ctx, id)
}

func (s *Service) AddRecord(ctx context.Context, params AddRecordParams) (*Record, error) {
	if params.LedgerID <= 0 {
		return nil, fmt.Errorf("%w: no ledger selected", ErrValidation)
	}

	if math.IsNaN(params.Amount) || math.IsInf(params.Amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a finite number", ErrValidation)
	}

	r := &Record{
		LedgerID:  params.LedgerID,
		Amount:    params.Amount,
		Note:      strings.TrimSpace(params.Note),
		Period:    strings.TrimSpace(params.Period),
		CreatedAt: stamp(params.CreatedAt),
	}
	if err := s.repo.AddRecord(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// ListRecords returns the records of every ledger, newest first.
func (s *Service) ListRecords(ctx context.Context) ([]*Record, error) {
	return s.repo.ListRecords(ctx)
}

// ListHistory returns the records of one ledger, newest first.
func (s *Service) ListHistory(ctx context.Context, ledgerID int64) ([]*Record, error) {
	return s.repo.ListHistory(ctx, ledgerID)
}

// LatestRecords returns, for each ledger with at least one record, the record
// with the greatest CreatedAt. Ties go to the highest id.
func (s *Service) LatestRecords(ctx context.Context) ([]*Record, error) {
	return s.repo.LatestRecords(ctx)
}

// stamp defaults a zero time to now and normalizes to UTC so that stored
// timestamps sort chronologically.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}

	return t.UTC()
}
