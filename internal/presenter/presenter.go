// Package presenter turns user commands into core calls and core results into
// view models. Every adapter (TUI, HTTP, CLI) talks to the core through it.
package presenter

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type Presenter struct {
	svc   *ledger.Service
	money report.Money
	trend report.TrendOptions
}

func New(svc *ledger.Service, money report.Money, trend report.TrendOptions) *Presenter {
	if trend.MaxPoints <= 0 {
		trend.MaxPoints = report.DefaultTrendPoints
	}

	return &Presenter{svc: svc, money: money, trend: trend}
}

// Money is the display currency formatter adapters render amounts with.
func (p *Presenter) Money() report.Money {
	return p.money
}

// TrendDefaults returns the configured trend options.
func (p *Presenter) TrendDefaults() report.TrendOptions {
	return p.trend
}

func (p *Presenter) CreateLedger(ctx context.Context, name, description string) (*ledger.Ledger, error) {
	return p.svc.CreateLedger(ctx, ledger.CreateLedgerParams{Name: name, Description: description})
}

func (p *Presenter) DeleteLedger(ctx context.Context, id int64) error {
	return p.svc.DeleteLedger(ctx, id)
}

// RecordInput is a record as typed by the user. Amount and Date are raw text.
type RecordInput struct {
	LedgerID int64
	Amount   string
	Note     string
	Period   string
	Date     string // Optional, see ParseDate
}

func (p *Presenter) AddRecord(ctx context.Context, in RecordInput) (*ledger.Record, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	at, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	return p.svc.AddRecord(ctx, ledger.AddRecordParams{
		LedgerID:  in.LedgerID,
		Amount:    amount,
		Note:      in.Note,
		Period:    in.Period,
		CreatedAt: at,
	})
}

func (p *Presenter) Ledgers(ctx context.Context) ([]*ledger.Ledger, error) {
	return p.svc.ListLedgers(ctx)
}

func (p *Presenter) Ledger(ctx context.Context, id int64) (*ledger.Ledger, error) {
	return p.svc.GetLedger(ctx, id)
}

// History is one ledger with its records, newest first.
type History struct {
	Ledger  *ledger.Ledger
	Records []*ledger.Record
}

func (p *Presenter) History(ctx context.Context, id int64) (*History, error) {
	l, err := p.svc.GetLedger(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := p.svc.ListHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing history of ledger %d: %w", id, err)
	}

	return &History{Ledger: l, Records: records}, nil
}

// Records is every record across ledgers, newest first, along with the
// ledgers needed to name them.
type Records struct {
	Ledgers []*ledger.Ledger
	Records []*ledger.Record
}

// Name returns the name of the ledger with the given id, or "#id" when the
// ledger is not part of the list.
func (r *Records) Name(id int64) string {
	for _, l := range r.Ledgers {
		if l.ID == id {
			return l.Name
		}
	}

	return fmt.Sprintf("#%d", id)
}

func (p *Presenter) Records(ctx context.Context) (*Records, error) {
	ledgers, err := p.svc.ListLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ledgers: %w", err)
	}

	records, err := p.svc.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return &Records{Ledgers: ledgers, Records: records}, nil
}

func (p *Presenter) LatestRecords(ctx context.Context) ([]*ledger.Record, error) {
	return p.svc.LatestRecords(ctx)
}

func (p *Presenter) Summaries(ctx context.Context) ([]ledger.Summary, error) {
	return p.svc.BuildSummaries(ctx)
}

func (p *Presenter) Dashboard(ctx context.Context) (report.Dashboard, error) {
	summaries, err := p.svc.BuildSummaries(ctx)
	if err != nil {
		return report.Dashboard{}, err
	}

	return report.NewDashboard(summaries), nil
}

// Trend builds the trend chart series. A non-positive maxPoints falls back to
// the configured default.
func (p *Presenter) Trend(ctx context.Context, maxPoints int, withTotal bool) ([]report.Series, error) {
	if maxPoints <= 0 {
		maxPoints = p.trend.MaxPoints
	}

	all, err := p.Records(ctx)
	if err != nil {
		return nil, err
	}

	return report.NewTrend(all.Ledgers, all.Records, report.TrendOptions{
		MaxPoints: maxPoints,
		WithTotal: withTotal,
	}), nil
}
