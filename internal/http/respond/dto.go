package respond

import (
	"time"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type LedgerResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecordResponse struct {
	ID        int64     `json:"id"`
	LedgerID  int64     `json:"ledger_id"`
	Amount    float64   `json:"amount"`
	Display   string    `json:"display"`
	Note      string    `json:"note,omitempty"`
	Period    string    `json:"period,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SummaryResponse struct {
	Ledger        LedgerResponse `json:"ledger"`
	CurrentAmount float64        `json:"current_amount"`
	Display       string         `json:"display"`
	Percentage    float64        `json:"percentage"`
}

type SliceResponse struct {
	LedgerID   int64   `json:"ledger_id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type DashboardResponse struct {
	Currency  string            `json:"currency"`
	Total     float64           `json:"total"`
	Display   string            `json:"display"`
	Empty     bool              `json:"empty"`
	Summaries []SummaryResponse `json:"summaries"`
	Slices    []SliceResponse   `json:"slices"`
}

type PointResponse struct {
	Label  string    `json:"label"`
	At     time.Time `json:"at"`
	Amount float64   `json:"amount"`
}

type SeriesResponse struct {
	LedgerID int64           `json:"ledger_id,omitempty"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Total    bool            `json:"total"`
	Points   []PointResponse `json:"points"`
}

func Ledger(l *ledger.Ledger) LedgerResponse {
	return LedgerResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}

func Ledgers(ls []*ledger.Ledger) []LedgerResponse {
	resp := make([]LedgerResponse, len(ls))
	for i, l := range ls {
		resp[i] = Ledger(l)
	}

	return resp
}

func Record(r *ledger.Record, m report.Money) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		LedgerID:  r.LedgerID,
		Amount:    r.Amount,
		Display:   m.Format(r.Amount),
		Note:      r.Note,
		Period:    r.Period,
		CreatedAt: r.CreatedAt,
	}
}

func Records(rs []*ledger.Record, m report.Money) []RecordResponse {
	resp := make([]RecordResponse, len(rs))
	for i, r := range rs {
		resp[i] = Record(r, m)
	}

	return resp
}

func Summaries(ss []ledger.Summary, m report.Money) []SummaryResponse {
	resp := make([]SummaryResponse, len(ss))
	for i, s := range ss {
		resp[i] = SummaryResponse{
			Ledger:        Ledger(s.Ledger),
			CurrentAmount: s.CurrentAmount,
			Display:       m.Format(s.CurrentAmount),
			Percentage:    s.Percentage,
		}
	}

	return resp
}

func Dashboard(d report.Dashboard, m report.Money) DashboardResponse {
	slices := make([]SliceResponse, len(d.Slices))
	for i, s := range d.Slices {
		slices[i] = SliceResponse(s)
	}

	return DashboardResponse{
		Currency:  m.Code(),
		Total:     d.Total,
		Display:   m.Format(d.Total),
		Empty:     d.Empty,
		Summaries: Summaries(d.Summaries, m),
		Slices:    slices,
	}
}

func Trend(series []report.Series) []SeriesResponse {
	resp := make([]SeriesResponse, len(series))
	for i, s := range series {
		points := make([]PointResponse, len(s.Points))
		for j, p := range s.Points {
			points[j] = PointResponse(p)
		}

		resp[i] = SeriesResponse{
			LedgerID: s.LedgerID,
			Name:     s.Name,
			Color:    s.Color,
			Total:    s.Total,
			Points:   points,
		}
	}

	return resp
}
