package report

import (
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

// Slice is one wedge of the allocation pie chart.
type Slice struct {
	LedgerID   int64
	Name       string
	Amount     float64
	Percentage float64
	Color      string
}

// Dashboard is the statistics page: total assets, per-ledger summaries and
// the pie slices derived from them.
type Dashboard struct {
	Total     float64
	Summaries []ledger.Summary
	Slices    []Slice
	// Empty is set when there is nothing to chart (total <= 0).
	Empty bool
}

func NewDashboard(summaries []ledger.Summary) Dashboard {
	d := Dashboard{
		Total:     ledger.Total(summaries),
		Summaries: summaries,
	}

	if d.Total <= 0 {
		d.Empty = true
		return d
	}

	for i, s := range summaries {
		if s.CurrentAmount <= 0 {
			continue
		}

		d.Slices = append(d.Slices, Slice{
			LedgerID:   s.Ledger.ID,
			Name:       s.Ledger.Name,
			Amount:     s.CurrentAmount,
			Percentage: s.Percentage,
			Color:      Color(i),
		})
	}

	return d
}
