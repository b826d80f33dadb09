package ledger

import (
	"context"
	"fmt"
)

// BuildSummaries derives the current amount and percentage share of every
// ledger, in the order ListLedgers returns them.
//
// The current amount of a ledger is the amount of its latest record, or 0
// when it has none. Percentages are 0 for every ledger when the total of
// current amounts is not positive.
func (s *Service) BuildSummaries(ctx context.Context) ([]Summary, error) {
	ledgers, err := s.repo.ListLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ledgers: %w", err)
	}

	latest, err := s.repo.LatestRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing latest records: %w", err)
	}

	return Summarize(ledgers, latest), nil
}

// Summarize is the pure part of BuildSummaries.
func Summarize(ledgers []*Ledger, latest []*Record) []Summary {
	byLedger := make(map[int64]*Record, len(latest))
	for _, r := range latest {
		byLedger[r.LedgerID] = r
	}

	// Only records of listed ledgers count towards the total.
	var total float64

	for _, l := range ledgers {
		if r, ok := byLedger[l.ID]; ok {
			total += r.Amount
		}
	}

	summaries := make([]Summary, 0, len(ledgers))

	for _, l := range ledgers {
		var current float64
		if r, ok := byLedger[l.ID]; ok {
			current = r.Amount
		}

		var pct float64
		if total > 0 {
			pct = current / total * 100
		}

		summaries = append(summaries, Summary{
			Ledger:        l,
			CurrentAmount: current,
			Percentage:    pct,
		})
	}

	return summaries
}

// Total sums the current amounts of the given summaries.
func Total(summaries []Summary) float64 {
	var total float64
	for _, s := range summaries {
		total += s.CurrentAmount
	}

	return total
}
