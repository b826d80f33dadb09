package ledger

import (
	"time"
)

// Ledger is a named asset category or account whose value is tracked over time.
type Ledger struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// Record is a snapshot of a ledger's amount at a point in time.
// Records are append-only and only disappear together with their ledger.
type Record struct {
	ID        int64
	LedgerID  int64
	Amount    float64 // Signed, no non-negativity rule
	Note      string
	Period    string // Free-text accounting period label, e.g. "2024 Q1"
	CreatedAt time.Time
}

// Summary combines a ledger with its latest known amount and its share of
// the total across all ledgers.
type Summary struct {
	Ledger        *Ledger
	CurrentAmount float64
	Percentage    float64
}
