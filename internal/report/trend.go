package report

import (
	"sort"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

// DefaultTrendPoints is how many recent points each line keeps.
const DefaultTrendPoints = 8

// TotalSeriesName names the synthesized total-assets line.
const TotalSeriesName = "Total"

type Point struct {
	Label  string
	At     time.Time
	Amount float64
}

// Series is one line of the trend chart, oldest point first.
type Series struct {
	LedgerID int64 // 0 for the total line
	Name     string
	Color    string
	Total    bool
	Points   []Point
}

type TrendOptions struct {
	MaxPoints int
	WithTotal bool
}

// Label is the x-axis label of a record: its period when one was given,
// otherwise its date in the local time zone.
func Label(r *ledger.Record) string {
	if p := strings.TrimSpace(r.Period); p != "" {
		return p
	}

	return r.CreatedAt.Local().Format(time.DateOnly)
}

// NewTrend builds one series per ledger that has records, in ledger order,
// each limited to its most recent MaxPoints records. Records of ledgers not
// in the list are ignored. With WithTotal, a last series tracks the sum of
// every ledger's latest known amount at each recorded instant.
func NewTrend(ledgers []*ledger.Ledger, records []*ledger.Record, opts TrendOptions) []Series {
	if opts.MaxPoints <= 0 {
		opts.MaxPoints = DefaultTrendPoints
	}

	known := make(map[int64]bool, len(ledgers))
	for _, l := range ledgers {
		known[l.ID] = true
	}

	sorted := make([]*ledger.Record, 0, len(records))

	for _, r := range records {
		if known[r.LedgerID] {
			sorted = append(sorted, r)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}

		return sorted[i].ID < sorted[j].ID
	})

	byLedger := make(map[int64][]Point, len(ledgers))
	for _, r := range sorted {
		byLedger[r.LedgerID] = append(byLedger[r.LedgerID], Point{Label: Label(r), At: r.CreatedAt, Amount: r.Amount})
	}

	var series []Series

	for i, l := range ledgers {
		points := byLedger[l.ID]
		if len(points) == 0 {
			continue
		}

		series = append(series, Series{
			LedgerID: l.ID,
			Name:     l.Name,
			Color:    Color(i),
			Points:   lastN(points, opts.MaxPoints),
		})
	}

	if opts.WithTotal && len(sorted) > 0 {
		series = append(series, Series{
			Name:   TotalSeriesName,
			Color:  TotalColor,
			Total:  true,
			Points: lastN(totalPoints(sorted), opts.MaxPoints),
		})
	}

	return series
}

// totalPoints walks records in chronological order and emits, per distinct
// instant, the sum of the latest amount of every ledger seen so far.
func totalPoints(sorted []*ledger.Record) []Point {
	latest := make(map[int64]float64)

	var points []Point

	for i, r := range sorted {
		latest[r.LedgerID] = r.Amount

		if i+1 < len(sorted) && sorted[i+1].CreatedAt.Equal(r.CreatedAt) {
			continue
		}

		var sum float64
		for _, amount := range latest {
			sum += amount
		}

		points = append(points, Point{Label: Label(r), At: r.CreatedAt, Amount: sum})
	}

	return points
}

func lastN(points []Point, n int) []Point {
	if len(points) <= n {
		return points
	}

	return points[len(points)-n:]
}
