package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

const timestampLayout = "2006-01-02 15:04"

// escape keeps user text from breaking a markdown table row.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// LedgersMarkdown renders the ledger list.
func LedgersMarkdown(ledgers []*ledger.Ledger) string {
	var b strings.Builder

	b.WriteString("# Ledgers\n\n")

	if len(ledgers) == 0 {
		b.WriteString("No ledgers yet.\n")
		return b.String()
	}

	b.WriteString("| ID | Name | Description | Created |\n")
	b.WriteString("|---:|:-----|:------------|:--------|\n")

	for _, l := range ledgers {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			l.ID, escape(l.Name), escape(l.Description), l.CreatedAt.Local().Format(time.DateOnly))
	}

	return b.String()
}

// SummaryMarkdown renders the statistics page: total assets and the share of
// each ledger.
func SummaryMarkdown(d Dashboard, m Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Asset Summary\n\n**Total assets:** %s\n\n", m.Format(d.Total))

	if len(d.Summaries) == 0 {
		b.WriteString("No ledgers yet.\n")
		return b.String()
	}

	b.WriteString("| Ledger | Current | Share |\n")
	b.WriteString("|:-------|--------:|------:|\n")

	for _, s := range d.Summaries {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escape(s.Ledger.Name), m.Format(s.CurrentAmount), Percent(s.Percentage))
	}

	if d.Empty {
		b.WriteString("\n_No positive balance to chart._\n")
	}

	return b.String()
}

// HistoryMarkdown renders the records of one ledger, newest first.
func HistoryMarkdown(l *ledger.Ledger, records []*ledger.Record, m Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escape(l.Name))

	if l.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", escape(l.Description))
	}

	if len(records) == 0 {
		b.WriteString("No records yet.\n")
		return b.String()
	}

	b.WriteString("| Recorded | Amount | Period | Note |\n")
	b.WriteString("|:---------|-------:|:-------|:-----|\n")

	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			r.CreatedAt.Local().Format(timestampLayout), m.Format(r.Amount), escape(r.Period), escape(r.Note))
	}

	return b.String()
}

// RecordsMarkdown renders every record across ledgers, newest first.
func RecordsMarkdown(ledgers []*ledger.Ledger, records []*ledger.Record, m Money) string {
	names := make(map[int64]string, len(ledgers))
	for _, l := range ledgers {
		names[l.ID] = l.Name
	}

	var b strings.Builder

	b.WriteString("# All Records\n\n")

	if len(records) == 0 {
		b.WriteString("No records yet.\n")
		return b.String()
	}

	b.WriteString("| Recorded | Ledger | Amount | Period | Note |\n")
	b.WriteString("|:---------|:-------|-------:|:-------|:-----|\n")

	for _, r := range records {
		name, ok := names[r.LedgerID]
		if !ok {
			name = fmt.Sprintf("#%d", r.LedgerID)
		}

		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.CreatedAt.Local().Format(timestampLayout), escape(name), m.Format(r.Amount), escape(r.Period), escape(r.Note))
	}

	return b.String()
}

// TrendMarkdown renders each series as a list of label/amount pairs.
func TrendMarkdown(series []Series, m Money) string {
	var b strings.Builder

	b.WriteString("# Asset Trend\n\n")

	if len(series) == 0 {
		b.WriteString("No records yet.\n")
		return b.String()
	}

	for _, s := range series {
		fmt.Fprintf(&b, "## %s\n\n", escape(s.Name))

		for _, p := range s.Points {
			fmt.Fprintf(&b, "- %s: %s\n", escape(p.Label), m.Format(p.Amount))
		}

		b.WriteString("\n")
	}

	return b.String()
}
