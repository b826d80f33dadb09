package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type recordCmd struct {
	*app
	ref    string
	amount string
	note   string
	period string
	date   string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record the current amount of a ledger" }
func (*recordCmd) Usage() string {
	return `record -ledger <id|name> -amount <amount> [-period <label>] [-note <text>] [-date <date>]

  Appends a snapshot of the ledger's amount. Records are never edited.
  - amount: a number, "," and "_" are accepted as thousands separators.
  - date: YYYY-MM-DD, "YYYY-MM-DD HH:MM" or RFC3339. Defaults to now.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "ledger", "", "Ledger id or name (required)")
	f.StringVar(&c.amount, "amount", "", "Amount (required)")
	f.StringVar(&c.note, "note", "", "Free text note")
	f.StringVar(&c.period, "period", "", "Accounting period label, e.g. \"2024 Q1\"")
	f.StringVar(&c.date, "date", "", "When the amount was observed. Defaults to now.")
}

func (c *recordCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		l, err := resolveLedger(ctx, p, c.ref)
		if err != nil {
			return err
		}

		r, err := p.AddRecord(ctx, presenter.RecordInput{
			LedgerID: l.ID,
			Amount:   c.amount,
			Note:     c.note,
			Period:   c.period,
			Date:     c.date,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(c.out, "Recorded %s for %q\n", p.Money().Format(r.Amount), l.Name)

		return nil
	})
}

type historyCmd struct {
	*app
	ref string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the records of one ledger" }
func (*historyCmd) Usage() string {
	return `history -ledger <id|name>

  Shows every record of the ledger, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "ledger", "", "Ledger id or name (required)")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		l, err := resolveLedger(ctx, p, c.ref)
		if err != nil {
			return err
		}

		h, err := p.History(ctx, l.ID)
		if err != nil {
			return err
		}

		c.printMarkdown(report.HistoryMarkdown(h.Ledger, h.Records, p.Money()))

		return nil
	})
}

type recordsCmd struct {
	*app
}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "show every record across ledgers" }
func (*recordsCmd) Usage() string {
	return `records

  Shows every record of every ledger, newest first.
`
}

func (*recordsCmd) SetFlags(*flag.FlagSet) {}

func (c *recordsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		all, err := p.Records(ctx)
		if err != nil {
			return err
		}

		c.printMarkdown(report.RecordsMarkdown(all.Ledgers, all.Records, p.Money()))

		return nil
	})
}
