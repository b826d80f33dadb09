package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type summaryCmd struct {
	*app
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display total assets and the share of each ledger" }
func (*summaryCmd) Usage() string {
	return `summary

  Displays the current amount of every ledger, its percentage of the total
  and the total itself.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		d, err := p.Dashboard(ctx)
		if err != nil {
			return err
		}

		c.printMarkdown(report.SummaryMarkdown(d, p.Money()))

		return nil
	})
}

type trendCmd struct {
	*app
	points  int
	noTotal bool
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "display recent amounts per ledger" }
func (*trendCmd) Usage() string {
	return `trend [-points <n>] [-no-total]

  Displays the most recent records of every ledger, oldest first, labelled
  by period (or date when no period was given), followed by the total.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.points, "points", 0, "Points per ledger. Defaults to TREND_POINTS.")
	f.BoolVar(&c.noTotal, "no-total", false, "Leave out the total line")
}

func (c *trendCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.points < 0 {
		return c.usage("-points must not be negative")
	}

	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		withTotal := p.TrendDefaults().WithTotal && !c.noTotal

		series, err := p.Trend(ctx, c.points, withTotal)
		if err != nil {
			return err
		}

		c.printMarkdown(report.TrendMarkdown(series, p.Money()))

		return nil
	})
}
