package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type ledgersCmd struct {
	*app
}

func (*ledgersCmd) Name() string     { return "ledgers" }
func (*ledgersCmd) Synopsis() string { return "list all ledgers" }
func (*ledgersCmd) Usage() string {
	return `ledgers

  Lists every ledger with its id, name and description.
`
}

func (*ledgersCmd) SetFlags(*flag.FlagSet) {}

func (c *ledgersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		ledgers, err := p.Ledgers(ctx)
		if err != nil {
			return err
		}

		c.printMarkdown(report.LedgersMarkdown(ledgers))

		return nil
	})
}

type addLedgerCmd struct {
	*app
	name        string
	description string
}

func (*addLedgerCmd) Name() string     { return "add-ledger" }
func (*addLedgerCmd) Synopsis() string { return "create a new ledger" }
func (*addLedgerCmd) Usage() string {
	return `add-ledger -name <name> [-description <text>]

  Creates a ledger. Names must be unique.
`
}

func (c *addLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Ledger name (required, unique)")
	f.StringVar(&c.description, "description", "", "Free text description")
}

func (c *addLedgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := c.name
	if name == "" && f.NArg() > 0 {
		name = strings.Join(f.Args(), " ")
	}

	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		l, err := p.CreateLedger(ctx, name, c.description)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.out, "Created ledger #%d %q\n", l.ID, l.Name)

		return nil
	})
}

type deleteLedgerCmd struct {
	*app
	ref string
	yes bool
}

func (*deleteLedgerCmd) Name() string     { return "delete-ledger" }
func (*deleteLedgerCmd) Synopsis() string { return "delete a ledger and all of its records" }
func (*deleteLedgerCmd) Usage() string {
	return `delete-ledger -ledger <id|name> -yes

  Deletes the ledger together with every record it holds. This cannot be
  undone, so -yes is required.
`
}

func (c *deleteLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "ledger", "", "Ledger id or name (required)")
	f.BoolVar(&c.yes, "yes", false, "Confirm the deletion")
}

func (c *deleteLedgerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		return c.usage("refusing to delete without -yes")
	}

	return c.run(ctx, func(ctx context.Context, p *presenter.Presenter) error {
		l, err := resolveLedger(ctx, p, c.ref)
		if err != nil {
			return err
		}

		if err := p.DeleteLedger(ctx, l.ID); err != nil {
			return err
		}

		fmt.Fprintf(c.out, "Deleted ledger #%d %q\n", l.ID, l.Name)

		return nil
	})
}
