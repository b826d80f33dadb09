package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/assetbook/internal/config"
	"github.com/MrJamesThe3rd/assetbook/internal/database"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/assetbook/internal/ledger/store"
	"github.com/MrJamesThe3rd/assetbook/internal/logging"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it")

func register(c *subcommands.Commander, a *app) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&ledgersCmd{app: a}, "ledgers")
	c.Register(&addLedgerCmd{app: a}, "ledgers")
	c.Register(&deleteLedgerCmd{app: a}, "ledgers")

	c.Register(&recordCmd{app: a}, "records")
	c.Register(&historyCmd{app: a}, "records")
	c.Register(&recordsCmd{app: a}, "records")

	c.Register(&summaryCmd{app: a}, "reports")
	c.Register(&trendCmd{app: a}, "reports")
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init(os.Stderr, "assetbook-cli", cfg.Log.Level, cfg.Log.Format)

	var db *sql.DB

	a := &app{
		out: os.Stdout,
		err: os.Stderr,
		open: func(ctx context.Context) (*presenter.Presenter, error) {
			var err error

			db, err = database.New(ctx, cfg.Store.Path)
			if err != nil {
				return nil, err
			}

			slog.Debug("store opened", "path", cfg.Store.Path)

			return presenter.New(
				ledger.NewService(ledgerStore.New(db)),
				report.NewMoney(cfg.App.Currency),
				report.TrendOptions{MaxPoints: cfg.Trend.Points, WithTotal: cfg.Trend.WithTotal},
			), nil
		},
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander, a)

	flag.Parse()
	a.plain = *plain

	status := commander.Execute(context.Background())

	if db != nil {
		db.Close()
	}

	os.Exit(int(status))
}
