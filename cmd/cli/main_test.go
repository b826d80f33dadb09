package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/assetbook/internal/database"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/assetbook/internal/ledger/store"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type harness struct {
	app *app
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "accounting.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	p := presenter.New(
		ledger.NewService(ledgerStore.New(db)),
		report.NewMoney("USD"),
		report.TrendOptions{MaxPoints: 8, WithTotal: true},
	)

	h := &harness{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	h.app = &app{p: p, out: h.out, err: h.err, plain: true}

	return h
}

func (h *harness) run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()

	h.out.Reset()
	h.err.Reset()

	fs := flag.NewFlagSet("assetbook", flag.ContinueOnError)
	cdr := subcommands.NewCommander(fs, "assetbook")
	register(cdr, h.app)
	require.NoError(t, fs.Parse(args))

	return cdr.Execute(context.Background())
}

func TestCLI_Workflow(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "add-ledger", "-name", "Cash", "-description", "wallet"))
	assert.Contains(t, h.out.String(), `Created ledger #1 "Cash"`)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "add-ledger", "Stocks"))
	assert.Contains(t, h.out.String(), `"Stocks"`)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "record", "-ledger", "Cash", "-amount", "300", "-period", "2024 Q1"))
	assert.Contains(t, h.out.String(), `Recorded $300.00 for "Cash"`)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "record", "-ledger", "2", "-amount", "700"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "summary"))
	assert.Contains(t, h.out.String(), "**Total assets:** $1,000.00")
	assert.Contains(t, h.out.String(), "| Cash | $300.00 | 30.0% |")
	assert.Contains(t, h.out.String(), "| Stocks | $700.00 | 70.0% |")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "history", "-ledger", "Cash"))
	assert.Contains(t, h.out.String(), "# Cash")
	assert.Contains(t, h.out.String(), "2024 Q1")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "records"))
	assert.Contains(t, h.out.String(), "# All Records")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "trend", "-points", "4"))
	assert.Contains(t, h.out.String(), "## Total")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "ledgers"))
	assert.Contains(t, h.out.String(), "| 1 | Cash | wallet |")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "delete-ledger", "-ledger", "Cash", "-yes"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "summary"))
	assert.Contains(t, h.out.String(), "| Stocks | $700.00 | 100.0% |")
	assert.NotContains(t, h.out.String(), "Cash")
}

func TestCLI_Errors(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "add-ledger", "-name", "Cash"))

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
		msg  string
	}{
		{name: "DuplicateLedger", args: []string{"add-ledger", "-name", "Cash"}, want: subcommands.ExitFailure, msg: "constraint violation"},
		{name: "EmptyName", args: []string{"add-ledger"}, want: subcommands.ExitUsageError, msg: "name cannot be empty"},
		{name: "BadAmount", args: []string{"record", "-ledger", "Cash", "-amount", "lots"}, want: subcommands.ExitUsageError, msg: "not a number"},
		{name: "UnknownLedger", args: []string{"history", "-ledger", "Nope"}, want: subcommands.ExitFailure, msg: "not found"},
		{name: "DeleteWithoutYes", args: []string{"delete-ledger", "-ledger", "Cash"}, want: subcommands.ExitUsageError, msg: "-yes"},
		{name: "NegativePoints", args: []string{"trend", "-points", "-1"}, want: subcommands.ExitUsageError, msg: "-points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.run(t, tt.args...))
			assert.Contains(t, h.err.String(), tt.msg)
		})
	}
}

func TestApp_OpensStoreLazily(t *testing.T) {
	opened := 0
	a := &app{
		out: &bytes.Buffer{},
		err: &bytes.Buffer{},
		open: func(context.Context) (*presenter.Presenter, error) {
			opened++
			return nil, ledger.ErrStoreUnavailable
		},
	}

	status := a.run(context.Background(), func(context.Context, *presenter.Presenter) error {
		return errors.New("unreachable")
	})

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Equal(t, 1, opened)
}

func TestCLI_TrendLabelsUseLocalDate(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("CST", 8*60*60)
	t.Cleanup(func() { time.Local = prev })

	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "add-ledger", "-name", "Cash"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "record", "-ledger", "Cash", "-amount", "100", "-date", "2024-01-01"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "trend", "-no-total"))
	assert.Contains(t, h.out.String(), "- 2024-01-01: $100.00")
	assert.NotContains(t, h.out.String(), "2023-12-31")
}

func TestCLI_NumericLedgerName(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "add-ledger", "-name", "Cash"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "add-ledger", "-name", "2024"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "record", "-ledger", "2024", "-amount", "5"))
	assert.Contains(t, h.out.String(), `for "2024"`)

	// An id match wins over a name.
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "record", "-ledger", "1", "-amount", "7"))
	assert.Contains(t, h.out.String(), `for "Cash"`)

	assert.Equal(t, subcommands.ExitFailure, h.run(t, "history", "-ledger", "99"))
	assert.Contains(t, h.err.String(), "not found")
}
