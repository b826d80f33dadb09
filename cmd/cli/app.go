package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
)

const opTimeout = 5 * time.Second

// app is shared by every subcommand. The store is opened on first use so
// that help and usage errors work without one.
type app struct {
	open  func(ctx context.Context) (*presenter.Presenter, error)
	p     *presenter.Presenter
	out   io.Writer
	err   io.Writer
	plain bool
}

func (a *app) presenter(ctx context.Context) (*presenter.Presenter, error) {
	if a.p != nil {
		return a.p, nil
	}

	p, err := a.open(ctx)
	if err != nil {
		return nil, err
	}

	a.p = p

	return p, nil
}

// run opens the store and calls fn with a per-operation timeout.
func (a *app) run(ctx context.Context, fn func(ctx context.Context, p *presenter.Presenter) error) subcommands.ExitStatus {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	p, err := a.presenter(ctx)
	if err != nil {
		return a.fail(err)
	}

	if err := fn(ctx, p); err != nil {
		return a.fail(err)
	}

	return subcommands.ExitSuccess
}

func (a *app) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.err, "Error: %v\n", err)

	if errors.Is(err, ledger.ErrValidation) {
		return subcommands.ExitUsageError
	}

	return subcommands.ExitFailure
}

func (a *app) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// printMarkdown renders md for the terminal, or writes it as is in plain mode.
func (a *app) printMarkdown(md string) {
	if a.plain {
		fmt.Fprint(a.out, md)
		return
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(a.out, md)
		return
	}

	rendered, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.out, md)
		return
	}

	fmt.Fprint(a.out, rendered)
}

// resolveLedger finds a ledger by id or, failing that, by exact name.
// An all-digit name is still found when no ledger has that id.
func resolveLedger(ctx context.Context, p *presenter.Presenter, ref string) (*ledger.Ledger, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: -ledger is required", ledger.ErrValidation)
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		l, err := p.Ledger(ctx, id)
		if !errors.Is(err, ledger.ErrNotFound) {
			return l, err
		}
	}

	ledgers, err := p.Ledgers(ctx)
	if err != nil {
		return nil, err
	}

	for _, l := range ledgers {
		if l.Name == ref {
			return l, nil
		}
	}

	return nil, fmt.Errorf("ledger %q: %w", ref, ledger.ErrNotFound)
}
