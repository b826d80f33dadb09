package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/assetbook/internal/config"
	"github.com/MrJamesThe3rd/assetbook/internal/database"
	assetHttp "github.com/MrJamesThe3rd/assetbook/internal/http"
	ledgerHandler "github.com/MrJamesThe3rd/assetbook/internal/http/ledger"
	recordHandler "github.com/MrJamesThe3rd/assetbook/internal/http/record"
	statsHandler "github.com/MrJamesThe3rd/assetbook/internal/http/stats"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/assetbook/internal/ledger/store"
	"github.com/MrJamesThe3rd/assetbook/internal/logging"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init(os.Stderr, "assetbook-api", cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	p := presenter.New(
		ledger.NewService(ledgerStore.New(db)),
		report.NewMoney(cfg.App.Currency),
		report.TrendOptions{MaxPoints: cfg.Trend.Points, WithTotal: cfg.Trend.WithTotal},
	)

	router := assetHttp.New(
		cfg.Server.CORSOrigins,
		ledgerHandler.NewHandler(p),
		recordHandler.NewHandler(p),
		statsHandler.NewHandler(p),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", addr, "store", cfg.Store.Path, "currency", cfg.App.Currency)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
