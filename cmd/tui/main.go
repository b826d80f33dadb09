package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/assetbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/assetbook/internal/config"
	"github.com/MrJamesThe3rd/assetbook/internal/database"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/assetbook/internal/ledger/store"
	"github.com/MrJamesThe3rd/assetbook/internal/logging"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type model struct {
	presenter *presenter.Presenter
	appName   string

	currentView View
	width       int
	height      int

	ledgersView    view.LedgersModel
	recordView     view.RecordFormModel
	recordsView    view.RecordsModel
	statisticsView view.StatisticsModel
}

type View int

const (
	ViewMenu       View = 0
	ViewLedgers    View = 1
	ViewRecord     View = 2
	ViewRecords    View = 3
	ViewStatistics View = 4
)

func initialModel(p *presenter.Presenter, appName string) model {
	return model{
		presenter:      p,
		appName:        appName,
		currentView:    ViewMenu,
		ledgersView:    view.NewLedgersModel(p),
		recordView:     view.NewRecordFormModel(p),
		recordsView:    view.NewRecordsModel(p),
		statisticsView: view.NewStatisticsModel(p),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// resize replays the last known window size to a freshly opened screen.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: m.width, Height: m.height}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLedgers
				m.ledgersView = view.NewLedgersModel(m.presenter)

				return m, tea.Batch(m.ledgersView.Init(), m.resize())
			case "2":
				m.currentView = ViewRecord
				m.recordView = view.NewRecordFormModel(m.presenter)

				return m, tea.Batch(m.recordView.Init(), m.resize())
			case "3":
				m.currentView = ViewRecords
				m.recordsView = view.NewRecordsModel(m.presenter)

				return m, tea.Batch(m.recordsView.Init(), m.resize())
			case "4":
				m.currentView = ViewStatistics
				m.statisticsView = view.NewStatisticsModel(m.presenter)

				return m, tea.Batch(m.statisticsView.Init(), m.resize())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedgers:
		var newModel tea.Model
		newModel, cmd = m.ledgersView.Update(msg)
		m.ledgersView = newModel.(view.LedgersModel)
	case ViewRecord:
		var newModel tea.Model
		newModel, cmd = m.recordView.Update(msg)
		m.recordView = newModel.(view.RecordFormModel)
	case ViewRecords:
		var newModel tea.Model
		newModel, cmd = m.recordsView.Update(msg)
		m.recordsView = newModel.(view.RecordsModel)
	case ViewStatistics:
		var newModel tea.Model
		newModel, cmd = m.statisticsView.Update(msg)
		m.statisticsView = newModel.(view.StatisticsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var screen view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Ledgers\n" +
				"2. Record Asset\n" +
				"3. All Records\n" +
				"4. Statistics\n\n" +
				"q. Quit",
		)
	case ViewLedgers:
		screen = m.ledgersView
	case ViewRecord:
		screen = m.recordView
	case ViewRecords:
		screen = m.recordsView
	case ViewStatistics:
		screen = m.statisticsView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(screen.ShortHelp())

	return screen.View() + "\n" + help
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard

	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "assetbook")
		if err != nil {
			slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
			os.Exit(1)
		}
		defer f.Close()

		logOut = f
	}

	logging.Init(logOut, "assetbook-tui", cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(context.Background(), cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		fmt.Fprintln(os.Stderr, "failed to open store:", err)
		os.Exit(1)
	}
	defer db.Close()

	p := presenter.New(
		ledger.NewService(ledgerStore.New(db)),
		report.NewMoney(cfg.App.Currency),
		report.TrendOptions{MaxPoints: cfg.Trend.Points, WithTotal: cfg.Trend.WithTotal},
	)

	slog.Info("starting tui", "store", cfg.Store.Path)

	prog := tea.NewProgram(initialModel(p, cfg.App.Name), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
