package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

const barWidth = 30

// StatisticsModel shows total assets, each ledger's share as a coloured bar
// and a sparkline of recent amounts per ledger.
type StatisticsModel struct {
	CommonModel
	p *presenter.Presenter

	dashboard report.Dashboard
	series    []report.Series

	loading bool
	err     error
}

func NewStatisticsModel(p *presenter.Presenter) StatisticsModel {
	return StatisticsModel{p: p, loading: true}
}

func (m StatisticsModel) Title() string { return "Statistics" }

func (m StatisticsModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m StatisticsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StatisticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatisticsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.dashboard = msg.dashboard
			m.series = msg.series
		}

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m StatisticsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading statistics...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(statusLine("", m.err))
	}

	money := m.p.Money()

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", titleStyle.Render("Total assets:"), money.Format(m.dashboard.Total))

	b.WriteString(titleStyle.Render("Allocation") + "\n")

	if m.dashboard.Empty {
		b.WriteString(faintStyle.Render("No data") + "\n")
	}

	for _, s := range m.dashboard.Slices {
		filled, empty := shareBar(s.Percentage, barWidth)
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))

		fmt.Fprintf(&b, "%-18s %s%s %7s  %s\n",
			truncate(s.Name, 18),
			color.Render(filled),
			faintStyle.Render(empty),
			report.Percent(s.Percentage),
			money.Format(s.Amount),
		)
	}

	b.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Trend (last %d records)", m.p.TrendDefaults().MaxPoints)) + "\n")

	if len(m.series) == 0 {
		b.WriteString(faintStyle.Render("No data") + "\n")
	}

	for _, s := range m.series {
		amounts := make([]float64, len(s.Points))
		for i, p := range s.Points {
			amounts[i] = p.Amount
		}

		last := s.Points[len(s.Points)-1]
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		if s.Total {
			color = color.Bold(true)
		}

		fmt.Fprintf(&b, "%-18s %s  %s %s\n",
			truncate(s.Name, 18),
			color.Render(fmt.Sprintf("%-*s", m.p.TrendDefaults().MaxPoints, sparkline(amounts))),
			money.Format(last.Amount),
			faintStyle.Render("("+last.Label+")"),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

// Messages

type loadStatisticsMsg struct {
	dashboard report.Dashboard
	series    []report.Series
	err       error
}

func (m StatisticsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.p.Dashboard(ctx)
		if err != nil {
			return loadStatisticsMsg{err: err}
		}

		defaults := m.p.TrendDefaults()

		series, err := m.p.Trend(ctx, defaults.MaxPoints, defaults.WithTotal)
		if err != nil {
			return loadStatisticsMsg{err: err}
		}

		return loadStatisticsMsg{dashboard: d, series: series}
	}
}
