package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

type ledgersState int

const (
	ledgersStateBrowse ledgersState = iota
	ledgersStateNew
	ledgersStateDelete
	ledgersStateHistory
	ledgersStateSaving
)

// ledgerFields holds the huh form bindings. It lives behind a pointer so
// that copies of the model keep writing to the same place.
type ledgerFields struct {
	name        string
	description string
	confirm     bool
}

type LedgersModel struct {
	CommonModel
	p *presenter.Presenter

	state     ledgersState
	table     table.Model
	history   table.Model
	summaries []ledger.Summary
	selected  *ledger.Ledger
	form      *huh.Form
	fields    *ledgerFields

	loading bool
	err     error
	status  string
}

func NewLedgersModel(p *presenter.Presenter) LedgersModel {
	return LedgersModel{
		p: p,
		table: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 20},
			{Title: "Current", Width: 18},
			{Title: "Share", Width: 8},
			{Title: "Description", Width: 30},
		}),
		history: newTable([]table.Column{
			{Title: "Recorded", Width: 17},
			{Title: "Amount", Width: 18},
			{Title: "Period", Width: 12},
			{Title: "Note", Width: 30},
		}),
		fields:  &ledgerFields{},
		loading: true,
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m LedgersModel) Title() string { return "Ledgers" }

func (m LedgersModel) ShortHelp() string {
	switch m.state {
	case ledgersStateNew, ledgersStateDelete:
		return "Navigate form | Esc: cancel"
	case ledgersStateHistory:
		return "Esc: back to ledgers"
	case ledgersStateSaving:
		return "Saving..."
	}

	return "Esc: back | n: new | d: delete | Enter: history | r: refresh"
}

func (m LedgersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgersMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.summaries = msg.summaries
			m.refreshTable()
		}

		return m, nil

	case loadHistoryMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = ledgersStateBrowse

			return m, nil
		}

		m.refreshHistory(msg.records)

		return m, nil

	case ledgerSavedMsg:
		m.state = ledgersStateBrowse
		m.form = nil
		m.err = msg.err
		m.status = msg.status
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))
		m.history.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case ledgersStateBrowse:
		return m.updateBrowse(msg)
	case ledgersStateNew, ledgersStateDelete:
		return m.updateForm(msg)
	case ledgersStateHistory:
		return m.updateHistory(msg)
	}

	return m, nil
}

func (m LedgersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.startNew()
		case "d":
			return m.startDelete()
		case "enter":
			return m.startHistory()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgersModel) current() *ledger.Ledger {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.summaries) {
		return nil
	}

	return m.summaries[idx].Ledger
}

func (m LedgersModel) startNew() (tea.Model, tea.Cmd) {
	*m.fields = ledgerFields{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.fields.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),

			huh.NewText().
				Key("description").
				Title("Description (optional)").
				Lines(3).
				Value(&m.fields.description),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ledgersStateNew
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgersModel) startDelete() (tea.Model, tea.Cmd) {
	l := m.current()
	if l == nil {
		return m, nil
	}

	m.selected = l
	*m.fields = ledgerFields{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %q?", l.Name)).
				Description("All of its records are deleted too. This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fields.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ledgersStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgersModel) startHistory() (tea.Model, tea.Cmd) {
	l := m.current()
	if l == nil {
		return m, nil
	}

	m.selected = l
	m.state = ledgersStateHistory
	m.history.SetRows(nil)

	return m, m.loadHistoryCmd(l.ID)
}

func (m LedgersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ledgersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		// Wait for ledgerSavedMsg so later messages cannot submit twice.
		creating := m.state == ledgersStateNew
		m.state = ledgersStateSaving
		m.form = nil

		if creating {
			return m, m.createCmd(m.fields.name, m.fields.description)
		}

		if !m.fields.confirm {
			return m, func() tea.Msg { return ledgerSavedMsg{status: "Delete cancelled."} }
		}

		return m, m.deleteCmd(m.selected)
	case huh.StateAborted:
		m.state = ledgersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, cmd
}

func (m LedgersModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = ledgersStateBrowse
		m.selected = nil

		return m, nil
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)

	return m, cmd
}

func (m LedgersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledgers...")
	}

	if m.state == ledgersStateHistory && m.selected != nil {
		header := titleStyle.Render(m.selected.Name)
		if m.selected.Description != "" {
			header += "\n" + faintStyle.Render(m.selected.Description)
		}

		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			borderStyle.Render(m.history.View()),
		))
	}

	var content string
	if len(m.summaries) == 0 {
		content = faintStyle.Render("No ledgers yet. Press n to create one.")
	} else {
		content = borderStyle.Render(m.table.View())
	}

	if (m.state == ledgersStateNew || m.state == ledgersStateDelete) && m.form != nil {
		title := "New Ledger"
		if m.state == ledgersStateDelete {
			title = "Delete Ledger"
		}

		panel := panelStyle.Width(54).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + content)
}

func (m *LedgersModel) refreshTable() {
	money := m.p.Money()

	rows := make([]table.Row, 0, len(m.summaries))
	for _, s := range m.summaries {
		rows = append(rows, table.Row{
			fmt.Sprint(s.Ledger.ID),
			s.Ledger.Name,
			money.Format(s.CurrentAmount),
			report.Percent(s.Percentage),
			s.Ledger.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *LedgersModel) refreshHistory(records []*ledger.Record) {
	money := m.p.Money()

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			FormatTimestamp(r.CreatedAt),
			money.Format(r.Amount),
			r.Period,
			r.Note,
		})
	}

	m.history.SetRows(rows)
	m.history.SetCursor(0)
}

// Messages

type loadLedgersMsg struct {
	summaries []ledger.Summary
	err       error
}

func (m LedgersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summaries, err := m.p.Summaries(ctx)

		return loadLedgersMsg{summaries: summaries, err: err}
	}
}

type loadHistoryMsg struct {
	records []*ledger.Record
	err     error
}

func (m LedgersModel) loadHistoryCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		h, err := m.p.History(ctx, id)
		if err != nil {
			return loadHistoryMsg{err: err}
		}

		return loadHistoryMsg{records: h.Records}
	}
}

type ledgerSavedMsg struct {
	status string
	err    error
}

func (m LedgersModel) createCmd(name, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		l, err := m.p.CreateLedger(ctx, name, description)
		if err != nil {
			return ledgerSavedMsg{err: err}
		}

		return ledgerSavedMsg{status: fmt.Sprintf("Created ledger %q.", l.Name)}
	}
}

func (m LedgersModel) deleteCmd(l *ledger.Ledger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.p.DeleteLedger(ctx, l.ID); err != nil {
			return ledgerSavedMsg{err: err}
		}

		return ledgerSavedMsg{status: fmt.Sprintf("Deleted ledger %q.", l.Name)}
	}
}
