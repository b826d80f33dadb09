package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
)

type recordFields struct {
	ledgerID int64
	amount   string
	note     string
	period   string
	date     string
}

// RecordFormModel records a new snapshot of a ledger's amount.
type RecordFormModel struct {
	CommonModel
	p *presenter.Presenter

	ledgers []*ledger.Ledger
	form    *huh.Form
	fields  *recordFields

	loading bool
	saving  bool
	err     error
	status  string
}

func NewRecordFormModel(p *presenter.Presenter) RecordFormModel {
	return RecordFormModel{
		p:       p,
		fields:  &recordFields{},
		loading: true,
	}
}

func (m RecordFormModel) Title() string { return "Record Asset" }

func (m RecordFormModel) ShortHelp() string {
	return "Tab/Enter: next field | Esc: back"
}

func (m RecordFormModel) Init() tea.Cmd {
	return m.loadLedgersCmd()
}

func (m RecordFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordLedgersMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, nil
		}

		m.ledgers = msg.ledgers
		if len(m.ledgers) == 0 {
			return m, nil
		}

		return m.resetForm()

	case recordSavedMsg:
		m.saving = false
		m.err = msg.err
		if msg.err != nil {
			// Keep what was typed so the user can fix it.
			return m.rebuildForm()
		}

		m.status = msg.status

		return m.resetForm()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		// The form comes back with recordSavedMsg.
		m.saving = true
		m.form = nil

		return m, m.saveCmd(*m.fields)
	case huh.StateAborted:
		return m, Back
	}

	return m, cmd
}

func (m RecordFormModel) resetForm() (tea.Model, tea.Cmd) {
	selected := m.fields.ledgerID
	*m.fields = recordFields{ledgerID: selected}

	if selected == 0 && len(m.ledgers) > 0 {
		m.fields.ledgerID = m.ledgers[0].ID
	}

	return m.rebuildForm()
}

func (m RecordFormModel) rebuildForm() (tea.Model, tea.Cmd) {
	options := make([]huh.Option[int64], len(m.ledgers))
	for i, l := range m.ledgers {
		options[i] = huh.NewOption(l.Name, l.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Key("ledger").
				Title("Ledger").
				Options(options...).
				Value(&m.fields.ledgerID),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12,345.67").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					_, err := presenter.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("period").
				Title("Period (optional)").
				Placeholder("2024 Q1").
				Value(&m.fields.period),

			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&m.fields.note),

			huh.NewInput().
				Key("date").
				Title("Date (optional, defaults to now)").
				Placeholder("YYYY-MM-DD or YYYY-MM-DD HH:MM").
				Value(&m.fields.date).
				Validate(func(s string) error {
					_, err := presenter.ParseDate(s)
					return err
				}),
		),
	).WithWidth(60).WithShowHelp(false)

	return m, m.form.Init()
}

func (m RecordFormModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledgers...")
	}

	if len(m.ledgers) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			statusLine(m.status, m.err) + "No ledgers yet. Create one from the Ledgers screen first.",
		)
	}

	if m.saving {
		return lipgloss.NewStyle().Padding(2).Render("Saving...")
	}

	if m.form == nil {
		return ""
	}

	return lipgloss.NewStyle().Padding(1).Render(
		statusLine(m.status, m.err) + panelStyle.Render(titleStyle.Render("Record Asset")+"\n\n"+m.form.View()),
	)
}

// Messages

type recordLedgersMsg struct {
	ledgers []*ledger.Ledger
	err     error
}

func (m RecordFormModel) loadLedgersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ledgers, err := m.p.Ledgers(ctx)

		return recordLedgersMsg{ledgers: ledgers, err: err}
	}
}

type recordSavedMsg struct {
	status string
	err    error
}

func (m RecordFormModel) saveCmd(f recordFields) tea.Cmd {
	name := ""
	for _, l := range m.ledgers {
		if l.ID == f.ledgerID {
			name = l.Name
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.p.AddRecord(ctx, presenter.RecordInput{
			LedgerID: f.ledgerID,
			Amount:   f.amount,
			Note:     f.note,
			Period:   f.period,
			Date:     f.date,
		})
		if err != nil {
			return recordSavedMsg{err: err}
		}

		return recordSavedMsg{status: fmt.Sprintf("Recorded %s for %s.", m.p.Money().Format(r.Amount), name)}
	}
}
