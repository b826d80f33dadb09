package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
	"github.com/MrJamesThe3rd/assetbook/internal/report"
)

// recordItem wraps a record to implement list.Item.
type recordItem struct {
	record *ledger.Record
	ledger string
	color  string
	amount string
}

func (i recordItem) Title() string {
	name := i.ledger
	if i.color != "" {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color(i.color)).Render(name)
	}

	return fmt.Sprintf("%s  %18s  %s", FormatTimestamp(i.record.CreatedAt), i.amount, name)
}

func (i recordItem) Description() string {
	parts := make([]string, 0, 2)
	if i.record.Period != "" {
		parts = append(parts, i.record.Period)
	}

	if i.record.Note != "" {
		parts = append(parts, i.record.Note)
	}

	return strings.Join(parts, " · ")
}

func (i recordItem) FilterValue() string {
	return i.ledger + " " + i.record.Period + " " + i.record.Note
}

// RecordsModel lists every record across all ledgers, newest first.
type RecordsModel struct {
	CommonModel
	p *presenter.Presenter

	list    list.Model
	loading bool
	err     error
}

func NewRecordsModel(p *presenter.Presenter) RecordsModel {
	l := list.New([]list.Item{}, recordItemDelegate{}, 80, 20)
	l.Title = "All Records"
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("record", "records")
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return RecordsModel{
		p:       p,
		list:    l,
		loading: true,
	}
}

func (m RecordsModel) Title() string { return "All Records" }

func (m RecordsModel) ShortHelp() string {
	return "Esc: back | /: filter | r: refresh"
}

func (m RecordsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRecordsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, nil
		}

		return m, m.list.SetItems(m.items(msg.all))

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "esc":
				if m.list.FilterState() == list.FilterApplied {
					break // let the list clear the filter
				}

				return m, Back
			case "r":
				m.loading = true
				return m, m.loadCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m RecordsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading records...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(statusLine("", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(m.list.View())
}

func (m RecordsModel) items(all *presenter.Records) []list.Item {
	money := m.p.Money()

	colors := make(map[int64]string, len(all.Ledgers))
	for i, l := range all.Ledgers {
		colors[l.ID] = report.Color(i)
	}

	items := make([]list.Item, len(all.Records))
	for i, r := range all.Records {
		items[i] = recordItem{
			record: r,
			ledger: all.Name(r.LedgerID),
			color:  colors[r.LedgerID],
			amount: money.Format(r.Amount),
		}
	}

	return items
}

// Messages

type loadRecordsMsg struct {
	all *presenter.Records
	err error
}

func (m RecordsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		all, err := m.p.Records(ctx)

		return loadRecordsMsg{all: all, err: err}
	}
}

// recordItemDelegate renders items in the list.
type recordItemDelegate struct{}

func (d recordItemDelegate) Height() int                             { return 2 }
func (d recordItemDelegate) Spacing() int                            { return 0 }
func (d recordItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d recordItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(recordItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	desc := i.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", faintStyle.Render(desc))
}
