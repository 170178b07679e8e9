package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spendwise/spendwise/internal/storage"
)

// listKeyMap holds key bindings for the ledger list actions.
type listKeyMap struct {
	addEntry  key.Binding
	prevMonth key.Binding
	nextMonth key.Binding
	quit      key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		addEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add entry"),
		),
		prevMonth: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Previous month"),
		),
		nextMonth: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next month"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// OpenAddEntryMsg asks the app model to switch to the add-entry form.
type OpenAddEntryMsg struct{}

// LedgerPageModel shows one month of entries with a summary header.
type LedgerPageModel struct {
	backend *Backend
	list    list.Model
	keys    *listKeyMap
	month   time.Time
	summary *storage.MonthlySummary
	loaded  bool
}

func NewLedgerPageModel(backend *Backend) LedgerPageModel {
	keys := newListKeyMap()
	delegate := newItemDelegate(newDelegateKeyMap())

	entryList := list.New([]list.Item{}, delegate, 0, 0)
	entryList.Title = "SpendWise"
	entryList.Styles.Title = titleStyle
	entryList.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.addEntry, keys.prevMonth, keys.nextMonth}
	}

	return LedgerPageModel{
		backend: backend,
		list:    entryList,
		keys:    keys,
		month:   time.Now().UTC(),
	}
}

func (m LedgerPageModel) Init() tea.Cmd {
	return loadMonthCmd(m.backend, m.month)
}

func (m LedgerPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthLoadedMsg:
		m.month = msg.month
		m.summary = msg.summary
		m.loaded = true
		items := make([]list.Item, len(msg.items))
		for i, item := range msg.items {
			items[i] = item
		}
		return m, m.list.SetItems(items)

	case deleteRequestMsg:
		return m, deleteEntryCmd(m.backend, msg.id)

	case entryDeletedMsg:
		cmd := m.list.NewStatusMessage(statusMessageStyle("Entry deleted"))
		return m, tea.Batch(cmd, loadMonthCmd(m.backend, m.month))

	case errMsg:
		return m, m.list.NewStatusMessage(errorMessageStyle(msg.err.Error()))

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.addEntry):
			return m, func() tea.Msg { return OpenAddEntryMsg{} }
		case key.Matches(msg, m.keys.prevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			return m, loadMonthCmd(m.backend, m.month)
		case key.Matches(msg, m.keys.nextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			return m, loadMonthCmd(m.backend, m.month)
		}

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m LedgerPageModel) View() string {
	return docStyle.Render(m.headerView() + "\n" + m.list.View())
}

func (m LedgerPageModel) headerView() string {
	label := m.month.Format("January 2006")
	if !m.loaded || m.summary == nil {
		return summaryStyle.Render(label)
	}
	return summaryStyle.Render(fmt.Sprintf("%s   %s %s   %s %s   net %s",
		label,
		incomeStyle.Render("in"), m.summary.Income.StringFixed(2),
		expenseStyle.Render("out"), m.summary.Expenses.StringFixed(2),
		m.summary.Net.StringFixed(2),
	))
}
