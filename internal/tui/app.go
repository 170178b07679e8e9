package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/service"
)

// AppModel is the main application model that manages page switching
type AppModel struct {
	ledger  LedgerPageModel
	addForm AddEntryModel
	page    string // "ledger" or "add"
}

// NewAppModel creates the TUI for the signed-in user.
func NewAppModel(transactions *service.TransactionService, categories *service.CategoryService, user *models.User) AppModel {
	backend := &Backend{
		Transactions: transactions,
		Categories:   categories,
		User:         user,
	}
	return AppModel{
		ledger:  NewLedgerPageModel(backend),
		addForm: NewAddEntryModel(backend),
		page:    "ledger",
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.ledger.Init()
}

// Update handles app-level messages and delegates to the active page.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenAddEntryMsg:
		m.page = "add"
		m.addForm = m.addForm.Reset()
		return m, m.addForm.Init()

	case BackToLedgerMsg:
		m.page = "ledger"
		return m, nil

	case entryAddedMsg:
		m.page = "ledger"
		return m, m.ledger.Init()

	case tea.WindowSizeMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		var tempModel tea.Model

		tempModel, cmd = m.ledger.Update(msg)
		m.ledger = tempModel.(LedgerPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.addForm.Update(msg)
		m.addForm = tempModel.(AddEntryModel)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	var tempModel tea.Model
	switch m.page {
	case "add":
		tempModel, cmd = m.addForm.Update(msg)
		m.addForm = tempModel.(AddEntryModel)
	default:
		tempModel, cmd = m.ledger.Update(msg)
		m.ledger = tempModel.(LedgerPageModel)
	}
	return m, cmd
}

// View renders the active page
func (m AppModel) View() string {
	if m.page == "add" {
		return m.addForm.View()
	}
	return m.ledger.View()
}
