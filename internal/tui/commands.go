package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/service"
	"github.com/spendwise/spendwise/internal/storage"
	tuimodels "github.com/spendwise/spendwise/internal/tui/models"
)

// Backend bundles what every page needs: the services and the signed-in user.
type Backend struct {
	Transactions *service.TransactionService
	Categories   *service.CategoryService
	User         *models.User
}

type monthLoadedMsg struct {
	month   time.Time
	items   []tuimodels.TransactionItem
	summary *storage.MonthlySummary
}

type entryAddedMsg struct{}

type entryDeletedMsg struct{}

type errMsg struct {
	err error
}

// loadMonthCmd fetches the entries and summary for the month containing ref.
func loadMonthCmd(backend *Backend, ref time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		entries, err := backend.Transactions.ListMonth(ctx, backend.User.ID, ref)
		if err != nil {
			return errMsg{err}
		}
		summary, err := backend.Transactions.Summary(ctx, backend.User.ID, ref)
		if err != nil {
			return errMsg{err}
		}

		categories, err := backend.Categories.List(ctx, backend.User.ID)
		if err != nil {
			return errMsg{err}
		}
		names := make(map[uuid.UUID]string, len(categories))
		for _, c := range categories {
			names[c.ID] = c.Name
		}

		items := make([]tuimodels.TransactionItem, 0, len(entries))
		for _, entry := range entries {
			name := ""
			if entry.CategoryID != nil {
				name = names[*entry.CategoryID]
			}
			items = append(items, tuimodels.TransactionItem{Transaction: entry, CategoryName: name})
		}
		return monthLoadedMsg{month: ref, items: items, summary: summary}
	}
}

func addEntryCmd(backend *Backend, amount decimal.Decimal, category, store, description string, date time.Time) tea.Cmd {
	return func() tea.Msg {
		_, err := backend.Transactions.Add(context.Background(), backend.User.ID, service.AddTransaction{
			Amount:       amount,
			CategoryName: category,
			Store:        store,
			Description:  description,
			Date:         date,
		})
		if err != nil {
			return errMsg{err}
		}
		return entryAddedMsg{}
	}
}

func deleteEntryCmd(backend *Backend, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		if err := backend.Transactions.Delete(context.Background(), backend.User.ID, id); err != nil {
			return errMsg{err}
		}
		return entryDeletedMsg{}
	}
}
