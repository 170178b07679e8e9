package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spendwise/spendwise/internal/models"
)

// TransactionRepository stores ledger entries.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, in models.CreateTransaction) (*models.Transaction, error) {
	tx := models.Transaction{
		ID:              uuid.New(),
		UserID:          in.UserID,
		CategoryID:      in.CategoryID,
		Amount:          in.Amount,
		Store:           in.Store,
		Description:     in.Description,
		Source:          in.Source,
		EmailMessageID:  in.EmailMessageID,
		TransactionDate: in.TransactionDate,
		CreatedAt:       time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &tx, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}
	return &tx, nil
}

// FindByEmailMessageID locates an imported entry by its source message so
// the importer can skip receipts it has already recorded.
func (r *TransactionRepository) FindByEmailMessageID(ctx context.Context, userID uuid.UUID, messageID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND email_message_id = ?", userID, messageID).
		Take(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}
	return &tx, nil
}

// List returns the user's entries newest first, narrowed by filter.
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date < ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var txs []models.Transaction
	if err := query.Order("transaction_date DESC, created_at DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// Update persists changes to an existing entry. The entry must belong to the
// user; a moved or missing id is an error.
func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Select("category_id", "amount", "store", "description", "transaction_date").
		Updates(map[string]any{
			"category_id":      tx.CategoryID,
			"amount":           tx.Amount,
			"store":            tx.Store,
			"description":      tx.Description,
			"transaction_date": tx.TransactionDate,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("transaction %s not found", tx.ID)
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

// CategoryTotal is one row of a monthly summary.
type CategoryTotal struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Total        decimal.Decimal
	Count        int
}

// MonthlySummary aggregates a user's month: totals per category plus overall
// income and spend.
type MonthlySummary struct {
	Year       int
	Month      time.Month
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Net        decimal.Decimal
	Categories []CategoryTotal
}

// Summarize builds the summary for the calendar month containing the given
// year and month, in UTC. Amounts are stored as decimal strings, so the sums
// are computed here rather than in SQL.
func (r *TransactionRepository) Summarize(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*MonthlySummary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	txs, err := r.List(ctx, userID, models.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	summary := &MonthlySummary{Year: year, Month: month}
	totals := map[string]*CategoryTotal{}
	order := []string{}

	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			summary.Income = summary.Income.Add(tx.Amount)
		} else {
			summary.Expenses = summary.Expenses.Add(tx.Amount.Neg())
		}

		key := ""
		name := "Uncategorized"
		if tx.CategoryID != nil {
			key = tx.CategoryID.String()
			if n, ok := names[*tx.CategoryID]; ok {
				name = n
			}
		}
		entry, ok := totals[key]
		if !ok {
			entry = &CategoryTotal{CategoryID: tx.CategoryID, CategoryName: name}
			totals[key] = entry
			order = append(order, key)
		}
		entry.Total = entry.Total.Add(tx.Amount)
		entry.Count++
	}

	summary.Net = summary.Income.Sub(summary.Expenses)
	for _, key := range order {
		summary.Categories = append(summary.Categories, *totals[key])
	}
	return summary, nil
}
