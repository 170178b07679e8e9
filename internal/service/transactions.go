package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// ErrZeroAmount is returned for entries that would not move the balance.
var ErrZeroAmount = errors.New("transaction amount must not be zero")

// AddTransaction is the validated input for recording a ledger entry.
type AddTransaction struct {
	Amount       decimal.Decimal
	CategoryName string
	Store        string
	Description  string
	Date         time.Time
}

// TransactionService validates and records ledger entries.
type TransactionService struct {
	transactions *storage.TransactionRepository
	categories   *storage.CategoryRepository
}

func NewTransactionService(transactions *storage.TransactionRepository, categories *storage.CategoryRepository) *TransactionService {
	return &TransactionService{transactions: transactions, categories: categories}
}

// Add records a manual entry. The category is optional and matched by name;
// naming an unknown category is an error rather than a silent uncategorized
// entry.
func (s *TransactionService) Add(ctx context.Context, userID uuid.UUID, in AddTransaction) (*models.Transaction, error) {
	if in.Amount.IsZero() {
		return nil, ErrZeroAmount
	}

	var categoryID *uuid.UUID
	if in.CategoryName != "" {
		category, err := s.categories.FindByName(ctx, userID, in.CategoryName)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("unknown category %q", in.CategoryName)
		}
		categoryID = &category.ID
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var store, description *string
	if in.Store != "" {
		store = &in.Store
	}
	if in.Description != "" {
		description = &in.Description
	}

	return s.transactions.Create(ctx, models.CreateTransaction{
		UserID:          userID,
		CategoryID:      categoryID,
		Amount:          in.Amount,
		Store:           store,
		Description:     description,
		Source:          models.SourceManual,
		TransactionDate: date,
	})
}

// RecordImported stores an entry imported from an email receipt, skipping
// messages that were already recorded. Returns (nil, nil) for a duplicate.
func (s *TransactionService) RecordImported(ctx context.Context, userID uuid.UUID, in models.CreateTransaction) (*models.Transaction, error) {
	if in.Amount.IsZero() {
		return nil, ErrZeroAmount
	}
	if in.EmailMessageID != nil {
		existing, err := s.transactions.FindByEmailMessageID(ctx, userID, *in.EmailMessageID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, nil
		}
	}
	in.UserID = userID
	return s.transactions.Create(ctx, in)
}

// UpdateTransaction carries optional edits; nil fields are left unchanged.
// An empty CategoryName detaches the entry from its category.
type UpdateTransaction struct {
	Amount       *decimal.Decimal
	CategoryName *string
	Store        *string
	Description  *string
	Date         *time.Time
}

// Update applies the non-nil fields of in to the user's entry.
func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateTransaction) (*models.Transaction, error) {
	entry, err := s.transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("transaction %s not found", id)
	}

	if in.Amount != nil {
		if in.Amount.IsZero() {
			return nil, ErrZeroAmount
		}
		entry.Amount = *in.Amount
	}
	if in.CategoryName != nil {
		if *in.CategoryName == "" {
			entry.CategoryID = nil
		} else {
			category, err := s.categories.FindByName(ctx, userID, *in.CategoryName)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, fmt.Errorf("unknown category %q", *in.CategoryName)
			}
			entry.CategoryID = &category.ID
		}
	}
	if in.Store != nil {
		if *in.Store == "" {
			entry.Store = nil
		} else {
			entry.Store = in.Store
		}
	}
	if in.Description != nil {
		if *in.Description == "" {
			entry.Description = nil
		} else {
			entry.Description = in.Description
		}
	}
	if in.Date != nil {
		entry.TransactionDate = *in.Date
	}

	if err := s.transactions.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListMonth returns the entries for the calendar month containing ref, in UTC.
func (s *TransactionService) ListMonth(ctx context.Context, userID uuid.UUID, ref time.Time) ([]models.Transaction, error) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return s.transactions.List(ctx, userID, models.TransactionFilter{StartDate: &start, EndDate: &end})
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	return s.transactions.List(ctx, userID, filter)
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.transactions.Delete(ctx, userID, id)
}

// Summary aggregates the calendar month containing ref.
func (s *TransactionService) Summary(ctx context.Context, userID uuid.UUID, ref time.Time) (*storage.MonthlySummary, error) {
	return s.transactions.Summarize(ctx, userID, ref.Year(), ref.Month())
}
