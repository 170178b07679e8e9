package models

import (
	"fmt"

	"github.com/spendwise/spendwise/internal/models"
)

// TransactionItem adapts a ledger entry for the bubbles list widget.
type TransactionItem struct {
	Transaction  models.Transaction
	CategoryName string
}

// Title renders the amount and merchant line.
func (i TransactionItem) Title() string {
	amount := i.Transaction.Amount.StringFixed(2)
	if i.Transaction.Store != nil {
		return fmt.Sprintf("%s  %s", amount, *i.Transaction.Store)
	}
	return amount
}

// Description renders the date, category, and note line.
func (i TransactionItem) Description() string {
	desc := i.Transaction.TransactionDate.Format("Mon Jan 2")
	if i.CategoryName != "" {
		desc += "  ·  " + i.CategoryName
	}
	if i.Transaction.Description != nil {
		desc += "  ·  " + *i.Transaction.Description
	}
	return desc
}

// FilterValue makes entries searchable by merchant and category.
func (i TransactionItem) FilterValue() string {
	value := i.CategoryName
	if i.Transaction.Store != nil {
		value += " " + *i.Transaction.Store
	}
	return value
}
