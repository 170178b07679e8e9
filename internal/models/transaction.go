package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceManual marks entries typed in by the user, as opposed to imports.
const SourceManual = "manual"

// Transaction is a single ledger entry. Amount is positive for income and
// negative for expenses.
type Transaction struct {
	ID              uuid.UUID       `gorm:"column:id;type:text;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"column:user_id;type:text;index;not null" json:"user_id"`
	CategoryID      *uuid.UUID      `gorm:"column:category_id;type:text;index" json:"category_id,omitempty"`
	Amount          decimal.Decimal `gorm:"column:amount;type:text;not null" json:"amount"`
	Store           *string         `gorm:"column:store" json:"store,omitempty"`
	Description     *string         `gorm:"column:description" json:"description,omitempty"`
	Source          string          `gorm:"column:source;not null" json:"source"`
	EmailMessageID  *string         `gorm:"column:email_message_id;index" json:"email_message_id,omitempty"`
	TransactionDate time.Time       `gorm:"column:transaction_date;index;not null" json:"transaction_date"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type CreateTransaction struct {
	UserID          uuid.UUID
	CategoryID      *uuid.UUID
	Amount          decimal.Decimal
	Store           *string
	Description     *string
	Source          string
	EmailMessageID  *string
	TransactionDate time.Time
}

// TransactionFilter narrows ledger queries; zero values are ignored.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}
