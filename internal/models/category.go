package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups transactions; income categories count toward earnings.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:text;index;not null" json:"user_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Icon      *string   `gorm:"column:icon" json:"icon,omitempty"`
	IsIncome  bool      `gorm:"column:is_income;not null" json:"is_income"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

type CreateCategory struct {
	UserID   uuid.UUID
	Name     string
	Icon     *string
	IsIncome bool
}
