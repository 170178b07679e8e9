package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a local account linked to a Google identity.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey" json:"id"`
	GoogleID  string    `gorm:"column:google_id;uniqueIndex;not null" json:"google_id"`
	Email     string    `gorm:"column:email;index;not null" json:"email"`
	FirstName string    `gorm:"column:f_name;not null" json:"f_name"`
	LastName  string    `gorm:"column:l_name;not null" json:"l_name"`
	PhotoURL  *string   `gorm:"column:photo_url" json:"photo_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// CreateUser is the input for creating a local user from provider identity.
type CreateUser struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
	PhotoURL  *string
}

// UpdateUser carries optional profile updates; nil fields are left unchanged.
type UpdateUser struct {
	FirstName *string
	LastName  *string
	PhotoURL  *string
}
