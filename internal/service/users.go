// Package service holds the application logic between the CLI/TUI front ends
// and the repositories: input validation, default data, month arithmetic.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// UserService wraps profile reads and updates.
type UserService struct {
	users *storage.UserRepository
}

func NewUserService(users *storage.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// UpdateProfile applies trimmed, non-empty name changes.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*models.User, error) {
	update := models.UpdateUser{}
	if trimmed := strings.TrimSpace(firstName); trimmed != "" {
		update.FirstName = &trimmed
	}
	if trimmed := strings.TrimSpace(lastName); trimmed != "" {
		update.LastName = &trimmed
	}
	return s.users.Update(ctx, id, update)
}

// DeleteAccount removes the user and all of their data.
func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
