package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/logger"
	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// ErrCategoryExists is returned when creating a category whose name the user
// already has.
var ErrCategoryExists = errors.New("category already exists")

type defaultCategory struct {
	name     string
	icon     string
	isIncome bool
}

// defaultCategories seed a fresh account so the first transaction has
// somewhere to go.
var defaultCategories = []defaultCategory{
	{name: "Supermarket", icon: "cart"},
	{name: "Fuel", icon: "gas-pump"},
	{name: "Entertainment", icon: "film"},
	{name: "Bills", icon: "file-invoice"},
	{name: "Dining", icon: "utensils"},
	{name: "Shopping", icon: "bag"},
	{name: "Healthcare", icon: "heart"},
	{name: "Transport", icon: "bus"},
	{name: "Other"},
	{name: "Salary", icon: "briefcase", isIncome: true},
	{name: "Other Income", icon: "plus", isIncome: true},
}

// CategoryService validates and manages transaction categories.
type CategoryService struct {
	categories *storage.CategoryRepository
}

func NewCategoryService(categories *storage.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category after trimming and uniqueness checks.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, name, icon string, isIncome bool) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name must not be empty")
	}

	existing, err := s.categories.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryExists, name)
	}

	var iconPtr *string
	if icon = strings.TrimSpace(icon); icon != "" {
		iconPtr = &icon
	}
	return s.categories.Create(ctx, models.CreateCategory{
		UserID:   userID,
		Name:     name,
		Icon:     iconPtr,
		IsIncome: isIncome,
	})
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.categories.Delete(ctx, userID, id)
}

// ResolveByName finds a category by its exact name, (nil, nil) when absent.
func (s *CategoryService) ResolveByName(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	return s.categories.FindByName(ctx, userID, strings.TrimSpace(name))
}

// SeedDefaults populates the starter categories for an account that has none.
// Idempotent: an account with any categories is left alone.
func (s *CategoryService) SeedDefaults(ctx context.Context, userID uuid.UUID) error {
	count, err := s.categories.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, def := range defaultCategories {
		var iconPtr *string
		if def.icon != "" {
			icon := def.icon
			iconPtr = &icon
		}
		_, err := s.categories.Create(ctx, models.CreateCategory{
			UserID:   userID,
			Name:     def.name,
			Icon:     iconPtr,
			IsIncome: def.isIncome,
		})
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", def.name, err)
		}
	}
	logger.Info("seeded default categories")
	return nil
}
