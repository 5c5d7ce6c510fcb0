package services

import (
	"context"

	"contas/internal/core"
	"contas/internal/storage"
)

// CategoryService manages the per-account category registry.
type CategoryService struct {
	storage *storage.SQLiteRepository
}

func NewCategoryService(storage *storage.SQLiteRepository) *CategoryService {
	return &CategoryService{storage: storage}
}

func (s *CategoryService) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, core.InvalidErr("category", err)
	}
	if _, err := s.storage.GetAccount(ctx, c.AccountID); err != nil {
		return core.Category{}, err
	}
	return s.storage.CreateCategory(ctx, c)
}

// ListCategories returns categories grouped for display: income
// categories first, then expenses, alphabetical within each group.
func (s *CategoryService) ListCategories(ctx context.Context, accountID int64) ([]core.Category, error) {
	return s.storage.ListCategories(ctx, accountID)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, c core.Category) error {
	existing, err := s.storage.GetCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	// Type is fixed at creation; only presentation fields change.
	c.Type = existing.Type
	c.AccountID = existing.AccountID
	if err := c.Validate(); err != nil {
		return core.InvalidErr("category", err)
	}
	return s.storage.UpdateCategory(ctx, c)
}

// DeleteCategory removes the category. Transactions that referenced
// it keep their history and simply become uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return s.storage.DeleteCategory(ctx, id)
}
