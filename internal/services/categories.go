package services

import (
	"context"
	"fmt"

	"gastos/internal/core"

	"github.com/google/uuid"
)

// CategoryService owns the category lifecycle: validated writes, the name
// uniqueness rule, and the delete guard against referencing transactions.
type CategoryService struct {
	categories   CategoryStore
	transactions TransactionStore
}

func NewCategoryService(categories CategoryStore, transactions TransactionStore) *CategoryService {
	return &CategoryService{categories: categories, transactions: transactions}
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CategoryService) ListByType(ctx context.Context, typ core.TransactionType) ([]core.Category, error) {
	return s.categories.ListCategoriesByType(ctx, typ)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*core.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in core.CategoryInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	exists, err := s.categories.CategoryNameExists(ctx, in.Name, "")
	if err != nil {
		return "", fmt.Errorf("check category name: %w", err)
	}
	if exists {
		return "", &core.ConflictError{Message: "Category with this name already exists"}
	}

	cat := core.Category{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Label: in.Label,
		Icon:  in.CanonicalIcon(),
		Type:  in.Type,
	}
	if err := s.categories.CreateCategory(ctx, cat); err != nil {
		return "", err
	}
	return cat.ID, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in core.CategoryInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	// Uniqueness check excludes the record being updated.
	exists, err := s.categories.CategoryNameExists(ctx, in.Name, id)
	if err != nil {
		return "", fmt.Errorf("check category name: %w", err)
	}
	if exists {
		return "", &core.ConflictError{Message: "Category with this name already exists"}
	}

	cat := core.Category{
		ID:    id,
		Name:  in.Name,
		Label: in.Label,
		Icon:  in.CanonicalIcon(),
		Type:  in.Type,
	}
	if err := s.categories.UpdateCategory(ctx, cat); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a category unless transactions still reference it. The
// count check and the delete are separate statements; the window between
// them is an accepted race (see DESIGN.md).
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	count, err := s.transactions.CountTransactionsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count referencing transactions: %w", err)
	}
	if count > 0 {
		return &core.ReferenceError{Count: count}
	}

	return s.categories.DeleteCategory(ctx, id)
}
