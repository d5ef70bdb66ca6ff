package services

import (
	"context"
	"fmt"
	"strings"

	"gastos/internal/core"
)

// CategoryResolver maps a user-supplied category reference to a canonical
// category id. New callers should supply the id directly; the name path
// exists for backward compatibility with callers that only know the
// free-text category name.
type CategoryResolver struct {
	store CategoryStore
}

func NewCategoryResolver(store CategoryStore) *CategoryResolver {
	return &CategoryResolver{store: store}
}

// Resolve returns the category id for the given reference. A supplied id is
// trusted as-is; a dangling id surfaces later as a storage failure. Name
// resolution tries an exact match first, then a case-insensitive scan over
// the full category set (linear, fine for tens of categories).
func (r *CategoryResolver) Resolve(ctx context.Context, categoryID *string, categoryName string) (string, error) {
	if categoryID != nil && *categoryID != "" {
		return *categoryID, nil
	}

	cat, err := r.store.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return "", fmt.Errorf("look up category by name: %w", err)
	}
	if cat != nil {
		return cat.ID, nil
	}

	all, err := r.store.ListCategories(ctx)
	if err != nil {
		return "", fmt.Errorf("list categories for fallback match: %w", err)
	}
	for _, c := range all {
		if strings.EqualFold(c.Name, categoryName) {
			return c.ID, nil
		}
	}

	return "", &core.NotFoundError{Message: fmt.Sprintf("Category %q not found", categoryName)}
}
