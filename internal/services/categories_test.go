package services

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/core"
	"gastos/internal/memory"
)

func newCategoryService() (*CategoryService, *memory.Store) {
	store := memory.NewStore()
	return NewCategoryService(store, store), store
}

func TestCategoryCreate(t *testing.T) {
	svc, store := newCategoryService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.CategoryInput{Name: "food", Label: "Food & Dining", Type: core.Expense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	got, err := store.GetCategory(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("category not stored: %v", err)
	}
	if got.Icon != "" {
		t.Fatalf("expected empty icon as canonical no-icon value, got %q", got.Icon)
	}
}

func TestCategoryCreateValidation(t *testing.T) {
	svc, _ := newCategoryService()

	_, err := svc.Create(context.Background(), core.CategoryInput{Label: "x", Type: core.Expense})
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.CategoryInput{Name: "food", Label: "Food", Type: core.Expense}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same name, even across types, is a conflict.
	_, err := svc.Create(ctx, core.CategoryInput{Name: "food", Label: "Other", Type: core.Income})
	var ce *core.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if err.Error() != "Category with this name already exists" {
		t.Fatalf("got %q", err.Error())
	}

	// A different name is fine. Uniqueness is case-sensitive on write.
	if _, err := svc.Create(ctx, core.CategoryInput{Name: "Food", Label: "Other", Type: core.Income}); err != nil {
		t.Fatalf("create with different case: %v", err)
	}
}

func TestCategoryUpdateExcludesSelfFromUniqueness(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.CategoryInput{Name: "food", Label: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, core.CategoryInput{Name: "gas", Label: "Gas", Type: core.Expense}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Keeping its own name is not a conflict.
	if _, err := svc.Update(ctx, id, core.CategoryInput{Name: "food", Label: "Food & Dining", Type: core.Expense}); err != nil {
		t.Fatalf("update keeping name: %v", err)
	}

	// Taking another category's name is.
	_, err = svc.Update(ctx, id, core.CategoryInput{Name: "gas", Label: "Food", Type: core.Expense})
	var ce *core.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCategoryDeleteGuard(t *testing.T) {
	svc, store := newCategoryService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.CategoryInput{Name: "food", Label: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	d, _ := core.ParseDate("2026-01-01")
	for i := 0; i < 3; i++ {
		err := store.CreateTransaction(ctx, core.Transaction{
			ID: string(rune('a' + i)), Description: "t", Amount: 1,
			Type: core.Expense, CategoryID: id, PaymentMode: core.Cash, Date: d,
		})
		if err != nil {
			t.Fatalf("seed transaction: %v", err)
		}
	}

	err = svc.Delete(ctx, id)
	var re *core.ReferenceError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if re.Count != 3 {
		t.Fatalf("expected count 3, got %d", re.Count)
	}
	if err.Error() != "Cannot delete category: it is used in 3 transaction(s)" {
		t.Fatalf("got %q", err.Error())
	}

	// Category must still exist after the blocked delete.
	if got, _ := store.GetCategory(ctx, id); got == nil {
		t.Fatalf("category was deleted despite guard")
	}
}

func TestCategoryDeleteUnreferenced(t *testing.T) {
	svc, store := newCategoryService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.CategoryInput{Name: "food", Label: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.GetCategory(ctx, id); got != nil {
		t.Fatalf("category still present after delete")
	}
}
