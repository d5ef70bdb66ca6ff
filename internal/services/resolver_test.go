package services

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/core"
	"gastos/internal/memory"
)

func seedCategory(t *testing.T, store *memory.Store, id, name string, typ core.TransactionType) {
	t.Helper()
	err := store.CreateCategory(context.Background(), core.Category{
		ID: id, Name: name, Label: name, Type: typ,
	})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestResolveTrustsSuppliedID(t *testing.T) {
	store := memory.NewStore()
	r := NewCategoryResolver(store)

	// The id is not checked for existence at this layer.
	id, err := r.Resolve(context.Background(), strPtr("c1"), "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "c1" {
		t.Fatalf("got %q, want c1", id)
	}
}

func TestResolveExactName(t *testing.T) {
	store := memory.NewStore()
	seedCategory(t, store, "c1", "food", core.Expense)
	r := NewCategoryResolver(store)

	id, err := r.Resolve(context.Background(), nil, "food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "c1" {
		t.Fatalf("got %q, want c1", id)
	}
}

func TestResolveCaseInsensitiveFallback(t *testing.T) {
	store := memory.NewStore()
	seedCategory(t, store, "c1", "Food", core.Expense)
	r := NewCategoryResolver(store)

	id, err := r.Resolve(context.Background(), nil, "fOOd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "c1" {
		t.Fatalf("got %q, want c1", id)
	}
}

func TestResolveNotFound(t *testing.T) {
	store := memory.NewStore()
	r := NewCategoryResolver(store)

	_, err := r.Resolve(context.Background(), nil, "salary")
	if err == nil {
		t.Fatalf("expected error")
	}
	var nf *core.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if err.Error() != `Category "salary" not found` {
		t.Fatalf("got %q", err.Error())
	}
}

func TestResolveEmptyIDPointerFallsBackToName(t *testing.T) {
	store := memory.NewStore()
	seedCategory(t, store, "c1", "food", core.Expense)
	r := NewCategoryResolver(store)

	id, err := r.Resolve(context.Background(), strPtr(""), "food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "c1" {
		t.Fatalf("got %q, want c1", id)
	}
}
