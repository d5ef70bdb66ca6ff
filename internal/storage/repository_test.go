package storage

import (
	"context"
	"path/filepath"
	"testing"

	"gastos/internal/core"

	"github.com/google/uuid"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gastos.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedCategory(t *testing.T, repo *SQLiteRepository, name string, typ core.TransactionType) core.Category {
	t.Helper()
	cat := core.Category{
		ID:    uuid.NewString(),
		Name:  name,
		Label: name,
		Icon:  "",
		Type:  typ,
	}
	if err := repo.CreateCategory(context.Background(), cat); err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return cat
}

func seedTransaction(t *testing.T, repo *SQLiteRepository, categoryID, date string, typ core.TransactionType, amount float64) core.Transaction {
	t.Helper()
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Description: "seed",
		Amount:      amount,
		Type:        typ,
		CategoryID:  categoryID,
		PaymentMode: core.Cash,
		Date:        d,
	}
	if err := repo.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return tx
}

func TestCategoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := seedCategory(t, repo, "food", core.Expense)

	got, err := repo.GetCategory(ctx, created.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got == nil || got.Name != "food" || got.Type != core.Expense {
		t.Fatalf("unexpected category: %+v", got)
	}

	byName, err := repo.GetCategoryByName(ctx, "food")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("unexpected category by name: %+v", byName)
	}

	missing, err := repo.GetCategory(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing category: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing category, got %+v", missing)
	}
}

func TestCategoryNameExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "food", core.Expense)

	exists, err := repo.CategoryNameExists(ctx, "food", "")
	if err != nil {
		t.Fatalf("check name: %v", err)
	}
	if !exists {
		t.Fatalf("expected name to exist")
	}

	// Excluding the owning record itself must not count as a conflict.
	exists, err = repo.CategoryNameExists(ctx, "food", cat.ID)
	if err != nil {
		t.Fatalf("check name excluding self: %v", err)
	}
	if exists {
		t.Fatalf("expected no conflict when excluding self")
	}

	// Lookup is case-sensitive at this layer.
	exists, err = repo.CategoryNameExists(ctx, "FOOD", "")
	if err != nil {
		t.Fatalf("check name case: %v", err)
	}
	if exists {
		t.Fatalf("expected case-sensitive name check")
	}
}

func TestListCategoriesOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedCategory(t, repo, "gas", core.Expense)
	seedCategory(t, repo, "food", core.Expense)
	seedCategory(t, repo, "salary", core.Income)

	all, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(all))
	}
	// type asc (expense < income), then label asc.
	if all[0].Name != "food" || all[1].Name != "gas" || all[2].Name != "salary" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].Name, all[1].Name, all[2].Name)
	}

	expenses, err := repo.ListCategoriesByType(ctx, core.Expense)
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(expenses) != 2 || expenses[0].Name != "food" {
		t.Fatalf("unexpected expense categories: %+v", expenses)
	}
}

func TestTransactionListJoinsAndOrders(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	food := core.Category{ID: uuid.NewString(), Name: "food", Label: "Food & Dining", Icon: "🍔", Type: core.Expense}
	if err := repo.CreateCategory(ctx, food); err != nil {
		t.Fatalf("create category: %v", err)
	}

	older := seedTransaction(t, repo, food.ID, "2026-01-10", core.Expense, 20)
	first := seedTransaction(t, repo, food.ID, "2026-01-15", core.Expense, 12.50)
	// Same day as first but inserted later: wins the tie-break.
	second := seedTransaction(t, repo, food.ID, "2026-01-15", core.Expense, 5)

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].ID != second.ID || txs[1].ID != first.ID || txs[2].ID != older.ID {
		t.Fatalf("unexpected order: %s, %s, %s", txs[0].ID, txs[1].ID, txs[2].ID)
	}

	got := txs[1]
	if got.Category != "food" || got.CategoryLabel != "Food & Dining" {
		t.Fatalf("unexpected join: %+v", got)
	}
	if got.CategoryIcon == nil || *got.CategoryIcon != "🍔" {
		t.Fatalf("unexpected icon: %v", got.CategoryIcon)
	}
	if got.Amount != 12.50 || got.Date.String() != "2026-01-15" {
		t.Fatalf("unexpected fields: %+v", got)
	}
}

func TestCreateTransactionDanglingCategoryRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	d, _ := core.ParseDate("2026-01-01")
	err := repo.CreateTransaction(ctx, core.Transaction{
		ID:          uuid.NewString(),
		Description: "orphan",
		Amount:      10,
		Type:        core.Expense,
		CategoryID:  "no-such-category",
		PaymentMode: core.Cash,
		Date:        d,
	})
	if err == nil {
		t.Fatalf("expected foreign key failure for dangling category reference")
	}
}

func TestTransactionMissingCategoryFallback(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "food", core.Expense)
	tx := seedTransaction(t, repo, cat.ID, "2026-01-01", core.Expense, 10)

	// A dangling reference cannot be inserted, but the read path must still
	// tolerate one (the accepted category-delete race). Break the reference
	// out-of-band with enforcement off for that connection.
	conn, err := repo.db.Conn(ctx)
	if err != nil {
		t.Fatalf("open connection: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		t.Fatalf("disable foreign keys: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `UPDATE transactions SET category_id = 'ghost' WHERE id = ?`, tx.ID); err != nil {
		t.Fatalf("break reference: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close connection: %v", err)
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Category != core.FallbackCategory || txs[0].CategoryLabel != core.FallbackCategory {
		t.Fatalf("expected fallback category, got %+v", txs[0])
	}
	if txs[0].CategoryIcon != nil {
		t.Fatalf("expected nil icon for missing category")
	}
}

func TestTransactionUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "food", core.Expense)
	tx := seedTransaction(t, repo, cat.ID, "2026-01-15", core.Expense, 12.50)

	tx.Description = "Dinner"
	tx.Amount = 30
	if err := repo.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Description != "Dinner" || got.Amount != 30 {
		t.Fatalf("unexpected transaction after update: %+v", got)
	}

	if err := repo.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, tx.ID); err == nil {
		t.Fatalf("expected error deleting missing transaction")
	}
}

func TestCountTransactionsByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "food", core.Expense)
	other := seedCategory(t, repo, "gas", core.Expense)
	seedTransaction(t, repo, cat.ID, "2026-01-01", core.Expense, 10)
	seedTransaction(t, repo, cat.ID, "2026-01-02", core.Expense, 20)

	count, err := repo.CountTransactionsByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}

	count, err = repo.CountTransactionsByCategory(ctx, other.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
}

func TestTotalExpenses(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	empty, err := repo.TotalExpenses(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if empty.Total != 0 || empty.Count != 0 {
		t.Fatalf("expected zero aggregate, got %+v", empty)
	}

	cat := seedCategory(t, repo, "food", core.Expense)
	seedTransaction(t, repo, cat.ID, "2026-01-01", core.Expense, 100)
	seedTransaction(t, repo, cat.ID, "2026-01-02", core.Expense, 400)
	seedTransaction(t, repo, cat.ID, "2026-01-03", core.Income, 999)

	total, err := repo.TotalExpenses(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if total.Total != 500 || total.Count != 2 {
		t.Fatalf("expected {500 2}, got %+v", total)
	}
}

func TestPendingSyncLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "food", core.Expense)
	tx := seedTransaction(t, repo, cat.ID, "2026-01-01", core.Expense, 10)

	ids, err := repo.ListPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(ids) != 1 || ids[0] != tx.ID {
		t.Fatalf("expected pending %s, got %v", tx.ID, ids)
	}

	if err := repo.MarkSynced(ctx, tx.ID); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	ids, err = repo.ListPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no pending rows, got %v", ids)
	}

	// Updating a row sends it back through the pipeline.
	if err := repo.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("update: %v", err)
	}
	ids, err = repo.ListPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected row pending again, got %v", ids)
	}
}
