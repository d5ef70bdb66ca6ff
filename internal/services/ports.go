package services

import (
	"context"

	"gastos/internal/core"
)

// Store ports for the persistence layer. The SQLite repository is the
// production implementation; the memory store backs tests and the memory
// backend.
type (
	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		ListCategoriesByType(ctx context.Context, typ core.TransactionType) ([]core.Category, error)
		GetCategory(ctx context.Context, id string) (*core.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*core.Category, error)
		CategoryNameExists(ctx context.Context, name, excludeID string) (bool, error)
		CreateCategory(ctx context.Context, cat core.Category) error
		UpdateCategory(ctx context.Context, cat core.Category) error
		DeleteCategory(ctx context.Context, id string) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) error
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id string) error
		CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error)
		TotalExpenses(ctx context.Context) (core.ExpenseTotal, error)
	}

	// Store is the full ledger surface a backend must provide.
	Store interface {
		CategoryStore
		TransactionStore
	}

	// SyncPublisher notifies the report pipeline about ledger writes.
	// Implementations must not fail the originating request.
	SyncPublisher interface {
		PublishTransactionSync(ctx context.Context, id string) error
		PublishTransactionDelete(ctx context.Context, id string) error
	}
)
