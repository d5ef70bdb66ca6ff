package services

import (
	"context"
	"log/slog"

	"gastos/internal/core"

	"github.com/google/uuid"
)

// TransactionService orchestrates ledger writes (validate, resolve the
// category reference, persist, notify the report pipeline) and composes the
// derived statistics from the transaction list.
type TransactionService struct {
	store     Store
	resolver  *CategoryResolver
	publisher SyncPublisher
}

// NewTransactionService wires the service. publisher may be nil, in which
// case report sync is disabled and writes stay local.
func NewTransactionService(store Store, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		resolver:  NewCategoryResolver(store),
		publisher: publisher,
	}
}

func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *TransactionService) Get(ctx context.Context, id string) (*core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) Create(ctx context.Context, in core.TransactionInput) (string, error) {
	tx, err := s.buildTransaction(ctx, uuid.NewString(), in)
	if err != nil {
		return "", err
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return "", err
	}

	s.publishSync(ctx, tx.ID)
	return tx.ID, nil
}

// Update overwrites all mutable fields; every field is resupplied.
func (s *TransactionService) Update(ctx context.Context, id string, in core.TransactionInput) (string, error) {
	tx, err := s.buildTransaction(ctx, id, in)
	if err != nil {
		return "", err
	}

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return "", err
	}

	s.publishSync(ctx, id)
	return id, nil
}

// Delete is unguarded, unlike category deletion; reference integrity of the
// row itself is the storage engine's concern.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionDelete(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message", "id", id, "error", err)
		}
	}
	return nil
}

func (s *TransactionService) buildTransaction(ctx context.Context, id string, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}

	categoryID, err := s.resolver.Resolve(ctx, in.CategoryID, in.Category)
	if err != nil {
		return core.Transaction{}, err
	}

	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Transaction{}, &core.ValidationError{Violations: []string{"Date must be a valid date (YYYY-MM-DD)"}}
	}

	return core.Transaction{
		ID:          id,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		CategoryID:  categoryID,
		PaymentMode: in.PaymentMode,
		Date:        date,
	}, nil
}

// publishSync hands the row to the report pipeline. Publish failures are
// logged and swallowed; the write already succeeded locally.
func (s *TransactionService) publishSync(ctx context.Context, id string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Report sync disabled, skipping publish", "id", id)
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}

// MonthlyStats returns the income/expense trend for the six most recent
// months with activity, oldest first.
func (s *TransactionService) MonthlyStats(ctx context.Context) ([]core.MonthlyPoint, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return core.MonthlyStats(txs), nil
}

// CategoryStats returns the expense breakdown per category.
func (s *TransactionService) CategoryStats(ctx context.Context) ([]core.CategoryStat, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return core.CategoryStats(txs), nil
}

// PaymentModeStats returns the cash-flow summary for all four modes.
func (s *TransactionService) PaymentModeStats(ctx context.Context) ([]core.PaymentModeStat, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return core.PaymentModeStats(txs), nil
}

// TotalExpenses is the database-side aggregate cross-check.
func (s *TransactionService) TotalExpenses(ctx context.Context) (core.ExpenseTotal, error) {
	return s.store.TotalExpenses(ctx)
}
