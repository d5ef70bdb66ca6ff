package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gastos/internal/core"
)

// Sync states for the report pipeline.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

const transactionJoin = `
	SELECT t.id, t.description, t.amount, t.type, t.category_id, t.payment_mode,
	       t.date, t.created_at, c.name, c.label, c.icon
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t        core.Transaction
		dateStr  string
		catName  sql.NullString
		catLabel sql.NullString
		catIcon  sql.NullString
	)
	err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.CategoryID,
		&t.PaymentMode, &dateStr, &t.CreatedAt, &catName, &catLabel, &catIcon)
	if err != nil {
		return t, err
	}

	t.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return t, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}

	if catName.Valid {
		t.Category = catName.String
		t.CategoryLabel = catLabel.String
		icon := catIcon.String
		t.CategoryIcon = &icon
	} else {
		// Dangling category reference: fall back to the catch-all label.
		t.Category = core.FallbackCategory
		t.CategoryLabel = core.FallbackCategory
		t.CategoryIcon = nil
	}
	return t, nil
}

// ListTransactions returns the full ledger joined with category metadata,
// newest date first, ties broken by insertion time.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	query := transactionJoin + ` ORDER BY t.date DESC, t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

// GetTransaction returns a single joined transaction, or nil when absent.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRowContext(ctx, transactionJoin+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	return &t, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	query := `
		INSERT INTO transactions (id, description, amount, type, category_id,
		                          payment_mode, date, created_at, updated_at, sync_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Description, t.Amount, string(t.Type),
		t.CategoryID, string(t.PaymentMode), t.Date.String(), now, now, SyncPending)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", t.ID,
		"type", t.Type,
		"amount", t.Amount,
		"category_id", t.CategoryID,
		"date", t.Date.String())
	return nil
}

// UpdateTransaction overwrites every mutable field; sparse updates are not
// supported. The row goes back to pending so the report copy is refreshed.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	query := `
		UPDATE transactions
		SET description = ?, amount = ?, type = ?, category_id = ?,
		    payment_mode = ?, date = ?, updated_at = ?, sync_status = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, t.Description, t.Amount, string(t.Type),
		t.CategoryID, string(t.PaymentMode), t.Date.String(), time.Now().UTC(), SyncPending, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s not found", t.ID)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID, "amount", t.Amount)
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// CountTransactionsByCategory backs the category delete guard.
func (r *SQLiteRepository) CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	query := `SELECT COUNT(id) FROM transactions WHERE category_id = ?`
	if err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions by category: %w", err)
	}
	return count, nil
}

// TotalExpenses is the ground-truth aggregate over expense rows, computed
// in the database as a cross-check against client-side summation.
func (r *SQLiteRepository) TotalExpenses(ctx context.Context) (core.ExpenseTotal, error) {
	var total core.ExpenseTotal
	query := `SELECT COALESCE(SUM(amount), 0), COUNT(id) FROM transactions WHERE type = ?`
	if err := r.db.QueryRowContext(ctx, query, string(core.Expense)).Scan(&total.Total, &total.Count); err != nil {
		return core.ExpenseTotal{}, fmt.Errorf("aggregate expenses: %w", err)
	}
	return total, nil
}

// ListPendingSync returns ids of rows the report worker still has to mirror.
func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT id FROM transactions WHERE sync_status = ? ORDER BY created_at ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending sync: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending sync id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending sync: %w", err)
	}
	return ids, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	query := `UPDATE transactions SET sync_status = ?, synced_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, SyncDone, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	query := `UPDATE transactions SET sync_status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, SyncError, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}
