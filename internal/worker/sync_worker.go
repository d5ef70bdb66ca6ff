package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/sheets"
)

// SyncStore is the slice of the ledger the worker needs: fetching rows and
// tracking their report sync state.
type SyncStore interface {
	GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
	ListPendingSync(ctx context.Context, limit int) ([]string, error)
	MarkSynced(ctx context.Context, id string) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker mirrors ledger rows into the external report. It consumes queue
// messages and periodically sweeps rows still marked pending, so a lost
// message never strands a transaction.
type SyncWorker struct {
	store     SyncStore
	report    sheets.Report
	batchSize int
}

func NewSyncWorker(store SyncStore, report sheets.Report, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		report:    report,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single queue message.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.Message) error {
	switch msg.Kind {
	case amqp.KindSync:
		return w.syncTransaction(ctx, msg.ID)
	case amqp.KindDelete:
		return w.deleteTransaction(ctx, msg.ID)
	default:
		// Unknown kinds are dropped rather than requeued forever.
		slog.WarnContext(ctx, "Ignoring message with unknown kind", "kind", msg.Kind, "id", msg.ID)
		return nil
	}
}

func (w *SyncWorker) syncTransaction(ctx context.Context, id string) error {
	t, err := w.store.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}
	if t == nil {
		// Deleted between publish and consume; the delete message handles the report side.
		slog.InfoContext(ctx, "Transaction gone before sync, skipping", "id", id)
		return nil
	}

	if err := w.report.UpsertTransaction(ctx, *t); err != nil {
		if markErr := w.store.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("upsert report row: %w", err)
	}

	if err := w.store.MarkSynced(ctx, id); err != nil {
		// The report write succeeded; don't fail the message over bookkeeping.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Synced transaction to report", "id", id)
	return nil
}

func (w *SyncWorker) deleteTransaction(ctx context.Context, id string) error {
	if err := w.report.RemoveTransaction(ctx, id); err != nil {
		return fmt.Errorf("remove report row: %w", err)
	}
	slog.InfoContext(ctx, "Removed transaction from report", "id", id)
	return nil
}

// ProcessPending sweeps one batch of rows still marked pending. This is the
// catch-up path for messages lost while the worker was down.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	ids, err := w.store.ListPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending sync: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(ids))

	for _, id := range ids {
		if err := w.syncTransaction(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending transaction", "id", id, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck drains a larger pending backlog once at worker startup.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	ids, err := w.store.ListPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list pending sync for startup check: %w", err)
	}
	if len(ids) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...", "count", len(ids))

	synced := 0
	failed := 0
	for _, id := range ids {
		if err := w.syncTransaction(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup", "id", id, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(ids),
		"synced", synced,
		"errors", failed)
	return nil
}
