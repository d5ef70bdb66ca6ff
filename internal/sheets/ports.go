package sheets

import (
	"context"

	"gastos/internal/core"
)

// Ports for outbound report adapters.
type (
	// ReportWriter mirrors ledger rows into an external report. Upsert is
	// keyed by transaction id so replays are idempotent.
	ReportWriter interface {
		UpsertTransaction(ctx context.Context, t core.Transaction) error
	}

	// ReportDeleter removes a transaction row from the report by id.
	ReportDeleter interface {
		RemoveTransaction(ctx context.Context, id string) error
	}
)

// Report combines the full report surface used by the sync worker.
type Report interface {
	ReportWriter
	ReportDeleter
}
