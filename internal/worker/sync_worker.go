package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contas/internal/amqp"
	"contas/internal/core"
	"contas/internal/sheets"
	"contas/internal/storage"
)

// SyncWorker exports ledger transactions from SQLite to the
// spreadsheet. AMQP messages drive the common path; the pending sweep
// is the backup for lost messages and worker downtime.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.EntryWriter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.EntryWriter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "transaction_id", msg.TransactionID)

	transaction, err := w.storage.GetTransaction(ctx, msg.TransactionID)
	if err != nil {
		var notFound *core.NotFoundError
		if errors.As(err, &notFound) {
			// Deleted before the worker got to it. Nothing to export.
			slog.WarnContext(ctx, "Transaction gone before sync, dropping message",
				"transaction_id", msg.TransactionID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.export(ctx, transaction)
}

// ProcessPending sweeps transactions that never got exported.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, t := range pending {
		if err := w.export(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction",
				"transaction_id", t.ID, "error", err)
			continue
		}
	}
	return nil
}

// StartupSyncCheck drains the backlog once at worker startup with a
// larger batch, recovering from missed messages or downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, t := range pending {
		if err := w.export(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"transaction_id", t.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync check completed",
		"synced", successCount, "errors", errorCount)
	return nil
}

func (w *SyncWorker) export(ctx context.Context, t core.Transaction) error {
	rowRef, err := w.writer.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"transaction_id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append to export target: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, t.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"transaction_id", t.ID, "row_ref", rowRef)
	return nil
}
