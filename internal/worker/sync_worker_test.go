package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"contas/internal/amqp"
	"contas/internal/core"
	"contas/internal/sheets/memory"
	"contas/internal/storage"
)

func newTestWorker(t *testing.T) (*SyncWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "contas.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	store := memory.New()
	return NewSyncWorker(repo, store, 10), repo, store
}

func seedTransaction(t *testing.T, repo *storage.SQLiteRepository) core.Transaction {
	t.Helper()
	ctx := context.Background()
	account, err := repo.CreateAccount(ctx, core.Account{Name: "Casa", Type: core.AccountPersonal})
	if err != nil {
		t.Fatal(err)
	}
	created, err := repo.CreateTransaction(ctx, core.Transaction{
		AccountID:   account.ID,
		Description: "spesa",
		Amount:      core.MustMoney("42.00"),
		Type:        core.Expense,
		Date:        core.NewDate(2026, 8, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	return created[0]
}

func TestHandleSyncMessage(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()
	tx := seedTransaction(t, repo)

	if err := w.HandleSyncMessage(ctx, amqp.NewLedgerSyncMessage(tx.ID)); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}
	if got := len(store.Items()); got != 1 {
		t.Fatalf("expected 1 exported row, got %d", got)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("transaction should be marked synced, %d still pending", len(pending))
	}
}

func TestHandleSyncMessageDropsMissingTransaction(t *testing.T) {
	w, _, store := newTestWorker(t)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewLedgerSyncMessage(9999)); err != nil {
		t.Fatalf("missing transactions should be dropped, not requeued: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Error("nothing should have been exported")
	}
}

func TestProcessPendingMarksErrors(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "contas.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })
	w := NewSyncWorker(repo, failingWriter{}, 10)
	ctx := context.Background()

	seedTransaction(t, repo)
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("ProcessPending should log per-row failures, not fail: %v", err)
	}

	// The row left the pending queue by being marked as errored.
	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("failed row should be marked error, %d still pending", len(pending))
	}
}

type failingWriter struct{}

func (failingWriter) Append(context.Context, core.Transaction) (string, error) {
	return "", errors.New("export target unavailable")
}
