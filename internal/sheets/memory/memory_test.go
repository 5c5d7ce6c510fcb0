package memory

import (
	"context"
	"testing"

	"contas/internal/core"
)

func TestStoreAppend(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Transaction{
		AccountID:   1,
		Description: "spesa",
		Amount:      core.MustMoney("12.00"),
		Type:        core.Expense,
		Date:        core.NewDate(2026, 8, 1),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}
	if got := len(s.Items()); got != 1 {
		t.Errorf("items = %d, want 1", got)
	}
}

func TestStoreAppendRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Transaction{
		AccountID: 1,
		Amount:    core.MustMoney("5.00"),
		Type:      core.Expense,
		Date:      core.NewDate(2026, 8, 1),
	})
	if err == nil {
		t.Error("expected validation error for empty description")
	}
}
