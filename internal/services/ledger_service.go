package services

import (
	"context"
	"fmt"
	"log/slog"

	"contas/internal/amqp"
	"contas/internal/core"
	"contas/internal/storage"
)

// LedgerService orchestrates transaction writes across SQLite and AMQP.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateTransaction saves a transaction, expanding installment series,
// and queues the created rows for export. A failed publish never fails
// the request; the pending sweep picks the rows up later.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) ([]core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, core.InvalidErr("transaction", err)
	}
	if err := s.checkReferences(ctx, t); err != nil {
		return nil, err
	}

	created, err := s.storage.CreateTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}

	for _, row := range created {
		s.publishSync(ctx, row.ID)
	}
	return created, nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	return s.storage.GetTransaction(ctx, id)
}

func (s *LedgerService) ListTransactions(ctx context.Context, accountID int64, year, month int) ([]core.Transaction, error) {
	if month < 1 || month > 12 {
		return nil, core.InvalidErr("month", core.ErrInvalidMonth)
	}
	return s.storage.ListTransactions(ctx, accountID, year, month)
}

// UpdateTransaction applies a scoped edit and re-queues the touched
// installments for export.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id int64, scope core.EditScope, upd storage.TransactionUpdate) error {
	if err := s.storage.UpdateTransactionScoped(ctx, id, scope, upd); err != nil {
		return err
	}
	s.publishSync(ctx, id)
	return nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64, scope core.EditScope) error {
	return s.storage.DeleteTransactionScoped(ctx, id, scope)
}

// checkReferences verifies that linked bank accounts and cards exist
// and belong to the transaction's account. A shared bank account of
// another account is spendable; everything else must be owned.
func (s *LedgerService) checkReferences(ctx context.Context, t core.Transaction) error {
	if t.BankAccountID != nil && t.CreditCardID != nil {
		return core.Invalid("paymentMethod", "transaction cannot reference both a bank account and a credit card")
	}
	if t.BankAccountID != nil {
		b, err := s.storage.GetBankAccount(ctx, *t.BankAccountID)
		if err != nil {
			return err
		}
		if b.AccountID != t.AccountID && !b.Shared {
			return core.Invalid("bankAccountId", "bank account belongs to another account")
		}
	}
	if t.CreditCardID != nil {
		c, err := s.storage.GetCreditCard(ctx, *t.CreditCardID)
		if err != nil {
			return err
		}
		if c.AccountID != t.AccountID {
			return core.Invalid("creditCardId", "credit card belongs to another account")
		}
	}
	if t.CategoryID != nil {
		c, err := s.storage.GetCategory(ctx, *t.CategoryID)
		if err != nil {
			return err
		}
		if c.AccountID != t.AccountID {
			return core.Invalid("categoryId", "category belongs to another account")
		}
		if c.Type != t.Type {
			return core.Invalid("categoryId", "category type does not match transaction type")
		}
	}
	return nil
}

func (s *LedgerService) publishSync(ctx context.Context, id int64) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return
	}
	if err := s.amqpClient.PublishLedgerSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"transaction_id", id, "error", err)
		// Don't fail the request - the transaction is saved locally
	}
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
