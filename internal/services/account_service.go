package services

import (
	"context"
	"fmt"
	"strings"

	"contas/internal/core"
	"contas/internal/storage"
)

// AccountService manages accounts and their bank accounts.
type AccountService struct {
	storage *storage.SQLiteRepository
}

func NewAccountService(storage *storage.SQLiteRepository) *AccountService {
	return &AccountService{storage: storage}
}

func (s *AccountService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, core.InvalidErr("account", err)
	}
	return s.storage.CreateAccount(ctx, a)
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	return s.storage.GetAccount(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return s.storage.ListAccounts(ctx)
}

// DefaultAccount picks the account a fresh session lands on: the
// first personal account, or the first account at all.
func (s *AccountService) DefaultAccount(ctx context.Context) (core.Account, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return core.Account{}, err
	}
	if len(accounts) == 0 {
		return core.Account{}, core.NotFound("account", 0)
	}
	return accounts[0], nil
}

// RenameAccount changes the display name. The account type is fixed
// at creation and never changes.
func (s *AccountService) RenameAccount(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return core.InvalidErr("name", core.ErrEmptyName)
	}
	if len(name) > 100 {
		return core.Invalid("name", "name too long (max 100 characters)")
	}
	return s.storage.RenameAccount(ctx, id, name)
}

func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	return s.storage.DeleteAccount(ctx, id)
}

func (s *AccountService) CreateBankAccount(ctx context.Context, b core.BankAccount) (core.BankAccount, error) {
	if err := b.Validate(); err != nil {
		return core.BankAccount{}, core.InvalidErr("bankAccount", err)
	}
	if _, err := s.storage.GetAccount(ctx, b.AccountID); err != nil {
		return core.BankAccount{}, err
	}
	return s.storage.CreateBankAccount(ctx, b)
}

// ListBankAccounts returns the account's own bank accounts plus any
// shared by other accounts. Shared ones show up read-only; mutations
// go through the owning account.
func (s *AccountService) ListBankAccounts(ctx context.Context, accountID int64) ([]core.BankAccount, error) {
	return s.storage.ListBankAccounts(ctx, accountID)
}

func (s *AccountService) UpdateBankAccount(ctx context.Context, accountID int64, b core.BankAccount) error {
	if err := b.Validate(); err != nil {
		return core.InvalidErr("bankAccount", err)
	}
	existing, err := s.storage.GetBankAccount(ctx, b.ID)
	if err != nil {
		return err
	}
	if existing.AccountID != accountID {
		return core.Conflict("bank account", "shared bank accounts are read-only outside the owning account")
	}
	b.AccountID = existing.AccountID
	return s.storage.UpdateBankAccount(ctx, b)
}

func (s *AccountService) DeleteBankAccount(ctx context.Context, accountID, id int64) error {
	existing, err := s.storage.GetBankAccount(ctx, id)
	if err != nil {
		return err
	}
	if existing.AccountID != accountID {
		return core.Conflict("bank account", "shared bank accounts are read-only outside the owning account")
	}
	return s.storage.DeleteBankAccount(ctx, id)
}

func (s *AccountService) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	return nil
}
