package services

import (
	"context"
	"errors"
	"testing"

	"contas/internal/core"
)

func TestLedgerServiceExpandsInstallments(t *testing.T) {
	repo := newTestStorage(t)
	ctx := context.Background()
	ledger := NewLedgerService(repo, nil)

	account, err := repo.CreateAccount(ctx, core.Account{Name: "Casa", Type: core.AccountPersonal})
	if err != nil {
		t.Fatal(err)
	}

	// The request carries only the total; indexes are assigned during
	// expansion.
	created, err := ledger.CreateTransaction(ctx, core.Transaction{
		AccountID:        account.ID,
		Description:      "notebook",
		Amount:           core.MustMoney("300.00"),
		Type:             core.Expense,
		Date:             core.NewDate(2026, 8, 10),
		InstallmentTotal: 3,
	})
	if err != nil {
		t.Fatalf("create installment series: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(created))
	}
	for i, row := range created {
		if row.InstallmentIndex != i+1 {
			t.Errorf("row %d index = %d", i, row.InstallmentIndex)
		}
	}
}

func TestLedgerServiceChecksReferences(t *testing.T) {
	repo := newTestStorage(t)
	ctx := context.Background()
	ledger := NewLedgerService(repo, nil)

	mine, err := repo.CreateAccount(ctx, core.Account{Name: "Casa", Type: core.AccountPersonal})
	if err != nil {
		t.Fatal(err)
	}
	other, err := repo.CreateAccount(ctx, core.Account{Name: "Studio", Type: core.AccountBusiness})
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := repo.CreateBankAccount(ctx, core.BankAccount{AccountID: other.ID, Name: "Privato"})
	if err != nil {
		t.Fatal(err)
	}
	shared, err := repo.CreateBankAccount(ctx, core.BankAccount{AccountID: other.ID, Name: "Comune", Shared: true})
	if err != nil {
		t.Fatal(err)
	}

	base := core.Transaction{
		AccountID:   mine.ID,
		Description: "bonifico",
		Amount:      core.MustMoney("100.00"),
		Type:        core.Expense,
		Date:        core.NewDate(2026, 8, 1),
	}

	var validation *core.ValidationError

	tx := base
	tx.BankAccountID = &foreign.ID
	if _, err := ledger.CreateTransaction(ctx, tx); !errors.As(err, &validation) {
		t.Errorf("foreign private bank account should be rejected, got %v", err)
	}

	tx = base
	tx.BankAccountID = &shared.ID
	if _, err := ledger.CreateTransaction(ctx, tx); err != nil {
		t.Errorf("shared bank account should be spendable: %v", err)
	}

	tx = base
	missing := int64(9999)
	tx.CreditCardID = &missing
	var notFound *core.NotFoundError
	if _, err := ledger.CreateTransaction(ctx, tx); !errors.As(err, &notFound) {
		t.Errorf("missing credit card should be NotFoundError, got %v", err)
	}
}

func TestLedgerServiceRejectsCategoryTypeMismatch(t *testing.T) {
	repo := newTestStorage(t)
	ctx := context.Background()
	ledger := NewLedgerService(repo, nil)

	account, err := repo.CreateAccount(ctx, core.Account{Name: "Casa", Type: core.AccountPersonal})
	if err != nil {
		t.Fatal(err)
	}
	salary, err := repo.CreateCategory(ctx, core.Category{AccountID: account.ID, Name: "Stipendio", Type: core.Income})
	if err != nil {
		t.Fatal(err)
	}

	var validation *core.ValidationError
	_, err = ledger.CreateTransaction(ctx, core.Transaction{
		AccountID:   account.ID,
		Description: "spesa",
		Amount:      core.MustMoney("10.00"),
		Type:        core.Expense,
		Date:        core.NewDate(2026, 8, 1),
		CategoryID:  &salary.ID,
	})
	if !errors.As(err, &validation) {
		t.Errorf("income category on an expense should be rejected, got %v", err)
	}
}

func TestBusinessServiceGate(t *testing.T) {
	repo := newTestStorage(t)
	ctx := context.Background()
	business := NewBusinessService(repo)

	personal, err := repo.CreateAccount(ctx, core.Account{Name: "Casa", Type: core.AccountPersonal})
	if err != nil {
		t.Fatal(err)
	}
	company, err := repo.CreateAccount(ctx, core.Account{Name: "Studio", Type: core.AccountBusiness})
	if err != nil {
		t.Fatal(err)
	}

	var validation *core.ValidationError
	if _, err := business.CreateProject(ctx, core.Project{AccountID: personal.ID, Name: "Sito"}); !errors.As(err, &validation) {
		t.Errorf("personal account should be rejected, got %v", err)
	}

	if _, err := business.CreateProject(ctx, core.Project{AccountID: company.ID, Name: "Sito"}); err != nil {
		t.Errorf("business account should pass: %v", err)
	}

	client, err := business.CreateClient(ctx, core.Client{AccountID: company.ID, Name: "ACME", Email: "acme@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := business.CreateProject(ctx, core.Project{AccountID: company.ID, Name: "App", ClientID: &client.ID}); err != nil {
		t.Errorf("project with owned client should pass: %v", err)
	}

	var conflict *core.ConflictError
	if err := business.DeleteClient(ctx, client.ID); !errors.As(err, &conflict) {
		t.Errorf("client with projects should be protected, got %v", err)
	}
}
