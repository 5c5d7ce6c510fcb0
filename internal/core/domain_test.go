package core

import (
	"testing"
	"time"
)

func TestAccountValidate(t *testing.T) {
	cases := []struct {
		name    string
		account Account
		wantErr bool
	}{
		{"valid personal", Account{Name: "Home", Type: AccountPersonal}, false},
		{"valid business", Account{Name: "Studio", Type: AccountBusiness}, false},
		{"empty name", Account{Name: "  ", Type: AccountPersonal}, true},
		{"bad type", Account{Name: "Home", Type: "corporate"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.account.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreditCardValidate(t *testing.T) {
	base := CreditCard{Name: "Main", Brand: "Visa", CreditLimit: MustMoney("5000.00"), DueDay: 10, ClosingDay: 25}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}

	badDue := base
	badDue.DueDay = 0
	if err := badDue.Validate(); err != ErrInvalidDay {
		t.Errorf("due day 0: got %v", err)
	}

	badClosing := base
	badClosing.ClosingDay = 32
	if err := badClosing.Validate(); err != ErrInvalidDay {
		t.Errorf("closing day 32: got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Description: "Groceries",
		Amount:      MustMoney("54.20"),
		Type:        Expense,
		Date:        NewDate(2026, 4, 12),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	t.Run("zero amount", func(t *testing.T) {
		tx := valid
		tx.Amount = Money{}
		if err := tx.Validate(); err != ErrInvalidAmount {
			t.Errorf("got %v", err)
		}
	})

	t.Run("empty description", func(t *testing.T) {
		tx := valid
		tx.Description = ""
		if err := tx.Validate(); err != ErrEmptyDescription {
			t.Errorf("got %v", err)
		}
	})

	t.Run("bad type", func(t *testing.T) {
		tx := valid
		tx.Type = "transfer"
		if err := tx.Validate(); err != ErrInvalidEntryType {
			t.Errorf("got %v", err)
		}
	})

	t.Run("installment index out of range", func(t *testing.T) {
		tx := valid
		tx.InstallmentTotal = 3
		tx.InstallmentIndex = 4
		if err := tx.Validate(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unexpanded series row", func(t *testing.T) {
		tx := valid
		tx.InstallmentTotal = 3
		tx.InstallmentIndex = 0
		if err := tx.Validate(); err != nil {
			t.Errorf("pre-expansion row rejected: %v", err)
		}
	})

	t.Run("negative installment index", func(t *testing.T) {
		tx := valid
		tx.InstallmentIndex = -1
		if err := tx.Validate(); err == nil {
			t.Error("expected error")
		}
	})
}

func TestEditScopeValidate(t *testing.T) {
	for _, s := range []EditScope{EditSingle, EditAll, EditFuture} {
		if err := s.Validate(); err != nil {
			t.Errorf("%s rejected: %v", s, err)
		}
	}
	if err := EditScope("some").Validate(); err != ErrInvalidEditScope {
		t.Errorf("got %v", err)
	}
}

func TestDateAddMonthsClamped(t *testing.T) {
	d := NewDate(2026, 1, 31).AddMonthsClamped(1)
	if !d.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %s", d.Format("2006-01-02"))
	}
}
