package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contas/internal/core"
)

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, type) VALUES (?, ?)`,
		a.Name, string(a.Type))
	if err != nil {
		return core.Account{}, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Account{}, fmt.Errorf("account id: %w", err)
	}
	return r.GetAccount(ctx, id)
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	var a core.Account
	var typ string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, created_at FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &typ, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, core.NotFound("account", id)
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	a.Type = core.AccountType(typ)
	return a, nil
}

// ListAccounts returns accounts ordered the way selection defaults
// expect: personal before business, then by id.
func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, created_at FROM accounts
		 ORDER BY CASE type WHEN 'personal' THEN 0 ELSE 1 END, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// RenameAccount updates the account name. The type is immutable after
// creation; no other column is touched.
func (r *SQLiteRepository) RenameAccount(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	if n == 0 {
		return core.NotFound("account", id)
	}
	return nil
}

// DeleteAccount removes an account and its child collections. Accounts
// with transactions are protected: the delete fails with a
// ConflictError and nothing changes.
func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return core.NotFound("account", id)
		}
		if err != nil {
			return fmt.Errorf("check account: %w", err)
		}

		var txCount int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM transactions WHERE account_id = ?`, id).Scan(&txCount); err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}
		if txCount > 0 {
			return core.Conflict("account", "account has transactions")
		}

		for _, stmt := range []string{
			`DELETE FROM invoice_payments WHERE credit_card_id IN (SELECT id FROM credit_cards WHERE account_id = ?)`,
			`DELETE FROM credit_cards WHERE account_id = ?`,
			`DELETE FROM categories WHERE account_id = ?`,
			`DELETE FROM bank_accounts WHERE account_id = ?`,
			`DELETE FROM projects WHERE account_id = ?`,
			`DELETE FROM cost_centers WHERE account_id = ?`,
			`DELETE FROM clients WHERE account_id = ?`,
			`DELETE FROM accounts WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade delete: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) CreateBankAccount(ctx context.Context, b core.BankAccount) (core.BankAccount, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bank_accounts (account_id, name, initial_balance_cents, pix, shared)
		 VALUES (?, ?, ?, ?, ?)`,
		b.AccountID, b.Name, b.InitialBalance.Cents, b.Pix, b.Shared)
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("insert bank account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("bank account id: %w", err)
	}
	b.ID = id
	return b, nil
}

func (r *SQLiteRepository) GetBankAccount(ctx context.Context, id int64) (core.BankAccount, error) {
	var b core.BankAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, initial_balance_cents, pix, shared
		 FROM bank_accounts WHERE id = ?`, id).
		Scan(&b.ID, &b.AccountID, &b.Name, &b.InitialBalance.Cents, &b.Pix, &b.Shared)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BankAccount{}, core.NotFound("bank account", id)
	}
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("get bank account: %w", err)
	}
	return b, nil
}

// ListBankAccounts returns the account's own bank accounts followed by
// bank accounts other accounts flagged as shared. Shared rows keep the
// owner's account id so callers can mark them read-only.
func (r *SQLiteRepository) ListBankAccounts(ctx context.Context, accountID int64) ([]core.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name, initial_balance_cents, pix, shared
		 FROM bank_accounts
		 WHERE account_id = ? OR (shared = 1 AND account_id != ?)
		 ORDER BY account_id = ? DESC, name, id`,
		accountID, accountID, accountID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	var result []core.BankAccount
	for rows.Next() {
		var b core.BankAccount
		if err := rows.Scan(&b.ID, &b.AccountID, &b.Name, &b.InitialBalance.Cents, &b.Pix, &b.Shared); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) UpdateBankAccount(ctx context.Context, b core.BankAccount) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bank_accounts SET name = ?, initial_balance_cents = ?, pix = ?, shared = ?
		 WHERE id = ?`,
		b.Name, b.InitialBalance.Cents, b.Pix, b.Shared, b.ID)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	if n == 0 {
		return core.NotFound("bank account", b.ID)
	}
	return nil
}

func (r *SQLiteRepository) DeleteBankAccount(ctx context.Context, id int64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE bank_account_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("count bank account refs: %w", err)
	}
	if refs > 0 {
		return core.Conflict("bank account", "bank account has transactions")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	if n == 0 {
		return core.NotFound("bank account", id)
	}
	return nil
}
