package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contas/internal/core"
)

// TransactionUpdate carries the changed fields of a scoped edit. Nil
// pointers leave the column untouched; the Set* flags distinguish
// "clear the reference" from "leave it alone".
type TransactionUpdate struct {
	Description   *string
	Amount        *core.Money
	Date          *core.Date
	CategoryID    *int64
	SetCategory   bool
	ProjectID     *int64
	SetProject    bool
	CostCenterID  *int64
	SetCostCenter bool
	PaymentMethod *string
}

const txColumns = `id, account_id, description, amount_cents, type, date,
	category_id, bank_account_id, credit_card_id, project_id, cost_center_id,
	payment_method, series_id, installment_index, installment_total`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var date string
	var category, bankAccount, card, project, costCenter, series sql.NullInt64
	err := row.Scan(&t.ID, &t.AccountID, &t.Description, &t.Amount.Cents, &t.Type, &date,
		&category, &bankAccount, &card, &project, &costCenter,
		&t.PaymentMethod, &series, &t.InstallmentIndex, &t.InstallmentTotal)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Date, err = parseDateString(date)
	if err != nil {
		return core.Transaction{}, err
	}
	t.CategoryID = idPtr(category)
	t.BankAccountID = idPtr(bankAccount)
	t.CreditCardID = idPtr(card)
	t.ProjectID = idPtr(project)
	t.CostCenterID = idPtr(costCenter)
	t.SeriesID = idPtr(series)
	return t, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, t core.Transaction) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions
		 (account_id, description, amount_cents, type, date,
		  category_id, bank_account_id, credit_card_id, project_id, cost_center_id,
		  payment_method, series_id, installment_index, installment_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.AccountID, t.Description, t.Amount.Cents, t.Type, dateString(t.Date),
		nullID(t.CategoryID), nullID(t.BankAccountID), nullID(t.CreditCardID),
		nullID(t.ProjectID), nullID(t.CostCenterID),
		t.PaymentMethod, nullID(t.SeriesID), t.InstallmentIndex, t.InstallmentTotal)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return res.LastInsertId()
}

// CreateTransaction persists a transaction. When InstallmentTotal > 1
// the amount is the full purchase total and the row expands into one
// transaction per installment: dates advance one calendar month per
// index, amounts come from SplitAmount so they sum back exactly, and
// every row shares the series id of the first one. The whole fan-out
// commits or rolls back as a unit.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) ([]core.Transaction, error) {
	if t.InstallmentTotal <= 1 {
		t.InstallmentIndex = 0
		t.InstallmentTotal = 0
		t.SeriesID = nil
		var created core.Transaction
		err := r.withTx(ctx, func(tx *sql.Tx) error {
			id, err := insertTransaction(ctx, tx, t)
			if err != nil {
				return err
			}
			created = t
			created.ID = id
			return nil
		})
		if err != nil {
			return nil, err
		}
		return []core.Transaction{created}, nil
	}

	amounts, err := core.SplitAmount(t.Amount, t.InstallmentTotal)
	if err != nil {
		return nil, core.InvalidErr("installmentTotal", err)
	}
	dates := core.SeriesDates(t.Date, t.InstallmentTotal)

	var created []core.Transaction
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		first := t
		first.Amount = amounts[0]
		first.Date = dates[0]
		first.InstallmentIndex = 1
		first.SeriesID = nil

		firstID, err := insertTransaction(ctx, tx, first)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET series_id = ? WHERE id = ?`, firstID, firstID); err != nil {
			return fmt.Errorf("anchor series: %w", err)
		}
		first.ID = firstID
		first.SeriesID = &firstID
		created = append(created, first)

		for i := 1; i < t.InstallmentTotal; i++ {
			row := t
			row.Amount = amounts[i]
			row.Date = dates[i]
			row.InstallmentIndex = i + 1
			row.SeriesID = &firstID
			id, err := insertTransaction(ctx, tx, row)
			if err != nil {
				return err
			}
			row.ID = id
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.NotFound("transaction", id)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListTransactions returns an account's transactions for one calendar
// month, newest first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, accountID int64, year, month int) ([]core.Transaction, error) {
	from, to := monthRange(year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txColumns+` FROM transactions
		 WHERE account_id = ? AND date >= ? AND date < ?
		 ORDER BY date DESC, id DESC`, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListSeries returns every installment of a series ordered by index.
func (r *SQLiteRepository) ListSeries(ctx context.Context, seriesID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txColumns+` FROM transactions
		 WHERE series_id = ? ORDER BY installment_index`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var result []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// UpdateTransactionScoped applies an edit to a transaction and, per
// the scope, fans it out across its installment series in a single
// database transaction. A new date re-anchors the series: each
// targeted installment keeps its month offset relative to the edited
// one. A new amount applies per targeted row. Edited rows drop back
// to pending sync.
func (r *SQLiteRepository) UpdateTransactionScoped(ctx context.Context, id int64, scope core.EditScope, upd TransactionUpdate) error {
	if err := scope.Validate(); err != nil {
		return core.InvalidErr("scope", err)
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		anchor, err := getTransactionTx(ctx, tx, id)
		if err != nil {
			return err
		}
		targets, err := seriesTargets(ctx, tx, anchor, scope)
		if err != nil {
			return err
		}
		for _, row := range targets {
			if upd.Description != nil {
				row.Description = *upd.Description
			}
			if upd.Amount != nil {
				row.Amount = *upd.Amount
			}
			if upd.Date != nil {
				row.Date = upd.Date.AddMonthsClamped(row.InstallmentIndex - anchor.InstallmentIndex)
			}
			if upd.SetCategory {
				row.CategoryID = upd.CategoryID
			}
			if upd.SetProject {
				row.ProjectID = upd.ProjectID
			}
			if upd.SetCostCenter {
				row.CostCenterID = upd.CostCenterID
			}
			if upd.PaymentMethod != nil {
				row.PaymentMethod = *upd.PaymentMethod
			}
			if err := row.Validate(); err != nil {
				return core.InvalidErr("transaction", err)
			}
			_, err := tx.ExecContext(ctx,
				`UPDATE transactions SET description = ?, amount_cents = ?, date = ?,
				 category_id = ?, project_id = ?, cost_center_id = ?,
				 payment_method = ?, sync_status = ? WHERE id = ?`,
				row.Description, row.Amount.Cents, dateString(row.Date),
				nullID(row.CategoryID), nullID(row.ProjectID), nullID(row.CostCenterID),
				row.PaymentMethod, SyncPending, row.ID)
			if err != nil {
				return fmt.Errorf("update transaction %d: %w", row.ID, err)
			}
		}
		return nil
	})
}

// DeleteTransactionScoped removes a transaction and, per the scope,
// the rest of its installment series, all-or-nothing.
func (r *SQLiteRepository) DeleteTransactionScoped(ctx context.Context, id int64, scope core.EditScope) error {
	if err := scope.Validate(); err != nil {
		return core.InvalidErr("scope", err)
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		anchor, err := getTransactionTx(ctx, tx, id)
		if err != nil {
			return err
		}
		targets, err := seriesTargets(ctx, tx, anchor, scope)
		if err != nil {
			return err
		}
		for _, row := range targets {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM invoice_payments WHERE transaction_id = ?`, row.ID); err != nil {
				return fmt.Errorf("clear invoice payment: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM transactions WHERE id = ?`, row.ID); err != nil {
				return fmt.Errorf("delete transaction %d: %w", row.ID, err)
			}
		}
		return nil
	})
}

func getTransactionTx(ctx context.Context, tx *sql.Tx, id int64) (core.Transaction, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.NotFound("transaction", id)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// seriesTargets resolves the rows a scoped edit touches. A row outside
// any series always resolves to itself; `future` at index k covers the
// anchor and everything after it, leaving indexes below k untouched.
func seriesTargets(ctx context.Context, tx *sql.Tx, anchor core.Transaction, scope core.EditScope) ([]core.Transaction, error) {
	if scope == core.EditSingle || !anchor.InSeries() {
		return []core.Transaction{anchor}, nil
	}

	query := `SELECT ` + txColumns + ` FROM transactions WHERE series_id = ?`
	args := []any{*anchor.SeriesID}
	if scope == core.EditFuture {
		query += ` AND installment_index >= ?`
		args = append(args, anchor.InstallmentIndex)
	}
	query += ` ORDER BY installment_index`

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve series: %w", err)
	}
	defer rows.Close()
	targets, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, core.NotFound("series", *anchor.SeriesID)
	}
	return targets, nil
}

// GetPendingSync returns transactions awaiting export, oldest first.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txColumns+` FROM transactions
		 WHERE sync_status = ? ORDER BY id LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	return r.setSyncStatus(ctx, id, SyncDone)
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	return r.setSyncStatus(ctx, id, SyncError)
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	if n == 0 {
		return core.NotFound("transaction", id)
	}
	return nil
}
