package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contas/internal/core"
)

func (r *SQLiteRepository) CreateCreditCard(ctx context.Context, c core.CreditCard) (core.CreditCard, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO credit_cards (account_id, name, brand, credit_limit_cents, due_day, closing_day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.AccountID, c.Name, c.Brand, c.CreditLimit.Cents, c.DueDay, c.ClosingDay)
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("insert credit card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("credit card id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) GetCreditCard(ctx context.Context, id int64) (core.CreditCard, error) {
	var c core.CreditCard
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, brand, credit_limit_cents, due_day, closing_day
		 FROM credit_cards WHERE id = ?`, id).
		Scan(&c.ID, &c.AccountID, &c.Name, &c.Brand, &c.CreditLimit.Cents, &c.DueDay, &c.ClosingDay)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CreditCard{}, core.NotFound("credit card", id)
	}
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("get credit card: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListCreditCards(ctx context.Context, accountID int64) ([]core.CreditCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name, brand, credit_limit_cents, due_day, closing_day
		 FROM credit_cards WHERE account_id = ? ORDER BY name, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list credit cards: %w", err)
	}
	defer rows.Close()

	var result []core.CreditCard
	for rows.Next() {
		var c core.CreditCard
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Brand, &c.CreditLimit.Cents, &c.DueDay, &c.ClosingDay); err != nil {
			return nil, fmt.Errorf("scan credit card: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) UpdateCreditCard(ctx context.Context, c core.CreditCard) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE credit_cards SET name = ?, brand = ?, credit_limit_cents = ?, due_day = ?, closing_day = ?
		 WHERE id = ?`,
		c.Name, c.Brand, c.CreditLimit.Cents, c.DueDay, c.ClosingDay, c.ID)
	if err != nil {
		return fmt.Errorf("update credit card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update credit card: %w", err)
	}
	if n == 0 {
		return core.NotFound("credit card", c.ID)
	}
	return nil
}

func (r *SQLiteRepository) DeleteCreditCard(ctx context.Context, id int64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE credit_card_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("count credit card refs: %w", err)
	}
	if refs > 0 {
		return core.Conflict("credit card", "credit card has transactions")
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM invoice_payments WHERE credit_card_id = ?`, id); err != nil {
			return fmt.Errorf("delete invoice payments: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM credit_cards WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete credit card: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete credit card: %w", err)
		}
		if n == 0 {
			return core.NotFound("credit card", id)
		}
		return nil
	})
}
