package storage

import (
	"context"
	"database/sql"
	"fmt"

	"contas/internal/core"
)

// InvoicePayment records that one billing month of a credit card was
// settled, pointing at the expense transaction the settlement created.
// The (card, year, month) unique index is the idempotency anchor for
// overdue processing.
type InvoicePayment struct {
	ID            int64
	CreditCardID  int64
	Year          int
	Month         int
	TransactionID int64
}

// ListCardTransactions returns every purchase charged to a card,
// oldest first. Settlement expenses live on bank accounts and never
// carry a card id, so they do not show up here.
func (r *SQLiteRepository) ListCardTransactions(ctx context.Context, cardID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txColumns+` FROM transactions
		 WHERE credit_card_id = ? ORDER BY date, id`, cardID)
	if err != nil {
		return nil, fmt.Errorf("list card transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *SQLiteRepository) ListInvoicePayments(ctx context.Context, cardID int64) ([]InvoicePayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, credit_card_id, year, month, transaction_id
		 FROM invoice_payments WHERE credit_card_id = ?
		 ORDER BY year, month`, cardID)
	if err != nil {
		return nil, fmt.Errorf("list invoice payments: %w", err)
	}
	defer rows.Close()

	var result []InvoicePayment
	for rows.Next() {
		var p InvoicePayment
		if err := rows.Scan(&p.ID, &p.CreditCardID, &p.Year, &p.Month, &p.TransactionID); err != nil {
			return nil, fmt.Errorf("scan invoice payment: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// SettleInvoice marks one billing month of a card as paid, creating
// the settlement expense and the payment marker in a single database
// transaction. A month that is already settled is left untouched and
// reported with created = false, so callers can re-run settlement
// safely.
func (r *SQLiteRepository) SettleInvoice(ctx context.Context, cardID int64, year, month int, settlement core.Transaction) (core.Transaction, bool, error) {
	var created bool
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM invoice_payments
			 WHERE credit_card_id = ? AND year = ? AND month = ?`,
			cardID, year, month).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check invoice payment: %w", err)
		}
		if exists > 0 {
			return nil
		}

		txID, err := insertTransaction(ctx, tx, settlement)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoice_payments (credit_card_id, year, month, transaction_id)
			 VALUES (?, ?, ?, ?)`, cardID, year, month, txID); err != nil {
			return fmt.Errorf("insert invoice payment: %w", err)
		}
		settlement.ID = txID
		created = true
		return nil
	})
	if err != nil {
		return core.Transaction{}, false, err
	}
	return settlement, created, nil
}
