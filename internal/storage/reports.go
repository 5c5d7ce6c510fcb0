package storage

import (
	"context"
	"fmt"

	"contas/internal/core"
)

// GetStats computes the account dashboard numbers. Credit-card
// purchases stay off the cash balance until their invoice settles;
// the settlement expense is a plain bank transaction and is counted
// like any other.
func (r *SQLiteRepository) GetStats(ctx context.Context, accountID int64, year, month int) (core.Stats, error) {
	var stats core.Stats

	var initial int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(initial_balance_cents), 0)
		 FROM bank_accounts WHERE account_id = ?`, accountID).Scan(&initial)
	if err != nil {
		return core.Stats{}, fmt.Errorf("sum initial balances: %w", err)
	}

	var income, expenses int64
	err = r.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN type = 'expense' THEN amount_cents ELSE 0 END), 0)
		 FROM transactions
		 WHERE account_id = ? AND credit_card_id IS NULL`, accountID).Scan(&income, &expenses)
	if err != nil {
		return core.Stats{}, fmt.Errorf("sum balance: %w", err)
	}
	stats.TotalBalance = core.Money{Cents: initial + income - expenses}

	from, to := monthRange(year, month)
	err = r.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN type = 'expense' THEN amount_cents ELSE 0 END), 0)
		 FROM transactions
		 WHERE account_id = ? AND credit_card_id IS NULL
		   AND date >= ? AND date < ?`, accountID, from, to).Scan(&income, &expenses)
	if err != nil {
		return core.Stats{}, fmt.Errorf("sum month: %w", err)
	}
	stats.MonthlyIncome = core.Money{Cents: income}
	stats.MonthlyExpenses = core.Money{Cents: expenses}
	return stats, nil
}

// GetCategoryStats breaks one month's entries down by category.
// Card purchases count here even before their invoice settles,
// since the settlement expense carries no category of its own.
func (r *SQLiteRepository) GetCategoryStats(ctx context.Context, accountID int64, year, month int, entryType core.EntryType) ([]core.CategoryStat, error) {
	from, to := monthRange(year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.color, COALESCE(SUM(t.amount_cents), 0)
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.account_id = ? AND t.type = ? AND t.date >= ? AND t.date < ?
		 GROUP BY c.id, c.name, c.color
		 ORDER BY SUM(t.amount_cents) DESC, c.name`,
		accountID, entryType, from, to)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	var result []core.CategoryStat
	for rows.Next() {
		var s core.CategoryStat
		if err := rows.Scan(&s.CategoryID, &s.Name, &s.Color, &s.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
