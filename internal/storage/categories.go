package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contas/internal/core"
)

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (account_id, name, color, icon, type) VALUES (?, ?, ?, ?, ?)`,
		c.AccountID, c.Name, c.Color, c.Icon, string(c.Type))
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	var typ string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, color, icon, type FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.AccountID, &c.Name, &c.Color, &c.Icon, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.NotFound("category", id)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	c.Type = core.EntryType(typ)
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, accountID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name, color, icon, type FROM categories
		 WHERE account_id = ? ORDER BY type, name, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var result []core.Category
	for rows.Next() {
		var c core.Category
		var typ string
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Color, &c.Icon, &typ); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.EntryType(typ)
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ?`,
		c.Name, c.Color, c.Icon, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return core.NotFound("category", c.ID)
	}
	return nil
}

// DeleteCategory removes a category. Transactions referencing it keep
// their rows with category_id set to NULL; both steps happen in one
// database transaction.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category_id = NULL WHERE category_id = ?`, id); err != nil {
			return fmt.Errorf("detach transactions: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if n == 0 {
			return core.NotFound("category", id)
		}
		return nil
	})
}
