package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contas/internal/core"
)

// Business-only entities: projects, cost centers, clients. The
// service layer enforces the account-type gate; storage just persists.

func (r *SQLiteRepository) CreateProject(ctx context.Context, p core.Project) (core.Project, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (account_id, name, client_id) VALUES (?, ?, ?)`,
		p.AccountID, p.Name, nullID(p.ClientID))
	if err != nil {
		return core.Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Project{}, fmt.Errorf("project id: %w", err)
	}
	p.ID = id
	return p, nil
}

func (r *SQLiteRepository) ListProjects(ctx context.Context, accountID int64) ([]core.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name, client_id FROM projects
		 WHERE account_id = ? ORDER BY name, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var result []core.Project
	for rows.Next() {
		var p core.Project
		var clientID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Name, &clientID); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.ClientID = idPtr(clientID)
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "projects", "project", id)
}

func (r *SQLiteRepository) CreateCostCenter(ctx context.Context, c core.CostCenter) (core.CostCenter, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cost_centers (account_id, name) VALUES (?, ?)`,
		c.AccountID, c.Name)
	if err != nil {
		return core.CostCenter{}, fmt.Errorf("insert cost center: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.CostCenter{}, fmt.Errorf("cost center id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) ListCostCenters(ctx context.Context, accountID int64) ([]core.CostCenter, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name FROM cost_centers
		 WHERE account_id = ? ORDER BY name, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	var result []core.CostCenter
	for rows.Next() {
		var c core.CostCenter
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) DeleteCostCenter(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "cost_centers", "cost center", id)
}

func (r *SQLiteRepository) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (account_id, name, email) VALUES (?, ?, ?)`,
		c.AccountID, c.Name, c.Email)
	if err != nil {
		return core.Client{}, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Client{}, fmt.Errorf("client id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) GetClient(ctx context.Context, id int64) (core.Client, error) {
	var c core.Client
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, email FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.AccountID, &c.Name, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Client{}, core.NotFound("client", id)
	}
	if err != nil {
		return core.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListClients(ctx context.Context, accountID int64) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name, email FROM clients
		 WHERE account_id = ? ORDER BY name, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var result []core.Client
	for rows.Next() {
		var c core.Client
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) DeleteClient(ctx context.Context, id int64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE client_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("count client refs: %w", err)
	}
	if refs > 0 {
		return core.Conflict("client", "client has projects")
	}
	return r.deleteByID(ctx, "clients", "client", id)
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table, resource string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	if n == 0 {
		return core.NotFound(resource, id)
	}
	return nil
}
