package services

import (
	"context"

	"contas/internal/core"
	"contas/internal/storage"
)

// BusinessService manages projects, cost centers, and clients. These
// exist only on business accounts; personal accounts are turned away
// before any write.
type BusinessService struct {
	storage *storage.SQLiteRepository
}

func NewBusinessService(storage *storage.SQLiteRepository) *BusinessService {
	return &BusinessService{storage: storage}
}

func (s *BusinessService) requireBusiness(ctx context.Context, accountID int64) error {
	account, err := s.storage.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsBusiness() {
		return core.Invalid("accountId", "requires a business account")
	}
	return nil
}

func (s *BusinessService) CreateProject(ctx context.Context, p core.Project) (core.Project, error) {
	if err := p.Validate(); err != nil {
		return core.Project{}, core.InvalidErr("project", err)
	}
	if err := s.requireBusiness(ctx, p.AccountID); err != nil {
		return core.Project{}, err
	}
	if p.ClientID != nil {
		client, err := s.storage.GetClient(ctx, *p.ClientID)
		if err != nil {
			return core.Project{}, err
		}
		if client.AccountID != p.AccountID {
			return core.Project{}, core.Invalid("clientId", "client belongs to another account")
		}
	}
	return s.storage.CreateProject(ctx, p)
}

func (s *BusinessService) ListProjects(ctx context.Context, accountID int64) ([]core.Project, error) {
	if err := s.requireBusiness(ctx, accountID); err != nil {
		return nil, err
	}
	return s.storage.ListProjects(ctx, accountID)
}

func (s *BusinessService) DeleteProject(ctx context.Context, id int64) error {
	return s.storage.DeleteProject(ctx, id)
}

func (s *BusinessService) CreateCostCenter(ctx context.Context, c core.CostCenter) (core.CostCenter, error) {
	if err := c.Validate(); err != nil {
		return core.CostCenter{}, core.InvalidErr("costCenter", err)
	}
	if err := s.requireBusiness(ctx, c.AccountID); err != nil {
		return core.CostCenter{}, err
	}
	return s.storage.CreateCostCenter(ctx, c)
}

func (s *BusinessService) ListCostCenters(ctx context.Context, accountID int64) ([]core.CostCenter, error) {
	if err := s.requireBusiness(ctx, accountID); err != nil {
		return nil, err
	}
	return s.storage.ListCostCenters(ctx, accountID)
}

func (s *BusinessService) DeleteCostCenter(ctx context.Context, id int64) error {
	return s.storage.DeleteCostCenter(ctx, id)
}

func (s *BusinessService) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, core.InvalidErr("client", err)
	}
	if err := s.requireBusiness(ctx, c.AccountID); err != nil {
		return core.Client{}, err
	}
	return s.storage.CreateClient(ctx, c)
}

func (s *BusinessService) ListClients(ctx context.Context, accountID int64) ([]core.Client, error) {
	if err := s.requireBusiness(ctx, accountID); err != nil {
		return nil, err
	}
	return s.storage.ListClients(ctx, accountID)
}

func (s *BusinessService) DeleteClient(ctx context.Context, id int64) error {
	return s.storage.DeleteClient(ctx, id)
}
