package services

import (
	"context"

	"contas/internal/core"
	"contas/internal/storage"
)

// ReportService aggregates ledger data for the dashboard.
type ReportService struct {
	storage *storage.SQLiteRepository
}

func NewReportService(storage *storage.SQLiteRepository) *ReportService {
	return &ReportService{storage: storage}
}

func (s *ReportService) GetStats(ctx context.Context, accountID int64, year, month int) (core.Stats, error) {
	if month < 1 || month > 12 {
		return core.Stats{}, core.InvalidErr("month", core.ErrInvalidMonth)
	}
	if _, err := s.storage.GetAccount(ctx, accountID); err != nil {
		return core.Stats{}, err
	}
	return s.storage.GetStats(ctx, accountID, year, month)
}

func (s *ReportService) GetCategoryStats(ctx context.Context, accountID int64, year, month int, entryType core.EntryType) ([]core.CategoryStat, error) {
	if month < 1 || month > 12 {
		return nil, core.InvalidErr("month", core.ErrInvalidMonth)
	}
	if err := entryType.Validate(); err != nil {
		return nil, core.InvalidErr("type", err)
	}
	return s.storage.GetCategoryStats(ctx, accountID, year, month, entryType)
}
