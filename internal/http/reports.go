package http

import (
	"fmt"
	"net/http"

	"contas/internal/core"
)

// topCategories caps the category breakdown to the slices the
// dashboard actually renders.
const topCategories = 5

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, month := parseYearMonth(r)

	key := fmt.Sprintf("stats:%d:%d-%02d", accountID, year, month)
	stats, ok := s.statsCache.Get(key)
	if !ok {
		stats, err = s.svc.Reports.GetStats(r.Context(), accountID, year, month)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.statsCache.Set(key, stats)
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalBalance:     stats.TotalBalance,
		MonthlyIncome:    stats.MonthlyIncome,
		MonthlyExpenses:  stats.MonthlyExpenses,
		ProjectedBalance: stats.ProjectedBalance(),
	})
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, month := parseYearMonth(r)

	entryType := core.Expense
	if raw := r.URL.Query().Get("type"); raw != "" {
		entryType = core.EntryType(raw)
	}

	stats, err := s.svc.Reports.GetCategoryStats(r.Context(), accountID, year, month, entryType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(stats) > topCategories {
		stats = stats[:topCategories]
	}
	out := make([]categoryStatResponse, 0, len(stats))
	for _, cs := range stats {
		out = append(out, categoryStatResponse{
			CategoryID: cs.CategoryID,
			Name:       cs.Name,
			Color:      cs.Color,
			Total:      cs.Total,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
