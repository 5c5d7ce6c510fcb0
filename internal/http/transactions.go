package http

import (
	"net/http"

	"contas/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, month := parseYearMonth(r)
	transactions, err := s.svc.Ledger.ListTransactions(r.Context(), accountID, year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload transactionPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Ledger.CreateTransaction(r.Context(), core.Transaction{
		AccountID:        accountID,
		Description:      sanitizeInput(payload.Description),
		Amount:           payload.Amount,
		Type:             payload.Type,
		Date:             payload.Date,
		CategoryID:       payload.CategoryID,
		BankAccountID:    payload.BankAccountID,
		CreditCardID:     payload.CreditCardID,
		ProjectID:        payload.ProjectID,
		CostCenterID:     payload.CostCenterID,
		PaymentMethod:    sanitizeInput(payload.PaymentMethod),
		InstallmentTotal: payload.InstallmentTotal,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusCreated, toTransactionResponses(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload transactionUpdatePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	scopeRaw := payload.Scope
	if q := r.URL.Query().Get("scope"); q != "" {
		scopeRaw = q
	}
	scope, err := parseScope(scopeRaw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	upd := payload.toUpdate()
	if upd.Description != nil {
		clean := sanitizeInput(*upd.Description)
		upd.Description = &clean
	}
	if err := s.svc.Ledger.UpdateTransaction(r.Context(), id, scope, upd); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.svc.Ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	scope, err := parseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Resolve the owner before the rows disappear.
	existing, err := s.svc.Ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Ledger.DeleteTransaction(r.Context(), id, scope); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: existing.AccountID, Deleted: true})
}
