package http

import (
	"net/http"

	"contas/internal/core"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.Accounts.ListAccounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var payload accountPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Accounts.CreateAccount(r.Context(), core.Account{
		Name: sanitizeInput(payload.Name),
		Type: payload.Type,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(created))
}

// handleDefaultAccount resolves the account a fresh session lands on.
func (s *Server) handleDefaultAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.svc.Accounts.DefaultAccount(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	account, err := s.svc.Accounts.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *Server) handleRenameAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload accountPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Accounts.RenameAccount(r.Context(), id, sanitizeInput(payload.Name)); err != nil {
		writeError(w, r, err)
		return
	}
	account, err := s.svc.Accounts.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Accounts.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: id, Deleted: true})
}

func (s *Server) handleListBankAccounts(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	banks, err := s.svc.Accounts.ListBankAccounts(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]bankAccountResponse, 0, len(banks))
	for _, b := range banks {
		out = append(out, toBankAccountResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBankAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload bankAccountPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Accounts.CreateBankAccount(r.Context(), core.BankAccount{
		AccountID:      accountID,
		Name:           sanitizeInput(payload.Name),
		InitialBalance: payload.InitialBalance,
		Pix:            sanitizeInput(payload.Pix),
		Shared:         payload.Shared,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusCreated, toBankAccountResponse(created))
}

func (s *Server) handleUpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	bankID, err := pathID(r, "bankAccountId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload bankAccountPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	updated := core.BankAccount{
		ID:             bankID,
		AccountID:      accountID,
		Name:           sanitizeInput(payload.Name),
		InitialBalance: payload.InitialBalance,
		Pix:            sanitizeInput(payload.Pix),
		Shared:         payload.Shared,
	}
	if err := s.svc.Accounts.UpdateBankAccount(r.Context(), accountID, updated); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, toBankAccountResponse(updated))
}

func (s *Server) handleDeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	bankID, err := pathID(r, "bankAccountId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Accounts.DeleteBankAccount(r.Context(), accountID, bankID); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: accountID, Deleted: true})
}
