package http

import (
	"fmt"
	"net/http"
	"time"

	"contas/internal/core"
)

func (s *Server) handleListCreditCards(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := s.svc.Invoices.ListCreditCards(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]creditCardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCreditCardResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCreditCard(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload creditCardPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Invoices.CreateCreditCard(r.Context(), core.CreditCard{
		AccountID:   accountID,
		Name:        sanitizeInput(payload.Name),
		Brand:       sanitizeInput(payload.Brand),
		CreditLimit: payload.CreditLimit,
		DueDay:      payload.DueDay,
		ClosingDay:  payload.ClosingDay,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusCreated, toCreditCardResponse(created))
}

func (s *Server) handleUpdateCreditCard(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload creditCardPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	updated := core.CreditCard{
		ID:          cardID,
		AccountID:   accountID,
		Name:        sanitizeInput(payload.Name),
		Brand:       sanitizeInput(payload.Brand),
		CreditLimit: payload.CreditLimit,
		DueDay:      payload.DueDay,
		ClosingDay:  payload.ClosingDay,
	}
	if err := s.svc.Invoices.UpdateCreditCard(r.Context(), updated); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, toCreditCardResponse(updated))
}

func (s *Server) handleDeleteCreditCard(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Invoices.DeleteCreditCard(r.Context(), cardID); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: accountID, Deleted: true})
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	key := fmt.Sprintf("invoices:%d", accountID)
	if cached, ok := s.invoicesCache.Get(key); ok {
		writeInvoices(w, cached)
		return
	}
	invoices, err := s.svc.Invoices.GetInvoices(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invoicesCache.Set(key, invoices)
	writeInvoices(w, invoices)
}

func writeInvoices(w http.ResponseWriter, invoices []core.Invoice) {
	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProcessOverdue(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	now := time.Now()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	processed, err := s.svc.Invoices.ProcessOverdueInvoices(r.Context(), accountID, today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if processed > 0 {
		s.invalidateViews()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accountId": accountID,
		"processed": processed,
	})
}
