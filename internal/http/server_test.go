package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"contas/internal/services"
	"contas/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ledger := services.NewLedgerService(repo, nil)
	svc := Services{
		Accounts:   services.NewAccountService(repo),
		Categories: services.NewCategoryService(repo),
		Ledger:     ledger,
		Invoices:   services.NewInvoiceService(repo, ledger),
		Reports:    services.NewReportService(repo),
		Business:   services.NewBusinessService(repo),
	}
	srv := NewServer("0", svc, time.Minute, nil)
	t.Cleanup(func() {
		srv.limiter.Stop()
		srv.cacheManager.Stop()
	})
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func createAccount(t *testing.T, srv *Server, name, typ string) int64 {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]string{"name": name, "type": typ})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account: status %d, body %s", rec.Code, rec.Body.String())
	}
	return decodeBody[accountResponse](t, rec).ID
}

func TestAccountEndpoints(t *testing.T) {
	srv := newTestServer(t)

	id := createAccount(t, srv, "Personal", "personal")

	rec := doJSON(t, srv, http.MethodGet, "/api/accounts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	if got := decodeBody[[]accountResponse](t, rec); len(got) != 1 || got[0].Name != "Personal" {
		t.Fatalf("unexpected list: %+v", got)
	}

	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/accounts/%d", id), map[string]string{"name": "Family", "type": "personal"})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: status %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[accountResponse](t, rec); got.Name != "Family" {
		t.Fatalf("rename not applied: %+v", got)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing account: status %d", rec.Code)
	}
}

func TestDefaultAccountEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/accounts/default", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("no accounts: status %d", rec.Code)
	}

	// Personal wins over an earlier-created business account.
	createAccount(t, srv, "Studio", "business")
	personalID := createAccount(t, srv, "Casa", "personal")

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/default", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("default: status %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[accountResponse](t, rec); got.ID != personalID || got.Type != "personal" {
		t.Fatalf("default account: %+v", got)
	}
}

func TestValidationStatusMapping(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]string{"name": "", "type": "personal"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty name: status %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[errorResponse](t, rec)
	if resp.Field == "" {
		t.Fatalf("expected field detail, got %+v", resp)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]string{"name": "x", "type": "corporate"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad type: status %d", rec.Code)
	}
}

func TestConflictOnAccountWithTransactions(t *testing.T) {
	srv := newTestServer(t)
	id := createAccount(t, srv, "Busy", "personal")

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/transactions", id), map[string]any{
		"description": "groceries",
		"amount":      "45.90",
		"type":        "expense",
		"date":        "2026-08-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", id), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete busy account: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestInstallmentEndpointFlow(t *testing.T) {
	srv := newTestServer(t)
	id := createAccount(t, srv, "Cards", "personal")

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/credit-cards", id), map[string]any{
		"name":        "Main Card",
		"brand":       "Visa",
		"creditLimit": "5000.00",
		"dueDay":      5,
		"closingDay":  25,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create card: status %d, body %s", rec.Code, rec.Body.String())
	}
	card := decodeBody[creditCardResponse](t, rec)
	if card.BrandIcon != "visa" {
		t.Fatalf("brand icon: %+v", card)
	}
	if card.NextDueDate.IsZero() || card.NextDueDate.Day() != 5 {
		t.Fatalf("next due date: %+v", card.NextDueDate)
	}

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/transactions", id), map[string]any{
		"description":      "notebook",
		"amount":           "3000.00",
		"type":             "expense",
		"date":             "2026-08-10",
		"creditCardId":     card.ID,
		"installmentTotal": 3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create installments: status %d, body %s", rec.Code, rec.Body.String())
	}
	rows := decodeBody[[]transactionResponse](t, rec)
	if len(rows) != 3 {
		t.Fatalf("expected 3 installment rows, got %d", len(rows))
	}
	if rows[0].SeriesID == nil || rows[2].InstallmentIndex != 3 {
		t.Fatalf("series fields: %+v", rows)
	}

	// Scoped edit from the second row onward.
	rec = doJSON(t, srv, http.MethodPatch,
		fmt.Sprintf("/api/credit-card-transactions/%d?scope=future", rows[1].ID),
		map[string]any{"description": "notebook (adjusted)"})
	if rec.Code != http.StatusOK {
		t.Fatalf("scoped edit: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/accounts/%d/transactions?year=2026&month=8", id), nil)
	listed := decodeBody[[]transactionResponse](t, rec)
	if len(listed) != 1 {
		t.Fatalf("august listing: %+v", listed)
	}

	rec = doJSON(t, srv, http.MethodDelete,
		fmt.Sprintf("/api/credit-card-transactions/%d?scope=all", rows[0].ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("scoped delete: status %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[deletedResponse](t, rec); got.AccountID != id {
		t.Fatalf("delete response: %+v", got)
	}

	rec = doJSON(t, srv, http.MethodDelete,
		fmt.Sprintf("/api/credit-card-transactions/%d", rows[0].ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete gone: status %d", rec.Code)
	}
}

func TestInvoiceAndStatsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := createAccount(t, srv, "Household", "personal")

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/credit-cards", id), map[string]any{
		"name":        "Card",
		"brand":       "Mastercard",
		"creditLimit": "2000.00",
		"dueDay":      5,
		"closingDay":  25,
	})
	card := decodeBody[creditCardResponse](t, rec)

	doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/bank-accounts", id), map[string]any{
		"name":           "Checking",
		"initialBalance": "1000.00",
	})
	doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/transactions", id), map[string]any{
		"description":  "dinner",
		"amount":       "120.00",
		"type":         "expense",
		"date":         "2026-08-20",
		"creditCardId": card.ID,
	})

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/accounts/%d/credit-card-invoices", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("invoices: status %d, body %s", rec.Code, rec.Body.String())
	}
	invoices := decodeBody[[]invoiceResponse](t, rec)
	if len(invoices) != 1 || invoices[0].Paid {
		t.Fatalf("invoices: %+v", invoices)
	}

	// Card purchases stay off the cash balance until settlement.
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/accounts/%d/stats?year=2026&month=8", id), nil)
	stats := decodeBody[statsResponse](t, rec)
	if stats.TotalBalance.String() != "1000.00" {
		t.Fatalf("total balance: %+v", stats)
	}
	if stats.MonthlyExpenses.String() != "0.00" {
		t.Fatalf("monthly expenses: %+v", stats)
	}

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/invoice-payments/process-overdue", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("process overdue: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestBusinessEndpointsGated(t *testing.T) {
	srv := newTestServer(t)
	personal := createAccount(t, srv, "Personal", "personal")
	business := createAccount(t, srv, "Studio", "business")

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/projects", personal), map[string]string{"name": "Side"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("personal project: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/clients", business), map[string]string{"name": "Acme", "email": "acme@example.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client: status %d, body %s", rec.Code, rec.Body.String())
	}
	client := decodeBody[clientResponse](t, rec)

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/accounts/%d/projects", business), map[string]any{"name": "Rebrand", "clientId": client.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/accounts/%d/clients/%d", business, client.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete referenced client: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, srv, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}
