package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"contas/internal/cache"
	"contas/internal/core"
	"contas/internal/log"
	"contas/internal/middleware/ratelimit"
	"contas/internal/middleware/security"
	"contas/internal/middleware/trace"
	"contas/internal/services"
)

// Services bundles the application services the server fronts.
type Services struct {
	Accounts   *services.AccountService
	Categories *services.CategoryService
	Ledger     *services.LedgerService
	Invoices   *services.InvoiceService
	Reports    *services.ReportService
	Business   *services.BusinessService
}

type Server struct {
	http.Server

	svc    Services
	logger *log.Logger

	limiter      *ratelimit.Limiter
	cacheManager *cache.Manager

	// Read-side caches. Keys are account-scoped; any mutation that
	// can move a balance or an invoice purges both.
	statsCache    *cache.LRUCache[core.Stats]
	invoicesCache *cache.LRUCache[[]core.Invoice]

	shutdownOnce sync.Once
}

func NewServer(port string, svc Services, cacheTTL time.Duration, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		svc:           svc,
		logger:        logger.WithComponent(log.ComponentHTTP),
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		cacheManager:  cache.NewManager(),
		statsCache:    cache.NewLRUCache[core.Stats](128, cacheTTL),
		invoicesCache: cache.NewLRUCache[[]core.Invoice](128, cacheTTL),
	}
	s.cacheManager.Register(s.statsCache)
	s.cacheManager.Register(s.invoicesCache)
	s.cacheManager.StartCleanup(cacheTTL)

	mux := http.NewServeMux()
	s.routes(mux)

	traced := trace.NewMiddleware(extractClientIP)
	limited := s.limiter.Middleware(extractClientIP, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
	})
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = limitMutating(limited, handler)
	handler = headers.Middleware(handler)
	handler = traced.Middleware(handler)
	handler = log.Middleware(s.logger)(handler)

	s.Server = http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /api/accounts/default", s.handleDefaultAccount)
	mux.HandleFunc("GET /api/accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("PATCH /api/accounts/{id}", s.handleRenameAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/accounts/{id}/bank-accounts", s.handleListBankAccounts)
	mux.HandleFunc("POST /api/accounts/{id}/bank-accounts", s.handleCreateBankAccount)
	mux.HandleFunc("PATCH /api/accounts/{id}/bank-accounts/{bankAccountId}", s.handleUpdateBankAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}/bank-accounts/{bankAccountId}", s.handleDeleteBankAccount)

	mux.HandleFunc("GET /api/accounts/{id}/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/accounts/{id}/categories", s.handleCreateCategory)
	mux.HandleFunc("PATCH /api/accounts/{id}/categories/{categoryId}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/accounts/{id}/categories/{categoryId}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/accounts/{id}/credit-cards", s.handleListCreditCards)
	mux.HandleFunc("POST /api/accounts/{id}/credit-cards", s.handleCreateCreditCard)
	mux.HandleFunc("PATCH /api/accounts/{id}/credit-cards/{cardId}", s.handleUpdateCreditCard)
	mux.HandleFunc("DELETE /api/accounts/{id}/credit-cards/{cardId}", s.handleDeleteCreditCard)

	mux.HandleFunc("GET /api/accounts/{id}/credit-card-invoices", s.handleListInvoices)
	mux.HandleFunc("POST /api/accounts/{id}/invoice-payments/process-overdue", s.handleProcessOverdue)

	mux.HandleFunc("GET /api/accounts/{id}/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/accounts/{id}/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PATCH /api/credit-card-transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/credit-card-transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/accounts/{id}/stats", s.handleStats)
	mux.HandleFunc("GET /api/accounts/{id}/category-stats", s.handleCategoryStats)

	mux.HandleFunc("GET /api/accounts/{id}/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/accounts/{id}/projects", s.handleCreateProject)
	mux.HandleFunc("DELETE /api/accounts/{id}/projects/{projectId}", s.handleDeleteProject)

	mux.HandleFunc("GET /api/accounts/{id}/cost-centers", s.handleListCostCenters)
	mux.HandleFunc("POST /api/accounts/{id}/cost-centers", s.handleCreateCostCenter)
	mux.HandleFunc("DELETE /api/accounts/{id}/cost-centers/{costCenterId}", s.handleDeleteCostCenter)

	mux.HandleFunc("GET /api/accounts/{id}/clients", s.handleListClients)
	mux.HandleFunc("POST /api/accounts/{id}/clients", s.handleCreateClient)
	mux.HandleFunc("DELETE /api/accounts/{id}/clients/{clientId}", s.handleDeleteClient)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.Accounts.ListAccounts(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "storage unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// invalidateViews drops cached stats and invoices after any write that
// can change balances or invoice contents.
func (s *Server) invalidateViews() {
	s.statsCache.Purge()
	s.invoicesCache.Purge()
}

func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.cacheManager.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// limitMutating rate-limits writes only; reads stay cheap and cached.
func limitMutating(limited func(http.Handler) http.Handler, next http.Handler) http.Handler {
	guarded := limited(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
		default:
			guarded.ServeHTTP(w, r)
		}
	})
}

func extractClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
