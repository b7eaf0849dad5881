// Package http exposes the dashboard read API: account context,
// transaction history, statements, the EMI calculator, and the admin
// tables.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/cors"

	"gbank/internal/backend"
	"gbank/internal/cache"
	"gbank/internal/core"
	applog "gbank/internal/log"
	"gbank/internal/middleware/ratelimit"
	"gbank/internal/middleware/security"
	"gbank/internal/middleware/trace"
	"gbank/internal/sheets"
	"gbank/internal/tabular"
)

// ledgerView is the cached result of one ledger build for a user.
type ledgerView struct {
	Account core.AccountContext
	Ledger  []core.EnrichedTransaction
	Summary core.LedgerSummary
}

type Server struct {
	http.Server

	store      backend.Store
	statements sheets.StatementWriter // nil disables the Sheets push
	logger     *applog.Logger

	limiter  *ratelimit.Limiter
	detector *security.Detector

	cacheManager *cache.Manager
	ledgerCache  *cache.LRUCache[ledgerView]
	rowsCache    *cache.LRUCache[[]tabular.Row]

	shutdownOnce sync.Once
}

type Options struct {
	Addr               string
	Store              backend.Store
	Statements         sheets.StatementWriter
	Logger             *applog.Logger
	CacheTTL           time.Duration
	CORSAllowedOrigins []string
}

// NewServer wires routes and middleware, returning a ready-to-run
// server.
func NewServer(opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	mux := http.NewServeMux()

	s := &Server{
		store:        opts.Store,
		statements:   opts.Statements,
		logger:       opts.Logger,
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     security.NewDetector(),
		cacheManager: cache.NewManager(),
		ledgerCache:  cache.NewLRUCache[ledgerView](200, opts.CacheTTL),
		rowsCache:    cache.NewLRUCache[[]tabular.Row](50, opts.CacheTTL),
	}
	s.cacheManager.Register(s.ledgerCache)
	s.cacheManager.Register(s.rowsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /accounts/{userID}", s.handleAccount)
	mux.HandleFunc("GET /transactions/history/{userID}", s.handleHistory)
	mux.HandleFunc("GET /transactions/statement/{file}", s.handleStatementCSV)
	mux.HandleFunc("POST /transactions/statement/{userID}/sheets", s.handleStatementSheets)
	mux.HandleFunc("POST /loans/emi-calc", s.handleEMICalc)

	mux.HandleFunc("GET /admin/overview", s.handleAdminOverview)
	mux.HandleFunc("GET /admin/{collection}", s.handleAdminCollection)
	mux.HandleFunc("GET /admin/{collection}/export.csv", s.handleAdminExportCSV)
	mux.HandleFunc("GET /admin/{collection}/export.xlsx", s.handleAdminExportXLSX)

	s.Server = http.Server{
		Addr:    opts.Addr,
		Handler: s.middleware(mux, opts.CORSAllowedOrigins),
	}

	return s
}

// middleware assembles the request pipeline: CORS, security headers,
// context logger, request screening, rate limiting, then tracing closest
// to the handler so the request ID exists before the mux runs.
func (s *Server) middleware(next http.Handler, corsOrigins []string) http.Handler {
	traceMW := trace.NewMiddleware(s.detector.ExtractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.limiter.Middleware(s.detector.ExtractClientIP, nil)
	corsMW := cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	h := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(next)
	h = traceMW.Middleware(h)
	h = limit(h)
	h = s.screenRequests(h)
	h = applog.Middleware(s.logger)(h)
	h = headers.Middleware(h)
	h = corsMW(h)
	return h
}

func (s *Server) screenRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			writeError(w, http.StatusBadRequest, "malformed request")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the background cleanup loops before draining the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ListCustomers(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "read model unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// loadLedger builds (or serves from cache) the enriched ledger for a
// user.
func (s *Server) loadLedger(ctx context.Context, userID string) (ledgerView, error) {
	if view, found := s.ledgerCache.Get(userID); found {
		return view, nil
	}

	acct, err := s.store.AccountByUser(ctx, userID)
	if err != nil {
		return ledgerView{}, err
	}
	raw, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return ledgerView{}, err
	}

	ledger, summary := core.BuildLedger(raw, acct)
	view := ledgerView{Account: acct, Ledger: ledger, Summary: summary}
	s.ledgerCache.Set(userID, view)
	return view, nil
}
