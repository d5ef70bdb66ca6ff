package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gastos/internal/cache"
	"gastos/internal/middleware/ratelimit"
	"gastos/internal/middleware/security"
	"gastos/internal/middleware/trace"
	"gastos/internal/services"
)

// Options tunes the server's ambient behavior.
type Options struct {
	RateLimitPerMinute int
	StatsCacheTTL      time.Duration
}

func (o *Options) withDefaults() {
	if o.RateLimitPerMinute <= 0 {
		o.RateLimitPerMinute = 60
	}
	if o.StatsCacheTTL <= 0 {
		o.StatsCacheTTL = 30 * time.Second
	}
}

type Server struct {
	http.Server
	categories   *services.CategoryService
	transactions *services.TransactionService

	// Derived statistics are cached per endpoint and purged on every write.
	statsCache   *cache.LRU[any]
	cacheManager *cache.Manager
	rateLimiter  *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, categories *services.CategoryService, transactions *services.TransactionService, opts Options) *Server {
	opts.withDefaults()

	s := &Server{
		categories:   categories,
		transactions: transactions,
		statsCache:   cache.NewLRU[any](16, opts.StatsCacheTTL),
		cacheManager: cache.NewManager(),
		rateLimiter:  ratelimit.New(opts.RateLimitPerMinute, clientIP),
	}

	s.cacheManager.Register(s.statsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	r := chi.NewRouter()
	r.Use(trace.NewMiddleware(clientIP).Middleware)
	r.Use(security.Headers)
	r.Use(s.rateLimiter.Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
			r.Get("/{id}", s.handleGetCategory)
			r.Put("/{id}", s.handleUpdateCategory)
			r.Delete("/{id}", s.handleDeleteCategory)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Put("/{id}", s.handleUpdateTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/monthly", s.handleMonthlyStats)
			r.Get("/categories", s.handleCategoryStats)
			r.Get("/payment-modes", s.handlePaymentModeStats)
			r.Get("/total-expenses", s.handleTotalExpenses)
		})
	})

	s.Server = http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// invalidateStats drops cached aggregates after any ledger or category write.
func (s *Server) invalidateStats() {
	s.statsCache.Purge()
}

// Shutdown stops the HTTP server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
