package http

import (
	"context"
	"net/http"
)

// Stat endpoints share one cache; entries are keyed per endpoint and purged
// whenever a write lands.
func serveCachedStats(s *Server, w http.ResponseWriter, r *http.Request, key, what string, compute func(context.Context) (any, error)) {
	if cached, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	v, err := compute(r.Context())
	if err != nil {
		respondFetchError(w, r, what, err)
		return
	}

	s.statsCache.Set(key, v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	serveCachedStats(s, w, r, "monthly", "monthly stats", func(ctx context.Context) (any, error) {
		pts, err := s.transactions.MonthlyStats(ctx)
		return nonNil(pts), err
	})
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	serveCachedStats(s, w, r, "categories", "category stats", func(ctx context.Context) (any, error) {
		stats, err := s.transactions.CategoryStats(ctx)
		return nonNil(stats), err
	})
}

func (s *Server) handlePaymentModeStats(w http.ResponseWriter, r *http.Request) {
	serveCachedStats(s, w, r, "payment-modes", "payment mode stats", func(ctx context.Context) (any, error) {
		stats, err := s.transactions.PaymentModeStats(ctx)
		return nonNil(stats), err
	})
}

func (s *Server) handleTotalExpenses(w http.ResponseWriter, r *http.Request) {
	serveCachedStats(s, w, r, "total-expenses", "total expenses", func(ctx context.Context) (any, error) {
		return s.transactions.TotalExpenses(ctx)
	})
}
