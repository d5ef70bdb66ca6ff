package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func remoteAddr(r *http.Request) string { return r.RemoteAddr }

func TestAllowWithinLimit(t *testing.T) {
	rl := New(3, remoteAddr)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("request over the limit should be denied")
	}
	// Other clients are tracked independently.
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("different client should be allowed")
	}
}

func TestMiddlewareOnlyLimitsMutations(t *testing.T) {
	rl := New(1, remoteAddr)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(method string) int {
		req := httptest.NewRequest(method, "/transactions", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(http.MethodPost); code != http.StatusOK {
		t.Fatalf("first POST: got %d", code)
	}
	if code := do(http.MethodPost); code != http.StatusTooManyRequests {
		t.Fatalf("second POST: got %d", code)
	}
	// Reads never hit the limiter.
	for i := 0; i < 5; i++ {
		if code := do(http.MethodGet); code != http.StatusOK {
			t.Fatalf("GET %d: got %d", i, code)
		}
	}
}
