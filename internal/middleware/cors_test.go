package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsTestHandler() http.Handler {
	return CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS_ReflectsAnyOrigin(t *testing.T) {
	t.Parallel()

	for _, origin := range []string{"https://example.com", "http://localhost:3000"} {
		req := httptest.NewRequest(http.MethodGet, "/protected/pokemon", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()

		corsTestHandler().ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", origin, got, origin)
		}
		if rec.Header().Get("Vary") != "Origin" {
			t.Errorf("origin %s: expected Vary: Origin", origin)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodOptions, "/protected/pokemon", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rec := httptest.NewRecorder()

	corsTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight should include allowed methods")
	}
	if rec.Header().Get("Access-Control-Max-Age") != corsMaxAge {
		t.Errorf("unexpected Max-Age: %s", rec.Header().Get("Access-Control-Max-Age"))
	}
}

func TestCORS_SameOriginSkipped(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	corsTestHandler().ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("same-origin requests should not get CORS headers")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
