package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/hooks/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/hooks/{name}", "200"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/hooks/search-results-prepend", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/hooks/{name}", "200"))
	if after != before+1 {
		t.Errorf("requests_total = %f, want %f", after, before+1)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("in-flight gauge = %f after request, want 0", v)
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/silent", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/unavailable", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	tests := []struct {
		path, status string
	}{
		{"/ok", "200"},
		{"/silent", "200"},
		{"/unavailable", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tc.path, http.NoBody))
			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			if after != before+1 {
				t.Errorf("requests_total{%s,%s} = %f, want %f", tc.path, tc.status, after, before+1)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope/123", http.NoBody))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	if after != before+1 {
		t.Errorf("unmatched route should be labeled unknown: %f -> %f", before, after)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf("normalizePath(\"\") = %q", got)
	}
	if got := normalizePath("/preferences"); got != "/preferences" {
		t.Errorf("normalizePath = %q", got)
	}
}
