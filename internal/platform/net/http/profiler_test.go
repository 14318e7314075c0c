package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inputdash/internal/platform/config"
	phttp "inputdash/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	for _, enabled := range []bool{true, false} {
		r := phttp.NewServer(config.New()).Router()
		phttp.MountProfiler(r, "/debug", enabled)

		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
		want := http.StatusNotFound
		if enabled {
			want = http.StatusOK
		}
		if rec.Code != want {
			t.Fatalf("enabled=%v: got %d want %d", enabled, rec.Code, want)
		}
	}
}

func TestNewServer_OptsSeeMuxFirst(t *testing.T) {
	t.Parallel()
	srv := phttp.NewServer(config.New(), func(m *chi.Mux) {
		m.Use(chimw.Heartbeat("/health"))
		// chi only runs middleware once a route exists
		m.Get("/", func(http.ResponseWriter, *http.Request) {})
	})
	if srv.Addr() != ":4000" {
		t.Fatalf("addr = %q", srv.Addr())
	}

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "." {
		t.Fatalf("heartbeat = %d %q", rec.Code, rec.Body.String())
	}
}
