package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/match-predictions/internal/config"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		ServiceName:          "match-predictions-api",
		HTTPAddr:             ":0",
		Location:             time.UTC,
		StorageDriver:        config.StorageMemory,
		CacheEnabled:         true,
		CacheTTL:             time.Minute,
		CacheSweepInterval:   time.Minute,
		BoardRecentLimit:     10,
		TeamStatsCacheTTL:    time.Hour,
		TeamStatsPlayerLimit: 20,
		CacheWarmInterval:    time.Hour,
		CacheWarmWorkers:     2,
		AnubisBaseURL:        "http://localhost:8081",
		AnubisIntrospectURL:  "/v1/auth/introspect",
		AnubisTimeout:        time.Second,
		AnubisCacheTTL:       time.Second,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	srv, err := NewHTTPServer(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	srv.Start()
	t.Cleanup(func() {
		if err := srv.closeResources(); err != nil {
			t.Errorf("close resources: %v", err)
		}
	})

	for _, path := range []string{"/healthz", "/v1/board", "/v1/leagues/Premier%20League/teams/arsenal"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status 200, got %d body=%s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, err := NewHTTPServer(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
