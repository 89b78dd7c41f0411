package observability

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/riskibarqy/match-predictions/internal/config"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
)

func TestStart_DisabledPartsStayOff(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "all disabled", cfg: config.Config{ServiceName: "match-predictions-api", AppEnv: config.EnvDev}},
		{name: "tracing without dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack, err := Start(tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			for part, on := range stack.Enabled() {
				if on {
					t.Fatalf("expected %s to stay off", part)
				}
			}
			if err := stack.Shutdown(t.Context()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestStart_PprofServesProfiles(t *testing.T) {
	stack, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = stack.Shutdown(t.Context()) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/debug/pprof/cmdline", stack.pprof.addr))
	if err != nil {
		t.Fatalf("get cmdline: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestStart_PprofAddressInUse(t *testing.T) {
	first, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = first.Shutdown(t.Context()) }()

	if _, err := Start(config.Config{PprofEnabled: true, PprofAddr: first.pprof.addr}, logging.NewNop()); err == nil {
		t.Fatalf("expected bind error for %s", first.pprof.addr)
	}
}

func TestShutdown_NilStack(t *testing.T) {
	var stack *Stack
	if err := stack.Shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown nil stack: %v", err)
	}
}
