package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/match-predictions/internal/config"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
)

// startTracing installs the global otel providers through uptrace. It returns
// nil when tracing is off or no DSN is configured.
func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	switch {
	case !cfg.UptraceEnabled:
		return nil
	case dsn == "":
		logger.Warn("tracing requested without UPTRACE_DSN, leaving it off")
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("tracing exported to uptrace", "service", cfg.ServiceName, "version", cfg.ServiceVersion)

	return uptrace.Shutdown
}
