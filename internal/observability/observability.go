package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/match-predictions/internal/config"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
)

// Stack holds the process-wide telemetry started at boot: uptrace tracing,
// pyroscope profiling and the pprof debug listener. Disabled parts are nil.
type Stack struct {
	logger   *logging.Logger
	tracing  func(context.Context) error
	profiler func() error
	pprof    *pprofServer
}

// Start brings up every enabled part. On error the parts already running are
// stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability")}

	s.tracing = startTracing(cfg, s.logger)

	profiler, err := startProfiling(cfg, s.logger)
	if err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	s.profiler = profiler

	pprof, err := startPprof(cfg, s.logger)
	if err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	s.pprof = pprof

	return s, nil
}

// Shutdown stops the debug listener first and flushes traces last so spans
// emitted during shutdown are still exported.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.pprof != nil {
		errs = append(errs, s.pprof.stop(ctx))
	}
	if s.profiler != nil {
		errs = append(errs, s.profiler())
	}
	if s.tracing != nil {
		errs = append(errs, s.tracing(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.logger.Info("observability stopped")
	return nil
}

// Enabled reports which parts are running, for boot logs and tests.
func (s *Stack) Enabled() map[string]bool {
	if s == nil {
		return map[string]bool{}
	}
	return map[string]bool{
		"tracing":   s.tracing != nil,
		"profiling": s.profiler != nil,
		"pprof":     s.pprof != nil,
	}
}
