package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/match-predictions/internal/config"
	"github.com/riskibarqy/match-predictions/internal/platform/cache"
	"github.com/riskibarqy/match-predictions/internal/usecase"
)

const warmJobTimeout = 2 * time.Minute

func (s *Server) scheduleJobs(cfg config.Config, warmer *usecase.CacheWarmer, stores []*cache.Store) error {
	sched, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	s.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.CacheSweepInterval),
		gocron.NewTask(func() {
			removed := 0
			for _, store := range stores {
				removed += store.Sweep()
			}
			if removed > 0 {
				s.logger.Debug("expired cache entries swept", "removed", removed)
			}
		}),
		gocron.WithName("cache-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule cache sweep: %w", err)
	}

	if !cfg.CacheWarmEnabled {
		s.logger.Info("cache warm job disabled", "reason", "CACHE_WARM_ENABLED=false")
		return nil
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.CacheWarmInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), warmJobTimeout)
			defer cancel()

			result, err := warmer.WarmDay(ctx, time.Now().In(cfg.Location))
			if err != nil {
				s.logger.WarnContext(ctx, "scheduled cache warm failed", "error", err)
				return
			}
			s.logger.InfoContext(ctx, "scheduled cache warm finished",
				"date", result.Day.Format(time.DateOnly),
				"teams", result.Teams,
				"found", result.Found,
				"duration_ms", result.DurationMs,
			)
		}),
		gocron.WithName("team-data-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule cache warm: %w", err)
	}
	return nil
}
