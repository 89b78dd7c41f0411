package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/match-predictions/internal/domain/match"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
	"github.com/riskibarqy/match-predictions/internal/platform/metrics"
)

const defaultWarmWorkers = 4

type WarmResult struct {
	Day        time.Time
	Teams      int
	Found      int
	DurationMs int64
}

// CacheWarmer preloads team data for every team playing on a day.
type CacheWarmer struct {
	board   *BoardService
	teams   *TeamStatsService
	workers int
	logger  *logging.Logger
}

func NewCacheWarmer(board *BoardService, teams *TeamStatsService, workers int, logger *logging.Logger) *CacheWarmer {
	if workers <= 0 {
		workers = defaultWarmWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CacheWarmer{
		board:   board,
		teams:   teams,
		workers: workers,
		logger:  logger.Named("cache_warmer"),
	}
}

func (w *CacheWarmer) WarmDay(ctx context.Context, day time.Time) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CacheWarmer.WarmDay")
	defer span.End()

	start := time.Now()
	from, _ := match.DayWindow(day, w.board.Location())
	result := WarmResult{Day: from}

	matches, err := w.board.ListMatchesForDay(ctx, day)
	if err != nil {
		recordSpanError(span, err)
		return result, err
	}

	type teamKey struct{ slug, league string }
	seen := make(map[teamKey]struct{}, len(matches)*2)
	targets := make([]teamKey, 0, len(matches)*2)
	for _, m := range matches {
		for _, name := range []string{m.HomeTeam, m.AwayTeam} {
			key := teamKey{slug: name, league: m.League}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			targets = append(targets, key)
		}
	}
	result.Teams = len(targets)
	if len(targets) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(w.workers)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var found atomic.Int32
	var workers sync.WaitGroup
	for _, target := range targets {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if w.teams.GetTeamData(ctx, target.slug, target.league).Found() {
				found.Add(1)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return result, fmt.Errorf("submit warm task: %w", err)
		}
	}
	workers.Wait()

	result.Found = int(found.Load())
	result.DurationMs = time.Since(start).Milliseconds()
	metrics.CacheWarmDuration.Observe(time.Since(start).Seconds())
	w.logger.InfoContext(ctx, "team data cache warmed",
		"day", from.Format(time.DateOnly),
		"teams", result.Teams,
		"found", result.Found,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}
