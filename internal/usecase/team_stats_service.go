package usecase

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
	"github.com/riskibarqy/match-predictions/internal/platform/cache"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
	"github.com/riskibarqy/match-predictions/internal/platform/metrics"
)

const defaultPlayerLimit = 20

// TeamData is the cached (team, players) pair. A nil Team means "team not found".
type TeamData struct {
	Team    *teamstats.TeamStatistics
	Players []playerstats.PlayerStatistics
}

func (d TeamData) Found() bool {
	return d.Team != nil
}

func emptyTeamData() TeamData {
	return TeamData{Players: []playerstats.PlayerStatistics{}}
}

type TeamStatsConfig struct {
	PlayerLimit int
}

// TeamStatsService is a read-through cache over team and player statistics.
// Entries expire by TTL only; the cache decides the TTL.
type TeamStatsService struct {
	teamRepo   teamstats.Repository
	playerRepo playerstats.Repository
	cache      cache.Cache[TeamData]
	cfg        TeamStatsConfig
	logger     *logging.Logger
}

func NewTeamStatsService(
	teamRepo teamstats.Repository,
	playerRepo playerstats.Repository,
	teamCache cache.Cache[TeamData],
	cfg TeamStatsConfig,
	logger *logging.Logger,
) *TeamStatsService {
	if cfg.PlayerLimit <= 0 {
		cfg.PlayerLimit = defaultPlayerLimit
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamStatsService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		cache:      teamCache,
		cfg:        cfg,
		logger:     logger.Named("teamstats"),
	}
}

// GetTeamData never fails: backend errors yield an empty result that is not cached.
func (s *TeamStatsService) GetTeamData(ctx context.Context, teamSlug, league string) TeamData {
	league = strings.TrimSpace(league)
	name := TeamNameFromSlug(teamSlug)
	if name == "" || league == "" {
		return emptyTeamData()
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.TeamStatsService.GetTeamData",
		attribute.String("team.name", name),
		attribute.String("team.league", league),
	)
	defer span.End()

	loaded := false
	data, err := s.cache.GetOrLoad(ctx, TeamDataCacheKey(teamSlug, league), func(ctx context.Context) (TeamData, error) {
		loaded = true
		return s.load(ctx, name, league)
	})
	if loaded {
		metrics.TeamDataCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
	} else {
		metrics.TeamDataCacheRequests.WithLabelValues(metrics.CacheHit).Inc()
	}
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "team statistics unavailable",
			"team", name,
			"league", league,
			"error", err,
		)
		return emptyTeamData()
	}
	return data
}

func (s *TeamStatsService) load(ctx context.Context, name, league string) (TeamData, error) {
	team, found, err := s.teamRepo.GetByLeagueAndTeamName(ctx, league, name)
	if err != nil {
		return TeamData{}, fetchError("get team statistics", err)
	}
	if !found {
		return emptyTeamData(), nil
	}

	out := TeamData{Team: &team, Players: []playerstats.PlayerStatistics{}}
	if !team.HasTeam() {
		return out, nil
	}

	players, err := s.playerRepo.ListByTeam(ctx, team.TeamID, s.cfg.PlayerLimit)
	if err != nil {
		return TeamData{}, fetchError("list player statistics", err)
	}
	if players != nil {
		out.Players = players
	}
	return out, nil
}

// TeamNameFromSlug turns "manchester-united" into "Manchester United". The
// lookup is case-insensitive, so casing only matters for display and logs.
func TeamNameFromSlug(teamSlug string) string {
	parts := strings.FieldsFunc(teamSlug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(parts) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(parts, " "))
}

// TeamDataCacheKey canonicalises both parts so "Manchester United" and
// "manchester-united" share an entry.
func TeamDataCacheKey(teamSlug, league string) string {
	return "teamdata:" + slug.Make(league) + ":" + slug.Make(teamSlug)
}
