package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
)

type TeamStatsRepository struct {
	mu    sync.RWMutex
	items []teamstats.TeamStatistics
}

func NewTeamStatsRepository(items []teamstats.TeamStatistics) *TeamStatsRepository {
	return &TeamStatsRepository{items: append([]teamstats.TeamStatistics(nil), items...)}
}

func (r *TeamStatsRepository) GetByLeagueAndTeamName(_ context.Context, league, teamName string) (teamstats.TeamStatistics, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.League == league && strings.EqualFold(item.TeamName, teamName) {
			return item, true, nil
		}
	}
	return teamstats.TeamStatistics{}, false, nil
}

type PlayerStatsRepository struct {
	mu     sync.RWMutex
	byTeam map[int64][]playerstats.PlayerStatistics
}

func NewPlayerStatsRepository(items []playerstats.PlayerStatistics) *PlayerStatsRepository {
	byTeam := make(map[int64][]playerstats.PlayerStatistics)
	for _, item := range items {
		byTeam[item.TeamID] = append(byTeam[item.TeamID], item)
	}
	return &PlayerStatsRepository{byTeam: byTeam}
}

func (r *PlayerStatsRepository) ListByTeam(_ context.Context, teamID int64, limit int) ([]playerstats.PlayerStatistics, error) {
	r.mu.RLock()
	out := append([]playerstats.PlayerStatistics(nil), r.byTeam[teamID]...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Appearances > out[j].Appearances
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
