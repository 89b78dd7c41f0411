package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
	playerstatsmock "github.com/riskibarqy/match-predictions/internal/mocks/domain/playerstats"
	teamstatsmock "github.com/riskibarqy/match-predictions/internal/mocks/domain/teamstats"
	"github.com/riskibarqy/match-predictions/internal/platform/cache"
)

func newTeamStatsServiceWithMocks(t *testing.T) (*TeamStatsService, *teamstatsmock.Repository, *playerstatsmock.Repository, *cache.Store) {
	t.Helper()

	teamRepo := teamstatsmock.NewRepository(t)
	playerRepo := playerstatsmock.NewRepository(t)
	store := cache.NewStore(time.Hour)
	svc := NewTeamStatsService(teamRepo, playerRepo, cache.NewMemory[TeamData](store), TeamStatsConfig{PlayerLimit: 5}, nil)
	return svc, teamRepo, playerRepo, store
}

func TestTeamStatsService_GetTeamData_ServesRepeatedReadsFromCache(t *testing.T) {
	t.Parallel()

	svc, teamRepo, playerRepo, _ := newTeamStatsServiceWithMocks(t)
	teamRepo.On("GetByLeagueAndTeamName", mock.Anything, "Premier League", "Manchester United").
		Return(teamstats.TeamStatistics{ID: 9, TeamID: 33, TeamName: "Manchester United", League: "Premier League"}, true, nil).
		Once()
	playerRepo.On("ListByTeam", mock.Anything, int64(33), 5).
		Return([]playerstats.PlayerStatistics{{ID: 1, TeamID: 33, PlayerName: "Bruno Fernandes"}}, nil).
		Once()

	first := svc.GetTeamData(context.Background(), "manchester-united", "Premier League")
	second := svc.GetTeamData(context.Background(), "Manchester United", "Premier League")

	if !first.Found() || first.Team.TeamID != 33 || len(first.Players) != 1 {
		t.Fatalf("unexpected first read: %+v", first)
	}
	if !second.Found() || second.Players[0].PlayerName != "Bruno Fernandes" {
		t.Fatalf("expected cached second read, got %+v", second)
	}
}

func TestTeamStatsService_GetTeamData_CachesNotFound(t *testing.T) {
	t.Parallel()

	svc, teamRepo, playerRepo, store := newTeamStatsServiceWithMocks(t)
	teamRepo.On("GetByLeagueAndTeamName", mock.Anything, "Liga 1", "Bali United").
		Return(teamstats.TeamStatistics{}, false, nil).
		Once()

	for range 3 {
		got := svc.GetTeamData(context.Background(), "bali-united", "Liga 1")
		if got.Found() || got.Players == nil || len(got.Players) != 0 {
			t.Fatalf("expected empty not-found result, got %+v", got)
		}
	}
	if store.Len() != 1 {
		t.Fatalf("expected not-found entry to be cached, got %d entries", store.Len())
	}
	playerRepo.AssertNotCalled(t, "ListByTeam", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamStatsService_GetTeamData_DoesNotCacheBackendErrors(t *testing.T) {
	t.Parallel()

	svc, teamRepo, playerRepo, store := newTeamStatsServiceWithMocks(t)
	teamRepo.On("GetByLeagueAndTeamName", mock.Anything, "Premier League", "Arsenal").
		Return(teamstats.TeamStatistics{}, false, errors.New("pool exhausted")).
		Once()
	teamRepo.On("GetByLeagueAndTeamName", mock.Anything, "Premier League", "Arsenal").
		Return(teamstats.TeamStatistics{TeamID: 42, TeamName: "Arsenal"}, true, nil).
		Once()
	playerRepo.On("ListByTeam", mock.Anything, int64(42), 5).Return([]playerstats.PlayerStatistics{}, nil).Once()

	if got := svc.GetTeamData(context.Background(), "arsenal", "Premier League"); got.Found() {
		t.Fatalf("expected empty result on backend failure, got %+v", got)
	}
	if store.Len() != 0 {
		t.Fatalf("expected failure not to be cached")
	}
	if got := svc.GetTeamData(context.Background(), "arsenal", "Premier League"); !got.Found() {
		t.Fatalf("expected retry to reach the backend")
	}
}

func TestTeamStatsService_GetTeamData_SkipsPlayersWithoutTeamID(t *testing.T) {
	t.Parallel()

	svc, teamRepo, playerRepo, _ := newTeamStatsServiceWithMocks(t)
	teamRepo.On("GetByLeagueAndTeamName", mock.Anything, "Premier League", "Tottenham Hotspur").
		Return(teamstats.TeamStatistics{TeamName: "Tottenham Hotspur"}, true, nil).
		Once()

	got := svc.GetTeamData(context.Background(), "tottenham-hotspur", "Premier League")
	if !got.Found() || len(got.Players) != 0 {
		t.Fatalf("expected team without players, got %+v", got)
	}
	playerRepo.AssertNotCalled(t, "ListByTeam", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamStatsService_GetTeamData_BlankInput(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTeamStatsServiceWithMocks(t)
	if got := svc.GetTeamData(context.Background(), " - ", "Premier League"); got.Found() {
		t.Fatalf("expected empty result for blank slug")
	}
	if got := svc.GetTeamData(context.Background(), "arsenal", "  "); got.Found() {
		t.Fatalf("expected empty result for blank league")
	}
}

func TestTeamNameFromSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "manchester-united", want: "Manchester United"},
		{in: "persija_jakarta", want: "Persija Jakarta"},
		{in: "  arsenal ", want: "Arsenal"},
		{in: "--", want: ""},
	}
	for _, tc := range tests {
		if got := TeamNameFromSlug(tc.in); got != tc.want {
			t.Fatalf("TeamNameFromSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTeamDataCacheKey_CanonicalisesSlugAndLeague(t *testing.T) {
	t.Parallel()

	a := TeamDataCacheKey("Manchester United", "Premier League")
	b := TeamDataCacheKey("manchester-united", "premier-league")
	if a != b || a != "teamdata:premier-league:manchester-united" {
		t.Fatalf("expected shared cache key, got %q and %q", a, b)
	}
}
