package teamstats

import "context"

type Repository interface {
	// GetByLeagueAndTeamName matches teamName case-insensitively.
	GetByLeagueAndTeamName(ctx context.Context, league, teamName string) (TeamStatistics, bool, error)
}
