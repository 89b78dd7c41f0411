package playerstats

import "context"

type Repository interface {
	// ListByTeam returns at most limit players ordered by appearances, most first.
	ListByTeam(ctx context.Context, teamID int64, limit int) ([]PlayerStatistics, error)
}
