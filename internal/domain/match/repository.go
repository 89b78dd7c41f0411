package match

import (
	"context"
	"time"
)

type Repository interface {
	// ListByKickoffRange returns matches with from <= kickoff_at <= to, ordered by kickoff.
	ListByKickoffRange(ctx context.Context, from, to time.Time) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
}
