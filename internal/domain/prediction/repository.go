package prediction

import "context"

type Repository interface {
	// ListByMatchIDs returns every prediction for the given matches, newest first.
	ListByMatchIDs(ctx context.Context, matchIDs []int64) ([]Prediction, error)
	ListByUserAndMatchIDs(ctx context.Context, userID string, matchIDs []int64) ([]Prediction, error)
	// Upsert inserts or replaces the row keyed by (UserID, MatchID).
	Upsert(ctx context.Context, item Prediction) error
}
