package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
	now   func() time.Time
}

func NewPredictionRepository(seed ...prediction.Prediction) *PredictionRepository {
	r := &PredictionRepository{
		items: make(map[string]prediction.Prediction, len(seed)),
		now:   time.Now,
	}
	for _, item := range seed {
		r.items[predictionKey(item.UserID, item.MatchID)] = item.Clone()
	}
	return r
}

func (r *PredictionRepository) ListByMatchIDs(_ context.Context, matchIDs []int64) ([]prediction.Prediction, error) {
	wanted := matchIDSet(matchIDs)

	r.mu.RLock()
	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if _, ok := wanted[item.MatchID]; ok {
			out = append(out, item.Clone())
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (r *PredictionRepository) ListByUserAndMatchIDs(_ context.Context, userID string, matchIDs []int64) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		if item, ok := r.items[predictionKey(userID, matchID)]; ok {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

// Upsert replaces every field except ID and CreatedAt of an existing row.
func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	key := predictionKey(item.UserID, item.MatchID)
	stored := item.Clone()
	if existing, ok := r.items[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.items[key] = stored
	return nil
}

func (r *PredictionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func predictionKey(userID string, matchID int64) string {
	return userID + "::" + strconv.FormatInt(matchID, 10)
}

func matchIDSet(ids []int64) map[int64]struct{} {
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func sortNewestFirst(items []prediction.Prediction) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].UserID < items[j].UserID
	})
}
