package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	qb "github.com/riskibarqy/match-predictions/internal/platform/querybuilder"
)

// predictionUpsertSuffix keeps public_id and created_at of the first
// submission and overwrites everything else.
var predictionUpsertSuffix = qb.OnConflictUpdate(
	[]string{"user_id", "match_id"},
	"home_score",
	"away_score",
	"winner",
	"user_name",
	"avatar_url",
	"home_team",
	"away_team",
	"league",
	"match_date",
	"updated_at",
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) ListByMatchIDs(ctx context.Context, matchIDs []int64) ([]prediction.Prediction, error) {
	if len(matchIDs) == 0 {
		return []prediction.Prediction{}, nil
	}

	query, args, err := qb.Select("*").From("user_predictions").
		Where(qb.AnyInt64("match_id", matchIDs)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by match ids query: %w", err)
	}

	return r.selectPredictions(ctx, "list predictions by match ids", query, args)
}

func (r *PredictionRepository) ListByUserAndMatchIDs(ctx context.Context, userID string, matchIDs []int64) ([]prediction.Prediction, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || len(matchIDs) == 0 {
		return []prediction.Prediction{}, nil
	}

	query, args, err := qb.Select("*").From("user_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.AnyInt64("match_id", matchIDs),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user predictions query: %w", err)
	}

	return r.selectPredictions(ctx, "list user predictions", query, args)
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	query, args, err := qb.InsertModel("user_predictions", predictionInsertFromDomain(item), predictionUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction user=%s match=%d: %w", item.UserID, item.MatchID, err)
	}
	return nil
}

func (r *PredictionRepository) selectPredictions(ctx context.Context, op, query string, args []any) ([]prediction.Prediction, error) {
	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:        row.PublicID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeScore: nullInt64ToIntPtr(row.HomeScore),
		AwayScore: nullInt64ToIntPtr(row.AwayScore),
		Winner:    prediction.Winner(strings.ToUpper(strings.TrimSpace(row.Winner.String))),
		Display: prediction.Display{
			UserName:  row.UserName,
			AvatarURL: row.AvatarURL,
			HomeTeam:  row.HomeTeam,
			AwayTeam:  row.AwayTeam,
			League:    row.League,
			MatchDate: row.MatchDate,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func predictionInsertFromDomain(item prediction.Prediction) predictionInsertModel {
	return predictionInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		MatchID:   item.MatchID,
		HomeScore: intPtrToInt64Ptr(item.HomeScore),
		AwayScore: intPtrToInt64Ptr(item.AwayScore),
		Winner:    nullableString(string(item.Winner)),
		UserName:  item.Display.UserName,
		AvatarURL: item.Display.AvatarURL,
		HomeTeam:  item.Display.HomeTeam,
		AwayTeam:  item.Display.AwayTeam,
		League:    item.Display.League,
		MatchDate: item.Display.MatchDate,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
