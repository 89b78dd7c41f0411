package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/match-predictions/internal/domain/match"
	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	"github.com/riskibarqy/match-predictions/internal/domain/user"
	"github.com/riskibarqy/match-predictions/internal/platform/id"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
	"github.com/riskibarqy/match-predictions/internal/platform/metrics"
)

const (
	fetchMatches        = "matches"
	fetchPredictions    = "predictions"
	fetchOwnPredictions = "own_predictions"
	defaultRecentLimit  = 10
)

type BoardConfig struct {
	// Location defines the calendar day a date selection covers.
	Location    *time.Location
	RecentLimit int
	Consensus   prediction.AggregateOptions
}

// BoardDay is everything the predictions page shows for one calendar day.
// Failed reads are listed in Degraded and leave their part empty.
type BoardDay struct {
	Day       time.Time
	From      time.Time
	To        time.Time
	Matches   []match.Match
	Consensus map[int64]prediction.Summary
	Recent    []prediction.Prediction
	Own       map[int64]prediction.Prediction
	Degraded  []string
}

type BoardService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	idGen          id.Generator
	cfg            BoardConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewBoardService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	idGen id.Generator,
	cfg BoardConfig,
	logger *logging.Logger,
) *BoardService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = defaultRecentLimit
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &BoardService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		idGen:          idGen,
		cfg:            cfg,
		logger:         logger.Named("board"),
		now:            time.Now,
	}
}

func (s *BoardService) Location() *time.Location {
	return s.cfg.Location
}

func (s *BoardService) ListMatchesForDay(ctx context.Context, day time.Time) ([]match.Match, error) {
	from, to := match.DayWindow(day, s.cfg.Location)
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.ListMatchesForDay",
		attribute.String("board.from", from.Format(time.RFC3339)),
	)
	defer span.End()

	items, err := s.matchRepo.ListByKickoffRange(ctx, from, to)
	if err != nil {
		err = fetchError("list matches", err)
		recordSpanError(span, err)
		return nil, err
	}
	return items, nil
}

// ListPredictions returns all predictions for matchIDs, newest first.
func (s *BoardService) ListPredictions(ctx context.Context, matchIDs []int64) ([]prediction.Prediction, error) {
	if len(matchIDs) == 0 {
		return []prediction.Prediction{}, nil
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.ListPredictions", attribute.Int("board.match_count", len(matchIDs)))
	defer span.End()

	items, err := s.predictionRepo.ListByMatchIDs(ctx, matchIDs)
	if err != nil {
		err = fetchError("list predictions", err)
		recordSpanError(span, err)
		return nil, err
	}
	return items, nil
}

// ListUserPredictions indexes userID's predictions for matchIDs by match id.
func (s *BoardService) ListUserPredictions(ctx context.Context, userID string, matchIDs []int64) (map[int64]prediction.Prediction, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(matchIDs) == 0 {
		return map[int64]prediction.Prediction{}, nil
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.ListUserPredictions", attribute.Int("board.match_count", len(matchIDs)))
	defer span.End()

	items, err := s.predictionRepo.ListByUserAndMatchIDs(ctx, userID, matchIDs)
	if err != nil {
		err = fetchError("list own predictions", err)
		recordSpanError(span, err)
		return nil, err
	}

	out := make(map[int64]prediction.Prediction, len(items))
	for _, item := range items {
		out[item.MatchID] = item
	}
	return out, nil
}

func (s *BoardService) Consensus(matchIDs []int64, items []prediction.Prediction) map[int64]prediction.Summary {
	return prediction.Aggregate(matchIDs, items, s.cfg.Consensus)
}

// Recent keeps the newest predictions for the activity panel.
func (s *BoardService) Recent(items []prediction.Prediction) []prediction.Prediction {
	if len(items) > s.cfg.RecentLimit {
		items = items[:s.cfg.RecentLimit]
	}
	return append([]prediction.Prediction(nil), items...)
}

// LoadDay reads one calendar day for viewer (nil when signed out). Read
// failures degrade to empty parts and are never returned.
func (s *BoardService) LoadDay(ctx context.Context, day time.Time, viewer *user.Identity) BoardDay {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.LoadDay")
	defer span.End()

	from, to := match.DayWindow(day, s.cfg.Location)
	out := BoardDay{
		Day:       from,
		From:      from,
		To:        to,
		Matches:   []match.Match{},
		Consensus: map[int64]prediction.Summary{},
		Recent:    []prediction.Prediction{},
		Own:       map[int64]prediction.Prediction{},
	}

	matches, err := s.ListMatchesForDay(ctx, day)
	if err != nil {
		s.degrade(ctx, fetchMatches, err)
		out.Degraded = append(out.Degraded, fetchMatches)
		return out
	}
	out.Matches = matches
	matchIDs := match.IDs(matches)

	var (
		all    []prediction.Prediction
		allErr error
		own    map[int64]prediction.Prediction
		ownErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		all, allErr = s.ListPredictions(ctx, matchIDs)
	})
	if viewer != nil {
		wg.Go(func() {
			own, ownErr = s.ListUserPredictions(ctx, viewer.UserID, matchIDs)
		})
	}
	wg.Wait()

	if allErr != nil {
		s.degrade(ctx, fetchPredictions, allErr)
		out.Degraded = append(out.Degraded, fetchPredictions)
	} else {
		out.Consensus = s.Consensus(matchIDs, all)
		out.Recent = s.Recent(all)
	}
	if ownErr != nil {
		s.degrade(ctx, fetchOwnPredictions, ownErr)
		out.Degraded = append(out.Degraded, fetchOwnPredictions)
	} else if own != nil {
		out.Own = own
	}

	return out
}

// SubmitPrediction validates draft and upserts it as viewer's prediction for
// matchID. Invalid drafts never reach the store.
func (s *BoardService) SubmitPrediction(ctx context.Context, viewer user.Identity, matchID int64, draft prediction.Draft) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.SubmitPrediction", attribute.Int64("match.id", matchID))
	defer span.End()

	if strings.TrimSpace(viewer.UserID) == "" {
		return prediction.Prediction{}, ErrSignInRequired
	}
	if matchID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	if err := prediction.ValidateDraft(draft); err != nil {
		metrics.PredictionValidationFailures.WithLabelValues(ViolationReason(err)).Inc()
		metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		return prediction.Prediction{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		err = storeError(fmt.Errorf("get match: %w", err))
		recordSpanError(span, err)
		metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultUnavailable).Inc()
		return prediction.Prediction{}, err
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	publicID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
	}

	draft = draft.Normalize()
	now := s.now()
	item := prediction.Prediction{
		ID:        publicID,
		UserID:    viewer.UserID,
		MatchID:   m.ID,
		HomeScore: draft.HomeScore,
		AwayScore: draft.AwayScore,
		Winner:    draft.Winner,
		Display: prediction.Display{
			UserName:  viewer.Name,
			AvatarURL: viewer.AvatarURL,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			League:    m.League,
			MatchDate: m.KickoffAt,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.predictionRepo.Upsert(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "upsert prediction failed",
			"user_id", viewer.UserID,
			"match_id", matchID,
			"error", err,
		)
		err = storeError(err)
		recordSpanError(span, err)
		metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultUnavailable).Inc()
		return prediction.Prediction{}, err
	}

	metrics.PredictionsSubmitted.WithLabelValues(metrics.ResultOK).Inc()
	return item, nil
}

func (s *BoardService) degrade(ctx context.Context, fetch string, err error) {
	metrics.BoardFetchFailures.WithLabelValues(fetch).Inc()
	s.logger.WarnContext(ctx, "board read degraded to empty result", "fetch", fetch, "error", err)
}

// ViolationReason names the validation rule err violated, or "" when err is
// not a draft violation.
func ViolationReason(err error) string {
	switch {
	case errors.Is(err, prediction.ErrNegativeScore):
		return "negativeScore"
	case errors.Is(err, prediction.ErrWinnerScoreMismatch):
		return "winnerScoreMismatch"
	case errors.Is(err, prediction.ErrEmptyPrediction):
		return "emptyPrediction"
	case errors.Is(err, prediction.ErrUnknownWinner):
		return "unknownWinner"
	default:
		return ""
	}
}
