package httpapi

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	"github.com/riskibarqy/match-predictions/internal/usecase"
)

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	if h.boardService == nil {
		writeError(ctx, w, fmt.Errorf("%w: board service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	day, err := parseDay(r, h.boardService.Location(), h.now())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	viewer := viewerFromContext(ctx)
	board := h.boardService.LoadDay(ctx, day, viewer)
	writeSuccess(ctx, w, http.StatusOK, boardToDTO(ctx, board, viewer != nil))
}

func (h *Handler) ListMatchPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPredictions")
	defer span.End()

	if h.boardService == nil {
		writeError(ctx, w, fmt.Errorf("%w: board service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attribute.Int64("match.id", matchID))

	matchIDs := []int64{matchID}
	items, err := h.boardService.ListPredictions(ctx, matchIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "list match predictions failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPredictionsDTO{
		MatchID:     matchID,
		Consensus:   consensusToDTO(h.boardService.Consensus(matchIDs, items), matchID),
		Predictions: predictionsToDTO(h.boardService.Recent(items)),
	})
}

func (h *Handler) SaveMyPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPrediction")
	defer span.End()

	if h.boardService == nil {
		writeError(ctx, w, fmt.Errorf("%w: board service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	viewer := viewerFromContext(ctx)
	if viewer == nil {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attribute.Int64("match.id", matchID))

	var req savePredictionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	winner, err := prediction.ParseWinner(req.Winner)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err))
		return
	}

	saved, err := h.boardService.SubmitPrediction(ctx, *viewer, matchID, prediction.Draft{
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Winner:    winner,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save prediction failed", "user_id", viewer.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(saved))
}
