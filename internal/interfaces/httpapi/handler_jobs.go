package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/match-predictions/internal/usecase"
)

func (h *Handler) RunCacheWarm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCacheWarm")
	defer span.End()

	if h.cacheWarmer == nil || h.boardService == nil {
		writeError(ctx, w, fmt.Errorf("%w: cache warmer is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	day, err := parseDay(r, h.boardService.Location(), h.now())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.cacheWarmer.WarmDay(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "cache warm job failed", "date", day.Format(time.DateOnly), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cacheWarmDTO{
		Date:       result.Day.Format(time.DateOnly),
		Teams:      result.Teams,
		Found:      result.Found,
		DurationMs: result.DurationMs,
	})
}
