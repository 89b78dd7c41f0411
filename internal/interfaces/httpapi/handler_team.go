package httpapi

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/match-predictions/internal/usecase"
)

// GetTeamData answers 200 with found=false for unknown teams so match cards
// can render without stats.
func (h *Handler) GetTeamData(w http.ResponseWriter, r *http.Request) {
	league := r.PathValue("league")
	teamSlug := r.PathValue("teamSlug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamData",
		attribute.String("team.league", league),
		attribute.String("team.slug", teamSlug),
	)
	defer span.End()

	if h.teamStatsService == nil {
		writeError(ctx, w, fmt.Errorf("%w: team stats service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	data := h.teamStatsService.GetTeamData(ctx, teamSlug, league)
	writeSuccess(ctx, w, http.StatusOK, teamDataToDTO(data))
}
