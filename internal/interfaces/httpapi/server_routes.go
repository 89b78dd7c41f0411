package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-predictions/internal/domain/user"
	"github.com/riskibarqy/match-predictions/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !metricsEnabled {
		return
	}

	mux.Handle("GET /metrics", metrics.Handler())
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler, verifier user.TokenVerifier) {
	// Anonymous viewers see the board without their own predictions.
	mux.Handle("GET /v1/board", OptionalAuth(verifier, handler.logger, http.HandlerFunc(handler.GetBoard)))
	mux.HandleFunc("GET /v1/matches/{matchID}/predictions", handler.ListMatchPredictions)
	mux.Handle("PUT /v1/matches/{matchID}/prediction", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyPrediction)))
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{league}/teams/{teamSlug}", handler.GetTeamData)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/cache/warm", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCacheWarm)))
}
