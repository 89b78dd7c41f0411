package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/match-predictions/internal/domain/user"
	"github.com/riskibarqy/match-predictions/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-predictions/internal/platform/cache"
	"github.com/riskibarqy/match-predictions/internal/platform/id"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
	"github.com/riskibarqy/match-predictions/internal/usecase"
)

const testJobToken = "job-secret"

var handlerDay = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

type stubVerifier struct {
	principals map[string]user.Principal
	failures   map[string]error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if err, ok := v.failures[token]; ok {
		return user.Principal{}, err
	}
	p, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

type testEnvelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (http.Handler, *memory.PredictionRepository) {
	t.Helper()

	logger := logging.NewNop()
	predictionRepo := memory.NewPredictionRepository(memory.SeedPredictions(handlerDay)...)
	board := usecase.NewBoardService(
		memory.NewMatchRepository(memory.SeedMatches(handlerDay)),
		predictionRepo,
		id.NewUUIDGenerator(),
		usecase.BoardConfig{Location: time.UTC},
		logger,
	)
	teams := usecase.NewTeamStatsService(
		memory.NewTeamStatsRepository(memory.SeedTeamStats()),
		memory.NewPlayerStatsRepository(memory.SeedPlayerStats()),
		cache.NewMemory[usecase.TeamData](cache.NewStore(time.Hour)),
		usecase.TeamStatsConfig{},
		logger,
	)
	warmer := usecase.NewCacheWarmer(board, teams, 2, logger)

	handler := NewHandler(board, teams, warmer, logger)
	handler.now = func() time.Time { return handlerDay.Add(9 * time.Hour) }

	verifier := stubVerifier{principals: map[string]user.Principal{
		"token-dewi": {UserID: "seed-user-1", Name: "Dewi"},
		"token-new":  {UserID: "user-new", Email: "new@example.com"},
	}, failures: map[string]error{
		"token-outage": fmt.Errorf("%w: anubis circuit open", usecase.ErrDependencyUnavailable),
	}}

	router := NewRouter(handler, verifier, logger, RouterConfig{
		CORSAllowedOrigins: []string{"*"},
		InternalJobToken:   testJobToken,
	})
	return router, predictionRepo
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v (body=%s)", err, rec.Body.String())
	}
	return out
}

func errorReason[T any](env testEnvelope[T]) string {
	if env.Error == nil || len(env.Error.Errors) == 0 {
		return ""
	}
	return env.Error.Errors[0].Reason
}

func TestGetBoard_Anonymous(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/board?date=2025-03-15", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope[boardDTO](t, rec)
	if env.Data.Date != "2025-03-15" {
		t.Fatalf("unexpected date %q", env.Data.Date)
	}
	if len(env.Data.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(env.Data.Matches))
	}
	first := env.Data.Matches[0]
	want := consensusDTO{HomePercent: 67, DrawPercent: 0, AwayPercent: 33, Total: 3}
	if first.ID != memory.MatchIDArsenalLiverpool || first.Consensus == nil || *first.Consensus != want {
		t.Fatalf("unexpected first match %+v", first)
	}
	last := env.Data.Matches[2]
	if last.ID != memory.MatchIDPersijaPersib || last.Consensus != nil {
		t.Fatalf("expected no consensus for a match without votes, got %+v", last)
	}
	if first.MyPrediction != nil || first.CallToAction != "" {
		t.Fatalf("anonymous viewer must not get own predictions, got %+v", first)
	}
	if len(env.Data.RecentPredictions) != 5 || env.Data.RecentPredictions[0].UserName != "Raka" {
		t.Fatalf("unexpected recent predictions %+v", env.Data.RecentPredictions)
	}
}

func TestGetBoard_SignedInShowsOwnPredictions(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/board", "", map[string]string{"Authorization": "Bearer token-dewi"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope[boardDTO](t, rec)
	byID := map[int64]boardMatchDTO{}
	for _, m := range env.Data.Matches {
		byID[m.ID] = m
	}
	arsenal := byID[memory.MatchIDArsenalLiverpool]
	if arsenal.MyPrediction == nil || arsenal.MyPrediction.Winner != "HOME" || arsenal.CallToAction != "update" {
		t.Fatalf("expected own prediction for match 555, got %+v", arsenal)
	}
	persija := byID[memory.MatchIDPersijaPersib]
	if persija.MyPrediction != nil || persija.CallToAction != "make" {
		t.Fatalf("expected make call to action for match 557, got %+v", persija)
	}
}

func TestGetBoard_InvalidTokenRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/board", "", map[string]string{"Authorization": "Bearer expired"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestGetBoard_IdentityOutageServesAnonymously(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/board?date=2025-03-15", "", map[string]string{"Authorization": "Bearer token-outage"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope[boardDTO](t, rec)
	if len(env.Data.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(env.Data.Matches))
	}
	for _, m := range env.Data.Matches {
		if m.MyPrediction != nil || m.CallToAction != "" {
			t.Fatalf("expected anonymous view during identity outage, got %+v", m)
		}
	}
}

func TestGetBoard_InvalidDate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/board?date=15-03-2025", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSaveMyPrediction(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		path       string
		body       string
		wantStatus int
		wantReason string
	}{
		{
			name:       "missing auth",
			path:       "/v1/matches/555/prediction",
			body:       `{"winner":"HOME"}`,
			wantStatus: http.StatusUnauthorized,
			wantReason: "unauthorized",
		},
		{
			name:       "winner contradicts scoreline",
			token:      "token-new",
			path:       "/v1/matches/555/prediction",
			body:       `{"winner":"DRAW","home_score":2,"away_score":1}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "winnerScoreMismatch",
		},
		{
			name:       "negative score",
			token:      "token-new",
			path:       "/v1/matches/555/prediction",
			body:       `{"home_score":-1,"away_score":0}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "negativeScore",
		},
		{
			name:       "empty draft",
			token:      "token-new",
			path:       "/v1/matches/555/prediction",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "emptyPrediction",
		},
		{
			name:       "unknown winner",
			token:      "token-new",
			path:       "/v1/matches/555/prediction",
			body:       `{"winner":"NOBODY"}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "unknownWinner",
		},
		{
			name:       "unknown field",
			token:      "token-new",
			path:       "/v1/matches/555/prediction",
			body:       `{"winner":"HOME","confidence":9}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidInput",
		},
		{
			name:       "bad match id",
			token:      "token-new",
			path:       "/v1/matches/abc/prediction",
			body:       `{"winner":"HOME"}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidInput",
		},
		{
			name:       "score out of range",
			token:      "token-new",
			path:       "/v1/matches/555/prediction",
			body:       `{"winner":"HOME","home_score":3000000000,"away_score":0}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidInput",
		},
		{
			name:       "unknown match",
			token:      "token-new",
			path:       "/v1/matches/999/prediction",
			body:       `{"winner":"HOME"}`,
			wantStatus: http.StatusNotFound,
			wantReason: "notFound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newTestRouter(t)
			before := repo.Len()

			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			rec := doRequest(t, router, http.MethodPut, tt.path, tt.body, headers)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d body=%s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if got := errorReason(decodeEnvelope[predictionDTO](t, rec)); got != tt.wantReason {
				t.Fatalf("expected reason %q, got %q", tt.wantReason, got)
			}
			if repo.Len() != before {
				t.Fatalf("rejected request must not reach the store")
			}
		})
	}
}

func TestSaveMyPrediction_UpsertsAndRefreshesConsensus(t *testing.T) {
	router, repo := newTestRouter(t)
	before := repo.Len()
	auth := map[string]string{"Authorization": "Bearer token-new"}

	rec := doRequest(t, router, http.MethodPut, "/v1/matches/555/prediction", `{"winner":"home","home_score":2}`, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	saved := decodeEnvelope[predictionDTO](t, rec).Data
	if saved.UserName != "new@example.com" || saved.HomeTeam != "Arsenal" || saved.Winner != "HOME" {
		t.Fatalf("unexpected saved prediction %+v", saved)
	}
	if saved.AwayScore == nil || *saved.AwayScore != 0 {
		t.Fatalf("expected missing away score to be stored as 0, got %v", saved.AwayScore)
	}

	rec = doRequest(t, router, http.MethodPut, "/v1/matches/555/prediction", `{"winner":"AWAY"}`, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on update, got %d", rec.Code)
	}
	if repo.Len() != before+1 {
		t.Fatalf("expected one stored row per user and match, got %d rows", repo.Len())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/555/predictions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	env := decodeEnvelope[matchPredictionsDTO](t, rec)
	want := consensusDTO{HomePercent: 50, DrawPercent: 0, AwayPercent: 50, Total: 4}
	if env.Data.Consensus == nil || *env.Data.Consensus != want {
		t.Fatalf("unexpected consensus: got=%+v want=%+v", env.Data.Consensus, want)
	}
	if len(env.Data.Predictions) != 4 || env.Data.Predictions[0].UserID != "user-new" {
		t.Fatalf("expected newest prediction first, got %+v", env.Data.Predictions)
	}
}

func TestGetTeamData(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/leagues/Premier%20League/teams/arsenal", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	env := decodeEnvelope[teamDataDTO](t, rec)
	if !env.Data.Found || env.Data.Team == nil || env.Data.Team.TeamName != "Arsenal" || len(env.Data.Players) != 3 {
		t.Fatalf("unexpected team data %+v", env.Data)
	}
	if env.Data.Team.GoalDifference != 14 {
		t.Fatalf("expected goal difference 14, got %d", env.Data.Team.GoalDifference)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/Premier%20League/teams/unknown-fc", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for unknown team, got %d", rec.Code)
	}
	env = decodeEnvelope[teamDataDTO](t, rec)
	if env.Data.Found || env.Data.Team != nil || len(env.Data.Players) != 0 {
		t.Fatalf("expected empty team data, got %+v", env.Data)
	}
}

func TestRunCacheWarm(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/cache/warm?date=2025-03-15", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without job token, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/internal/cache/warm?date=2025-03-15", "", map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope[cacheWarmDTO](t, rec)
	if env.Data.Teams != 6 || env.Data.Found != 4 || env.Data.Date != "2025-03-15" {
		t.Fatalf("unexpected warm result %+v", env.Data)
	}
}

func TestHealthzAndMetricsRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected metrics route to be disabled, got %d", rec.Code)
	}
}
