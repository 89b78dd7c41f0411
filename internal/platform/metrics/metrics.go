package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	PredictionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_submitted_total",
		Help: "Prediction submissions by outcome",
	}, []string{"result"})

	PredictionValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prediction_validation_failures_total",
		Help: "Rejected prediction drafts by violated rule",
	}, []string{"reason"})

	TeamDataCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "team_data_cache_requests_total",
		Help: "Team statistics lookups served from cache or loaded from the database",
	}, []string{"result"})

	BoardFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_fetch_failures_total",
		Help: "Board reads that degraded to an empty result",
	}, []string{"fetch"})

	CircuitBreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circuit_breaker_transitions_total",
		Help: "Circuit breaker state changes by breaker and target state",
	}, []string{"breaker", "state"})

	CacheWarmDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "team_data_cache_warm_duration_seconds",
		Help:    "Duration of one cache warm run",
		Buckets: prometheus.DefBuckets,
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
