package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPredictionsSubmittedCountsByResult(t *testing.T) {
	before := testutil.ToFloat64(PredictionsSubmitted.WithLabelValues(ResultOK))
	PredictionsSubmitted.WithLabelValues(ResultOK).Inc()

	if got := testutil.ToFloat64(PredictionsSubmitted.WithLabelValues(ResultOK)); got != before+1 {
		t.Fatalf("expected counter to grow by one, before=%v after=%v", before, got)
	}
}
