package prediction

import "testing"

func vote(userID string, matchID int64, w Winner) Prediction {
	return Prediction{UserID: userID, MatchID: matchID, Winner: w}
}

func TestAggregate(t *testing.T) {
	items := []Prediction{
		vote("u1", 555, WinnerHome),
		vote("u2", 555, WinnerHome),
		vote("u3", 555, WinnerAway),
		vote("u4", 555, WinnerHome),
		vote("u1", 556, WinnerDraw),
		vote("u9", 999, WinnerHome),
	}

	got := Aggregate([]int64{555, 556, 557}, items, AggregateOptions{})

	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d: %+v", len(got), got)
	}
	if want := (Summary{HomePercent: 75, DrawPercent: 0, AwayPercent: 25, Total: 4}); got[555] != want {
		t.Fatalf("unexpected summary for 555: got=%+v want=%+v", got[555], want)
	}
	if want := (Summary{DrawPercent: 100, Total: 1}); got[556] != want {
		t.Fatalf("unexpected summary for 556: got=%+v want=%+v", got[556], want)
	}
	if _, ok := got[557]; ok {
		t.Fatalf("match without predictions must have no summary")
	}
	if _, ok := got[999]; ok {
		t.Fatalf("match outside the requested set must be ignored")
	}
}

func TestAggregateRoundsIndependently(t *testing.T) {
	items := []Prediction{
		vote("u1", 1, WinnerHome),
		vote("u2", 1, WinnerDraw),
		vote("u3", 1, WinnerAway),
	}

	got := Aggregate([]int64{1}, items, AggregateOptions{})[1]
	if got.HomePercent != 33 || got.DrawPercent != 33 || got.AwayPercent != 33 || got.Total != 3 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestAggregateTotalInvariant(t *testing.T) {
	for h := 0; h <= 5; h++ {
		for d := 0; d <= 5; d++ {
			for a := 0; a <= 5; a++ {
				n := h + d + a
				items := make([]Prediction, 0, n)
				for i := 0; i < h; i++ {
					items = append(items, vote("h", 7, WinnerHome))
				}
				for i := 0; i < d; i++ {
					items = append(items, vote("d", 7, WinnerDraw))
				}
				for i := 0; i < a; i++ {
					items = append(items, vote("a", 7, WinnerAway))
				}

				got, ok := Aggregate([]int64{7}, items, AggregateOptions{})[7]
				if n == 0 {
					if ok {
						t.Fatalf("expected no summary for zero votes")
					}
					continue
				}
				want := Summary{
					HomePercent: percent(h, n),
					DrawPercent: percent(d, n),
					AwayPercent: percent(a, n),
					Total:       n,
				}
				if got != want {
					t.Fatalf("h=%d d=%d a=%d: got=%+v want=%+v", h, d, a, got, want)
				}
			}
		}
	}
}

func TestAggregateScorelineOnlyPredictionsHaveNoSummary(t *testing.T) {
	items := []Prediction{
		{UserID: "u1", MatchID: 10, HomeScore: intPtr(3), AwayScore: intPtr(0)},
		{UserID: "u2", MatchID: 10, HomeScore: intPtr(1), AwayScore: intPtr(1)},
	}

	got := Aggregate([]int64{10}, items, AggregateOptions{})
	if _, ok := got[10]; ok {
		t.Fatalf("scoreline-only predictions must not produce a summary: %+v", got[10])
	}
}

func TestAggregateIncludeImpliedWinners(t *testing.T) {
	items := []Prediction{
		{UserID: "u1", MatchID: 10, HomeScore: intPtr(3), AwayScore: intPtr(0)},
		{UserID: "u2", MatchID: 10, HomeScore: intPtr(1), AwayScore: intPtr(1)},
		{UserID: "u3", MatchID: 10, HomeScore: intPtr(1)},
		vote("u4", 10, WinnerAway),
	}

	got := Aggregate([]int64{10}, items, AggregateOptions{IncludeImpliedWinners: true})[10]
	if want := (Summary{HomePercent: 33, DrawPercent: 33, AwayPercent: 33, Total: 3}); got != want {
		t.Fatalf("unexpected summary: got=%+v want=%+v", got, want)
	}
}
