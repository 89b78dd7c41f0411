package prediction

import "math"

// Summary is the consensus of winner votes for one match.
type Summary struct {
	HomePercent int
	DrawPercent int
	AwayPercent int
	Total       int
}

type AggregateOptions struct {
	// IncludeImpliedWinners counts a prediction without a winner choice when its
	// scoreline is complete.
	IncludeImpliedWinners bool
}

// Aggregate computes the consensus for each match in matchIDs. Matches with no
// counted votes have no entry. Percentages are rounded independently and may
// not sum to 100.
func Aggregate(matchIDs []int64, items []Prediction, opts AggregateOptions) map[int64]Summary {
	type tally struct {
		home, draw, away int
	}

	wanted := make(map[int64]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = struct{}{}
	}

	tallies := make(map[int64]*tally, len(matchIDs))
	for _, item := range items {
		if _, ok := wanted[item.MatchID]; !ok {
			continue
		}

		winner := item.Winner
		if winner == WinnerNone && opts.IncludeImpliedWinners {
			winner, _ = item.ImpliedWinner()
		}

		t := tallies[item.MatchID]
		if t == nil {
			t = &tally{}
		}
		switch winner {
		case WinnerHome:
			t.home++
		case WinnerDraw:
			t.draw++
		case WinnerAway:
			t.away++
		default:
			continue
		}
		tallies[item.MatchID] = t
	}

	out := make(map[int64]Summary, len(tallies))
	for matchID, t := range tallies {
		n := t.home + t.draw + t.away
		if n == 0 {
			continue
		}
		out[matchID] = Summary{
			HomePercent: percent(t.home, n),
			DrawPercent: percent(t.draw, n),
			AwayPercent: percent(t.away, n),
			Total:       n,
		}
	}
	return out
}

func percent(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}
