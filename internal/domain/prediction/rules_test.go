package prediction

import (
	"errors"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		targetErr error
	}{
		{name: "winner only", draft: Draft{Winner: WinnerDraw}},
		{name: "scoreline only", draft: Draft{HomeScore: intPtr(0), AwayScore: intPtr(3)}},
		{name: "consistent home", draft: Draft{HomeScore: intPtr(2), AwayScore: intPtr(1), Winner: WinnerHome}},
		{name: "consistent away", draft: Draft{HomeScore: intPtr(0), AwayScore: intPtr(1), Winner: WinnerAway}},
		{name: "consistent draw", draft: Draft{HomeScore: intPtr(2), AwayScore: intPtr(2), Winner: WinnerDraw}},
		{name: "half scoreline counts missing side as zero", draft: Draft{HomeScore: intPtr(1), Winner: WinnerHome}},
		{name: "empty", draft: Draft{}, targetErr: ErrEmptyPrediction},
		{name: "negative home", draft: Draft{HomeScore: intPtr(-1), AwayScore: intPtr(0)}, targetErr: ErrNegativeScore},
		{name: "negative away with winner", draft: Draft{HomeScore: intPtr(3), AwayScore: intPtr(-2), Winner: WinnerHome}, targetErr: ErrNegativeScore},
		{name: "home needs lead", draft: Draft{HomeScore: intPtr(1), AwayScore: intPtr(1), Winner: WinnerHome}, targetErr: ErrWinnerScoreMismatch},
		{name: "away needs lead", draft: Draft{HomeScore: intPtr(2), AwayScore: intPtr(1), Winner: WinnerAway}, targetErr: ErrWinnerScoreMismatch},
		{name: "draw needs level", draft: Draft{HomeScore: intPtr(2), AwayScore: intPtr(1), Winner: WinnerDraw}, targetErr: ErrWinnerScoreMismatch},
		{name: "half scoreline mismatch", draft: Draft{AwayScore: intPtr(0), Winner: WinnerAway}, targetErr: ErrWinnerScoreMismatch},
		{name: "unknown winner", draft: Draft{Winner: Winner("BOTH")}, targetErr: ErrUnknownWinner},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDraft(tc.draft)
			if tc.targetErr == nil && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestValidateDraftNegativeScoreWinsOverEveryWinner(t *testing.T) {
	winners := []Winner{WinnerNone, WinnerHome, WinnerDraw, WinnerAway}
	for _, w := range winners {
		for home := -3; home <= 3; home++ {
			for away := -3; away <= 3; away++ {
				if home >= 0 && away >= 0 {
					continue
				}
				err := ValidateDraft(Draft{HomeScore: intPtr(home), AwayScore: intPtr(away), Winner: w})
				if !errors.Is(err, ErrNegativeScore) {
					t.Fatalf("winner=%q %d-%d: expected negative score, got %v", w, home, away, err)
				}
			}
		}
	}
}

func TestValidateDraftMismatchIsSymmetric(t *testing.T) {
	for home := 0; home <= 4; home++ {
		for away := 0; away <= 4; away++ {
			for _, w := range []Winner{WinnerHome, WinnerDraw, WinnerAway} {
				consistent := (w == WinnerHome && home > away) ||
					(w == WinnerAway && away > home) ||
					(w == WinnerDraw && home == away)

				err := ValidateDraft(Draft{HomeScore: intPtr(home), AwayScore: intPtr(away), Winner: w})
				if consistent && err != nil {
					t.Fatalf("winner=%s %d-%d: expected valid, got %v", w, home, away, err)
				}
				if !consistent && !errors.Is(err, ErrWinnerScoreMismatch) {
					t.Fatalf("winner=%s %d-%d: expected mismatch, got %v", w, home, away, err)
				}
			}
		}
	}
}

func TestValidateDraftMismatchCarriesExpectedLeader(t *testing.T) {
	err := ValidateDraft(Draft{HomeScore: intPtr(2), AwayScore: intPtr(1), Winner: WinnerDraw})

	var mismatch *WinnerScoreMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected WinnerScoreMismatchError, got %T", err)
	}
	if mismatch.ExpectedLeader != WinnerDraw || mismatch.Implied != WinnerHome {
		t.Fatalf("unexpected mismatch detail: %+v", mismatch)
	}
}

func TestValidateDraftNegativeScoreCarriesSide(t *testing.T) {
	err := ValidateDraft(Draft{HomeScore: intPtr(1), AwayScore: intPtr(-4)})

	var negative *NegativeScoreError
	if !errors.As(err, &negative) {
		t.Fatalf("expected NegativeScoreError, got %T", err)
	}
	if negative.Side != SideAway || negative.Value != -4 {
		t.Fatalf("unexpected negative score detail: %+v", negative)
	}
}

func TestDraftNormalize(t *testing.T) {
	d := Draft{HomeScore: intPtr(2), Winner: WinnerHome}.Normalize()
	if d.AwayScore == nil || *d.AwayScore != 0 || *d.HomeScore != 2 {
		t.Fatalf("unexpected normalized draft: %+v", d)
	}

	empty := Draft{Winner: WinnerAway}.Normalize()
	if empty.HomeScore != nil || empty.AwayScore != nil {
		t.Fatalf("winner-only draft must stay without scoreline: %+v", empty)
	}
}

func TestParseWinner(t *testing.T) {
	got, err := ParseWinner(" home ")
	if err != nil || got != WinnerHome {
		t.Fatalf("unexpected parse result: %q %v", got, err)
	}
	got, err = ParseWinner("")
	if err != nil || got != WinnerNone {
		t.Fatalf("blank winner must parse to none: %q %v", got, err)
	}
	if _, err := ParseWinner("tie"); !errors.Is(err, ErrUnknownWinner) {
		t.Fatalf("expected ErrUnknownWinner, got %v", err)
	}
}
