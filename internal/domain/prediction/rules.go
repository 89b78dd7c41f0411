package prediction

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeScore       = errors.New("score must not be negative")
	ErrWinnerScoreMismatch = errors.New("winner does not match scoreline")
	ErrEmptyPrediction     = errors.New("prediction needs a scoreline or a winner")
	ErrUnknownWinner       = errors.New("unknown winner")
)

type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
)

// NegativeScoreError reports which side carried a negative score.
type NegativeScoreError struct {
	Side  Side
	Value int
}

func (e *NegativeScoreError) Error() string {
	return fmt.Sprintf("%s: side=%s value=%d", ErrNegativeScore, e.Side, e.Value)
}

func (e *NegativeScoreError) Unwrap() error {
	return ErrNegativeScore
}

// WinnerScoreMismatchError carries the result the chosen winner requires
// (HOME or AWAY to lead, or DRAW for level) and the one the scoreline implies.
type WinnerScoreMismatchError struct {
	ExpectedLeader Winner
	Implied        Winner
	HomeScore      int
	AwayScore      int
}

func (e *WinnerScoreMismatchError) Error() string {
	return fmt.Sprintf("%s: expected=%s scoreline=%d-%d", ErrWinnerScoreMismatch, e.ExpectedLeader, e.HomeScore, e.AwayScore)
}

func (e *WinnerScoreMismatchError) Unwrap() error {
	return ErrWinnerScoreMismatch
}

// ValidateDraft checks range, then winner/scoreline agreement, then emptiness.
// The first failing rule wins.
func ValidateDraft(d Draft) error {
	if d.HomeScore != nil && *d.HomeScore < 0 {
		return &NegativeScoreError{Side: SideHome, Value: *d.HomeScore}
	}
	if d.AwayScore != nil && *d.AwayScore < 0 {
		return &NegativeScoreError{Side: SideAway, Value: *d.AwayScore}
	}
	if d.Winner != WinnerNone {
		if _, ok := AllWinners[d.Winner]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWinner, d.Winner)
		}
	}

	if d.Winner != WinnerNone && d.HasScore() {
		home, away := d.scoreline()
		if implied := scorelineWinner(home, away); implied != d.Winner {
			return &WinnerScoreMismatchError{
				ExpectedLeader: d.Winner,
				Implied:        implied,
				HomeScore:      home,
				AwayScore:      away,
			}
		}
	}

	if d.Winner == WinnerNone && !d.HasScore() {
		return ErrEmptyPrediction
	}

	return nil
}
