package prediction

import (
	"fmt"
	"strings"
	"time"
)

// Winner is the HOME/DRAW/AWAY choice of a prediction. The zero value means no choice.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerHome Winner = "HOME"
	WinnerDraw Winner = "DRAW"
	WinnerAway Winner = "AWAY"
)

var AllWinners = map[Winner]struct{}{
	WinnerHome: {},
	WinnerDraw: {},
	WinnerAway: {},
}

// ParseWinner accepts the wire form case-insensitively. Blank input yields WinnerNone.
func ParseWinner(value string) (Winner, error) {
	w := Winner(strings.ToUpper(strings.TrimSpace(value)))
	if w == WinnerNone {
		return WinnerNone, nil
	}
	if _, ok := AllWinners[w]; !ok {
		return WinnerNone, fmt.Errorf("%w: %s", ErrUnknownWinner, value)
	}
	return w, nil
}

// Draft is an unsaved prediction as edited by a user.
type Draft struct {
	HomeScore *int
	AwayScore *int
	Winner    Winner
}

func (d Draft) Clone() Draft {
	d.HomeScore = cloneInt(d.HomeScore)
	d.AwayScore = cloneInt(d.AwayScore)
	return d
}

func (d Draft) HasScore() bool {
	return d.HomeScore != nil || d.AwayScore != nil
}

func (d Draft) Validate() error {
	return ValidateDraft(d)
}

// Normalize fills a half-entered scoreline with 0 for the missing side.
func (d Draft) Normalize() Draft {
	if !d.HasScore() {
		return d
	}
	home, away := d.scoreline()
	d.HomeScore = &home
	d.AwayScore = &away
	return d
}

func (d Draft) scoreline() (int, int) {
	var home, away int
	if d.HomeScore != nil {
		home = *d.HomeScore
	}
	if d.AwayScore != nil {
		away = *d.AwayScore
	}
	return home, away
}

// Display holds fields copied onto the row at submission time so readers need no joins.
type Display struct {
	UserName  string
	AvatarURL string
	HomeTeam  string
	AwayTeam  string
	League    string
	MatchDate time.Time
}

// Prediction is one user's forecast for one match. (UserID, MatchID) is unique.
type Prediction struct {
	ID        string
	UserID    string
	MatchID   int64
	HomeScore *int
	AwayScore *int
	Winner    Winner
	Display   Display
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Prediction) Draft() Draft {
	return Draft{
		HomeScore: p.HomeScore,
		AwayScore: p.AwayScore,
		Winner:    p.Winner,
	}.Clone()
}

// ImpliedWinner derives the result of a complete scoreline.
func (p Prediction) ImpliedWinner() (Winner, bool) {
	if p.HomeScore == nil || p.AwayScore == nil {
		return WinnerNone, false
	}
	return scorelineWinner(*p.HomeScore, *p.AwayScore), true
}

func scorelineWinner(home, away int) Winner {
	switch {
	case home > away:
		return WinnerHome
	case away > home:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Clone returns a deep copy of p.
func (p Prediction) Clone() Prediction {
	p.HomeScore = cloneInt(p.HomeScore)
	p.AwayScore = cloneInt(p.AwayScore)
	return p
}
