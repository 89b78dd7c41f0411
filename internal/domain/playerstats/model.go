package playerstats

import "time"

type PlayerStatistics struct {
	ID            int64
	TeamID        int64
	PlayerName    string
	Position      string
	ShirtNumber   int
	Appearances   int
	MinutesPlayed int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	Rating        float64
	UpdatedAt     time.Time
}
