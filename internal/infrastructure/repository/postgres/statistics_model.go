package postgres

import (
	"database/sql"
	"time"
)

type teamStatisticsTableModel struct {
	ID                   int64          `db:"id"`
	TeamID               sql.NullInt64  `db:"team_id"`
	TeamName             string         `db:"team_name"`
	League               string         `db:"league"`
	Season               string         `db:"season"`
	LogoURL              sql.NullString `db:"logo_url"`
	Appearances          int            `db:"appearances"`
	Wins                 int            `db:"wins"`
	Draws                int            `db:"draws"`
	Losses               int            `db:"losses"`
	GoalsFor             int            `db:"goals_for"`
	GoalsAgainst         int            `db:"goals_against"`
	CleanSheets          int            `db:"clean_sheets"`
	AveragePossessionPct float64        `db:"average_possession_pct"`
	Form                 sql.NullString `db:"form"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

type playerStatisticsTableModel struct {
	ID            int64          `db:"id"`
	TeamID        int64          `db:"team_id"`
	PlayerName    string         `db:"player_name"`
	Position      sql.NullString `db:"position"`
	ShirtNumber   sql.NullInt64  `db:"shirt_number"`
	Appearances   int            `db:"appearances"`
	MinutesPlayed int            `db:"minutes_played"`
	Goals         int            `db:"goals"`
	Assists       int            `db:"assists"`
	YellowCards   int            `db:"yellow_cards"`
	RedCards      int            `db:"red_cards"`
	Rating        float64        `db:"rating"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
