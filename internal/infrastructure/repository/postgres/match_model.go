package postgres

import "time"

type matchTableModel struct {
	ID        int64     `db:"id"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	League    string    `db:"league"`
	KickoffAt time.Time `db:"kickoff_at"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
