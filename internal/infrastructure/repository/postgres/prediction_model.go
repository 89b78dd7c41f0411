package postgres

import (
	"database/sql"
	"time"
)

type predictionTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	UserID    string         `db:"user_id"`
	MatchID   int64          `db:"match_id"`
	HomeScore sql.NullInt64  `db:"home_score"`
	AwayScore sql.NullInt64  `db:"away_score"`
	Winner    sql.NullString `db:"winner"`
	UserName  string         `db:"user_name"`
	AvatarURL string         `db:"avatar_url"`
	HomeTeam  string         `db:"home_team"`
	AwayTeam  string         `db:"away_team"`
	League    string         `db:"league"`
	MatchDate time.Time      `db:"match_date"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type predictionInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	MatchID   int64     `db:"match_id"`
	HomeScore *int64    `db:"home_score"`
	AwayScore *int64    `db:"away_score"`
	Winner    *string   `db:"winner"`
	UserName  string    `db:"user_name"`
	AvatarURL string    `db:"avatar_url"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	League    string    `db:"league"`
	MatchDate time.Time `db:"match_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
