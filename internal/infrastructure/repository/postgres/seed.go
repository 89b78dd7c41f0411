package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-predictions/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/match-predictions/internal/platform/querybuilder"
)

// BootstrapSeed fills an empty database with the demo board for day.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, day time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches`); err != nil {
		return fmt.Errorf("count matches for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedMatches(day) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (id, home_team, away_team, league, kickoff_at, status)
VALUES (:id, :home_team, :away_team, :league, :kickoff_at, :status)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         m.ID,
			"home_team":  m.HomeTeam,
			"away_team":  m.AwayTeam,
			"league":     m.League,
			"kickoff_at": m.KickoffAt,
			"status":     m.Status,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %d query: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed match %d: %w", m.ID, err)
		}
	}

	for _, item := range memory.SeedPredictions(day) {
		query, args, err := qb.InsertModel("user_predictions", predictionInsertFromDomain(item), predictionUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build seed prediction query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed prediction user=%s match=%d: %w", item.UserID, item.MatchID, err)
		}
	}

	for _, s := range memory.SeedTeamStats() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO team_statistics (team_id, team_name, league, season, appearances, wins, draws, losses, goals_for, goals_against, clean_sheets, average_possession_pct, form)
VALUES (:team_id, :team_name, :league, :season, :appearances, :wins, :draws, :losses, :goals_for, :goals_against, :clean_sheets, :average_possession_pct, :form)`, map[string]any{
			"team_id":                nullableInt64(s.TeamID),
			"team_name":              s.TeamName,
			"league":                 s.League,
			"season":                 s.Season,
			"appearances":            s.Appearances,
			"wins":                   s.Wins,
			"draws":                  s.Draws,
			"losses":                 s.Losses,
			"goals_for":              s.GoalsFor,
			"goals_against":          s.GoalsAgainst,
			"clean_sheets":           s.CleanSheets,
			"average_possession_pct": s.AveragePossessionPct,
			"form":                   nullableString(s.Form),
		})
		if err != nil {
			return fmt.Errorf("bind seed team statistics %s query: %w", s.TeamName, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed team statistics %s: %w", s.TeamName, err)
		}
	}

	for _, p := range memory.SeedPlayerStats() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO player_statistics (team_id, player_name, position, shirt_number, appearances, minutes_played, goals, assists, yellow_cards, red_cards, rating)
VALUES (:team_id, :player_name, :position, :shirt_number, :appearances, :minutes_played, :goals, :assists, :yellow_cards, :red_cards, :rating)`, map[string]any{
			"team_id":        p.TeamID,
			"player_name":    p.PlayerName,
			"position":       nullableString(p.Position),
			"shirt_number":   p.ShirtNumber,
			"appearances":    p.Appearances,
			"minutes_played": p.MinutesPlayed,
			"goals":          p.Goals,
			"assists":        p.Assists,
			"yellow_cards":   p.YellowCards,
			"red_cards":      p.RedCards,
			"rating":         p.Rating,
		})
		if err != nil {
			return fmt.Errorf("bind seed player statistics %s query: %w", p.PlayerName, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed player statistics %s: %w", p.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
