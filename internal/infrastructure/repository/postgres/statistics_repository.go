package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
	qb "github.com/riskibarqy/match-predictions/internal/platform/querybuilder"
)

const defaultPlayerStatsLimit = 20

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

// GetByLeagueAndTeamName matches team_name case-insensitively and prefers the
// latest season when a team has several rows.
func (r *TeamStatsRepository) GetByLeagueAndTeamName(ctx context.Context, league, teamName string) (teamstats.TeamStatistics, bool, error) {
	league = strings.TrimSpace(league)
	teamName = strings.TrimSpace(teamName)
	if league == "" || teamName == "" {
		return teamstats.TeamStatistics{}, false, nil
	}

	query, args, err := qb.Select("*").From("team_statistics").
		Where(
			qb.Eq("league", league),
			qb.EqFold("team_name", teamName),
		).
		OrderBy("season DESC", "updated_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return teamstats.TeamStatistics{}, false, fmt.Errorf("build get team statistics query: %w", err)
	}

	var row teamStatisticsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.TeamStatistics{}, false, nil
		}
		return teamstats.TeamStatistics{}, false, fmt.Errorf("get team statistics: %w", err)
	}

	return teamstats.TeamStatistics{
		ID:                   row.ID,
		TeamID:               nullInt64ToInt64(row.TeamID),
		TeamName:             row.TeamName,
		League:               row.League,
		Season:               row.Season,
		LogoURL:              row.LogoURL.String,
		Appearances:          row.Appearances,
		Wins:                 row.Wins,
		Draws:                row.Draws,
		Losses:               row.Losses,
		GoalsFor:             row.GoalsFor,
		GoalsAgainst:         row.GoalsAgainst,
		CleanSheets:          row.CleanSheets,
		AveragePossessionPct: row.AveragePossessionPct,
		Form:                 row.Form.String,
		UpdatedAt:            row.UpdatedAt,
	}, true, nil
}

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListByTeam(ctx context.Context, teamID int64, limit int) ([]playerstats.PlayerStatistics, error) {
	if teamID <= 0 {
		return []playerstats.PlayerStatistics{}, nil
	}
	if limit <= 0 {
		limit = defaultPlayerStatsLimit
	}

	query, args, err := qb.Select("*").From("player_statistics").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("appearances DESC", "minutes_played DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player statistics query: %w", err)
	}

	var rows []playerStatisticsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player statistics team=%d: %w", teamID, err)
	}

	out := make([]playerstats.PlayerStatistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.PlayerStatistics{
			ID:            row.ID,
			TeamID:        row.TeamID,
			PlayerName:    row.PlayerName,
			Position:      row.Position.String,
			ShirtNumber:   int(nullInt64ToInt64(row.ShirtNumber)),
			Appearances:   row.Appearances,
			MinutesPlayed: row.MinutesPlayed,
			Goals:         row.Goals,
			Assists:       row.Assists,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
			Rating:        row.Rating,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return out, nil
}
