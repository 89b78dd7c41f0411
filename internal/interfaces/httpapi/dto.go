package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
	"github.com/riskibarqy/match-predictions/internal/usecase"
)

type savePredictionRequest struct {
	HomeScore *int   `json:"home_score" validate:"omitempty,max=99"`
	AwayScore *int   `json:"away_score" validate:"omitempty,max=99"`
	Winner    string `json:"winner" validate:"omitempty,max=16"`
}

type boardDTO struct {
	Date              string          `json:"date"`
	Matches           []boardMatchDTO `json:"matches"`
	RecentPredictions []predictionDTO `json:"recent_predictions"`
	Degraded          []string        `json:"degraded,omitempty"`
}

type boardMatchDTO struct {
	ID           int64          `json:"id"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	League       string         `json:"league"`
	KickoffAtUTC string         `json:"kickoff_at_utc"`
	Status       string         `json:"status"`
	Consensus    *consensusDTO  `json:"consensus"`
	MyPrediction *predictionDTO `json:"my_prediction,omitempty"`
	CallToAction string         `json:"call_to_action,omitempty"`
}

type consensusDTO struct {
	HomePercent int `json:"home_percent"`
	DrawPercent int `json:"draw_percent"`
	AwayPercent int `json:"away_percent"`
	Total       int `json:"total"`
}

type matchPredictionsDTO struct {
	MatchID     int64           `json:"match_id"`
	Consensus   *consensusDTO   `json:"consensus"`
	Predictions []predictionDTO `json:"predictions"`
}

type predictionDTO struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	MatchID      int64  `json:"match_id"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	Winner       string `json:"winner,omitempty"`
	UserName     string `json:"user_name"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	League       string `json:"league"`
	MatchDateUTC string `json:"match_date_utc,omitempty"`
	CreatedAtUTC string `json:"created_at_utc,omitempty"`
	UpdatedAtUTC string `json:"updated_at_utc,omitempty"`
}

type teamDataDTO struct {
	Found   bool             `json:"found"`
	Team    *teamStatsDTO    `json:"team"`
	Players []playerStatsDTO `json:"players"`
}

type teamStatsDTO struct {
	TeamID               int64   `json:"team_id"`
	TeamName             string  `json:"team_name"`
	League               string  `json:"league"`
	Season               string  `json:"season"`
	LogoURL              string  `json:"logo_url,omitempty"`
	Appearances          int     `json:"appearances"`
	Wins                 int     `json:"wins"`
	Draws                int     `json:"draws"`
	Losses               int     `json:"losses"`
	GoalsFor             int     `json:"goals_for"`
	GoalsAgainst         int     `json:"goals_against"`
	GoalDifference       int     `json:"goal_difference"`
	CleanSheets          int     `json:"clean_sheets"`
	AveragePossessionPct float64 `json:"average_possession_pct"`
	Form                 string  `json:"form,omitempty"`
}

type playerStatsDTO struct {
	PlayerName    string  `json:"player_name"`
	Position      string  `json:"position"`
	ShirtNumber   int     `json:"shirt_number"`
	Appearances   int     `json:"appearances"`
	MinutesPlayed int     `json:"minutes_played"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	Rating        float64 `json:"rating"`
}

type cacheWarmDTO struct {
	Date       string `json:"date"`
	Teams      int    `json:"teams"`
	Found      int    `json:"found"`
	DurationMs int64  `json:"duration_ms"`
}

func boardToDTO(ctx context.Context, board usecase.BoardDay, signedIn bool) boardDTO {
	ctx, span := startSpan(ctx, "httpapi.boardToDTO")
	defer span.End()

	out := boardDTO{
		Date:              board.Day.Format(time.DateOnly),
		Matches:           make([]boardMatchDTO, 0, len(board.Matches)),
		RecentPredictions: predictionsToDTO(board.Recent),
		Degraded:          board.Degraded,
	}
	for _, m := range board.Matches {
		item := boardMatchDTO{
			ID:           m.ID,
			HomeTeam:     m.HomeTeam,
			AwayTeam:     m.AwayTeam,
			League:       m.League,
			KickoffAtUTC: formatUTC(m.KickoffAt),
			Status:       m.Status,
			Consensus:    consensusToDTO(board.Consensus, m.ID),
		}
		if signedIn {
			item.CallToAction = string(usecase.CallToActionMake)
			if own, ok := board.Own[m.ID]; ok {
				dto := predictionToDTO(own)
				item.MyPrediction = &dto
				item.CallToAction = string(usecase.CallToActionUpdate)
			}
		}
		out.Matches = append(out.Matches, item)
	}
	return out
}

// consensusToDTO returns nil for a match nobody has voted on yet.
func consensusToDTO(summaries map[int64]prediction.Summary, matchID int64) *consensusDTO {
	v, ok := summaries[matchID]
	if !ok {
		return nil
	}
	return &consensusDTO{
		HomePercent: v.HomePercent,
		DrawPercent: v.DrawPercent,
		AwayPercent: v.AwayPercent,
		Total:       v.Total,
	}
}

func predictionsToDTO(items []prediction.Prediction) []predictionDTO {
	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}
	return out
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		MatchID:      v.MatchID,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		Winner:       string(v.Winner),
		UserName:     v.Display.UserName,
		AvatarURL:    v.Display.AvatarURL,
		HomeTeam:     v.Display.HomeTeam,
		AwayTeam:     v.Display.AwayTeam,
		League:       v.Display.League,
		MatchDateUTC: formatUTC(v.Display.MatchDate),
		CreatedAtUTC: formatUTC(v.CreatedAt),
		UpdatedAtUTC: formatUTC(v.UpdatedAt),
	}
}

func teamDataToDTO(v usecase.TeamData) teamDataDTO {
	out := teamDataDTO{
		Found:   v.Found(),
		Players: make([]playerStatsDTO, 0, len(v.Players)),
	}
	if v.Team != nil {
		team := teamStatsToDTO(*v.Team)
		out.Team = &team
	}
	for _, p := range v.Players {
		out.Players = append(out.Players, playerStatsToDTO(p))
	}
	return out
}

func teamStatsToDTO(v teamstats.TeamStatistics) teamStatsDTO {
	return teamStatsDTO{
		TeamID:               v.TeamID,
		TeamName:             v.TeamName,
		League:               v.League,
		Season:               v.Season,
		LogoURL:              v.LogoURL,
		Appearances:          v.Appearances,
		Wins:                 v.Wins,
		Draws:                v.Draws,
		Losses:               v.Losses,
		GoalsFor:             v.GoalsFor,
		GoalsAgainst:         v.GoalsAgainst,
		GoalDifference:       v.GoalDifference(),
		CleanSheets:          v.CleanSheets,
		AveragePossessionPct: v.AveragePossessionPct,
		Form:                 v.Form,
	}
}

func playerStatsToDTO(v playerstats.PlayerStatistics) playerStatsDTO {
	return playerStatsDTO{
		PlayerName:    v.PlayerName,
		Position:      v.Position,
		ShirtNumber:   v.ShirtNumber,
		Appearances:   v.Appearances,
		MinutesPlayed: v.MinutesPlayed,
		Goals:         v.Goals,
		Assists:       v.Assists,
		YellowCards:   v.YellowCards,
		RedCards:      v.RedCards,
		Rating:        v.Rating,
	}
}

func formatUTC(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
