package memory

import (
	"time"

	"github.com/riskibarqy/match-predictions/internal/domain/match"
	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
)

const (
	LeaguePremierLeague = "Premier League"
	LeagueLiga1         = "Liga 1 Indonesia"

	MatchIDArsenalLiverpool int64 = 555
	MatchIDChelseaSpurs     int64 = 556
	MatchIDPersijaPersib    int64 = 557
)

// SeedMatches returns fixtures kicking off on the UTC calendar day of day.
func SeedMatches(day time.Time) []match.Match {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return []match.Match{
		{ID: MatchIDArsenalLiverpool, HomeTeam: "Arsenal", AwayTeam: "Liverpool", League: LeaguePremierLeague, KickoffAt: base.Add(12*time.Hour + 30*time.Minute), Status: match.StatusScheduled},
		{ID: MatchIDChelseaSpurs, HomeTeam: "Chelsea", AwayTeam: "Tottenham Hotspur", League: LeaguePremierLeague, KickoffAt: base.Add(15 * time.Hour), Status: match.StatusScheduled},
		{ID: MatchIDPersijaPersib, HomeTeam: "Persija Jakarta", AwayTeam: "Persib Bandung", League: LeagueLiga1, KickoffAt: base.Add(19 * time.Hour), Status: match.StatusScheduled},
	}
}

// SeedPredictions returns community votes for the fixtures of SeedMatches(day).
func SeedPredictions(day time.Time) []prediction.Prediction {
	matches := SeedMatches(day)
	at := matches[0].KickoffAt.Add(-6 * time.Hour)

	row := func(userID, name string, m match.Match, w prediction.Winner, home, away *int, offset time.Duration) prediction.Prediction {
		return prediction.Prediction{
			ID:        userID + "-" + m.HomeTeam,
			UserID:    userID,
			MatchID:   m.ID,
			HomeScore: home,
			AwayScore: away,
			Winner:    w,
			Display: prediction.Display{
				UserName:  name,
				HomeTeam:  m.HomeTeam,
				AwayTeam:  m.AwayTeam,
				League:    m.League,
				MatchDate: m.KickoffAt,
			},
			CreatedAt: at.Add(offset),
			UpdatedAt: at.Add(offset),
		}
	}
	score := func(v int) *int { return &v }

	return []prediction.Prediction{
		row("seed-user-1", "Dewi", matches[0], prediction.WinnerHome, score(2), score(0), time.Minute),
		row("seed-user-2", "Bima", matches[0], prediction.WinnerHome, nil, nil, 2*time.Minute),
		row("seed-user-3", "Sari", matches[0], prediction.WinnerAway, score(1), score(3), 3*time.Minute),
		row("seed-user-1", "Dewi", matches[1], prediction.WinnerDraw, score(1), score(1), 4*time.Minute),
		row("seed-user-4", "Raka", matches[1], prediction.WinnerNone, score(2), score(1), 5*time.Minute),
	}
}

func SeedTeamStats() []teamstats.TeamStatistics {
	return []teamstats.TeamStatistics{
		{ID: 1, TeamID: 42, TeamName: "Arsenal", League: LeaguePremierLeague, Season: "2025/2026", Appearances: 10, Wins: 7, Draws: 2, Losses: 1, GoalsFor: 21, GoalsAgainst: 7, CleanSheets: 5, AveragePossessionPct: 58.4, Form: "WWDWW"},
		{ID: 2, TeamID: 40, TeamName: "Liverpool", League: LeaguePremierLeague, Season: "2025/2026", Appearances: 10, Wins: 6, Draws: 1, Losses: 3, GoalsFor: 19, GoalsAgainst: 13, CleanSheets: 3, AveragePossessionPct: 61.2, Form: "WLWWL"},
		{ID: 3, TeamID: 0, TeamName: "Tottenham Hotspur", League: LeaguePremierLeague, Season: "2025/2026", Appearances: 10, Wins: 4, Draws: 3, Losses: 3},
		{ID: 4, TeamID: 7001, TeamName: "Persija Jakarta", League: LeagueLiga1, Season: "2025/2026", Appearances: 12, Wins: 6, Draws: 4, Losses: 2, GoalsFor: 17, GoalsAgainst: 10},
	}
}

func SeedPlayerStats() []playerstats.PlayerStatistics {
	return []playerstats.PlayerStatistics{
		{ID: 1, TeamID: 42, PlayerName: "Bukayo Saka", Position: "FW", ShirtNumber: 7, Appearances: 10, MinutesPlayed: 842, Goals: 5, Assists: 4, Rating: 7.6},
		{ID: 2, TeamID: 42, PlayerName: "Declan Rice", Position: "MF", ShirtNumber: 41, Appearances: 10, MinutesPlayed: 890, Goals: 2, Assists: 3, Rating: 7.3},
		{ID: 3, TeamID: 42, PlayerName: "Kai Havertz", Position: "FW", ShirtNumber: 29, Appearances: 6, MinutesPlayed: 401, Goals: 3, Rating: 6.9},
		{ID: 4, TeamID: 40, PlayerName: "Mohamed Salah", Position: "FW", ShirtNumber: 11, Appearances: 10, MinutesPlayed: 870, Goals: 8, Assists: 3, Rating: 7.9},
		{ID: 5, TeamID: 7001, PlayerName: "Rizky Ridho", Position: "DF", ShirtNumber: 5, Appearances: 12, MinutesPlayed: 1080, Goals: 1, Rating: 7.1},
	}
}
