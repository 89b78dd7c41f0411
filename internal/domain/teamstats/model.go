package teamstats

import "time"

// TeamStatistics is the season summary of one team in one league, written by
// the ingestion pipeline.
type TeamStatistics struct {
	ID                   int64
	TeamID               int64
	TeamName             string
	League               string
	Season               string
	LogoURL              string
	Appearances          int
	Wins                 int
	Draws                int
	Losses               int
	GoalsFor             int
	GoalsAgainst         int
	CleanSheets          int
	AveragePossessionPct float64
	Form                 string
	UpdatedAt            time.Time
}

// HasTeam reports whether the row is linked to a team record that players can reference.
func (s TeamStatistics) HasTeam() bool {
	return s.TeamID > 0
}

func (s TeamStatistics) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}
