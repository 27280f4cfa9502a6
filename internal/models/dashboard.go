package models

import "time"

// StandingsRow is one line of the computed league table.
type StandingsRow struct {
	Rank           int     `json:"rank"`
	Team           string  `json:"team"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
	Points         int     `json:"points"`
	PointsPerGame  float64 `json:"points_per_game"`
}

// Fixture is one scheduled or completed match on the dashboard.
type Fixture struct {
	GameID    string    `json:"game_id"`
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeGoals *int      `json:"home_goals"`
	AwayGoals *int      `json:"away_goals"`
	Played    bool      `json:"played"`
}

// Dashboard is the response body for GET /api/dashboard.
type Dashboard struct {
	Season       string                      `json:"season"`
	Competition  string                      `json:"competition"`
	Standings    []StandingsRow              `json:"standings"`
	Schedule     []Fixture                   `json:"schedule"`
	Leaderboards map[string][]LeaderboardRow `json:"leaderboards"`
}

// SearchResult is one hit from GET /api/search.
type SearchResult struct {
	Type string `json:"type"` // "team" or "player"
	Name string `json:"name"`
	Slug string `json:"slug"`
}
