package models

import "time"

// Team as stored in the teams table, with its derived URL slug.
type Team struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MatchLogEntry is one row of a team's match log: the fixture, the result and
// the team's scorers in that game.
type MatchLogEntry struct {
	GameID       string    `json:"game_id"`
	Date         time.Time `json:"date"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Venue        string    `json:"venue"`
	Result       string    `json:"result"`
	GoalsFor     *int      `json:"goals_for"`
	GoalsAgainst *int      `json:"goals_against"`
	Scorers      []Scorer  `json:"scorers"`
}

// Scorer is a player credited with goals in a single match.
type Scorer struct {
	Player string `json:"player"`
	Goals  int    `json:"goals"`
}

// TeamPage is the response body for GET /api/team/{slug}.
type TeamPage struct {
	Team    string                        `json:"team"`
	Mode    string                        `json:"mode"`
	Totals  map[string]float64            `json:"totals"`
	Stats   map[string]map[string]float64 `json:"stats"`
	Matches []MatchLogEntry               `json:"matches"`
}
