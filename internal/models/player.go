package models

// TeamSplit is a player's aggregate line for a single team, used by the
// byTeam array on the player page.
type TeamSplit struct {
	Team        string  `json:"team"`
	Appearances float64 `json:"appearances"`
	Minutes     float64 `json:"minutes"`
	Goals       float64 `json:"goals"`
	Assists     float64 `json:"assists"`
}

// PlayerPage is the response body for GET /api/player/{slug}.
type PlayerPage struct {
	Player string                        `json:"player"`
	Mode   string                        `json:"mode"`
	Totals map[string]float64            `json:"totals"`
	Stats  map[string]map[string]float64 `json:"stats"`
	ByTeam []TeamSplit                   `json:"byTeam"`
}
