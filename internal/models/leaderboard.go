package models

// LeaderboardRow is one ranked entry for a single stat column.
type LeaderboardRow struct {
	Player string  `json:"player"`
	Value  float64 `json:"value"`
}

// Leaderboards is the response for GET /api/leaderboards without a column
// param: top rows for every discovered numeric column of the table.
type Leaderboards struct {
	Table        string                      `json:"table"`
	Columns      []string                    `json:"columns"`
	Leaderboards map[string][]LeaderboardRow `json:"leaderboards"`
}

// ColumnLeaderboard is the response when a single column is requested.
type ColumnLeaderboard struct {
	Table  string           `json:"table"`
	Column string           `json:"column"`
	Rows   []LeaderboardRow `json:"rows"`
}
