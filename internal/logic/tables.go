package logic

// The per-category stat tables produced by the fbref ingestion. Column sets
// vary by deployment and are discovered at request time; only the table names
// themselves are fixed. Any table name arriving from a request must be checked
// against this allow-list before it gets near a query string.

// TeamStatTables maps category name to stat table for team aggregations.
// The schedule table is handled separately (match log / standings), not as a
// stat category.
var TeamStatTables = map[string]string{
	"shooting":           "fbref_team_match_shooting",
	"keeper":             "fbref_team_match_keeper",
	"passing":            "fbref_team_match_passing",
	"passing_types":      "fbref_team_match_passing_types",
	"goal_shot_creation": "fbref_team_match_goal_shot_creation",
	"defense":            "fbref_team_match_defense",
	"possession":         "fbref_team_match_possession",
	"misc":               "fbref_team_match_misc",
}

// PlayerStatTables maps category name to stat table for player aggregations.
var PlayerStatTables = map[string]string{
	"summary":       "fbref_player_match_summary",
	"keepers":       "fbref_player_match_keepers",
	"passing":       "fbref_player_match_passing",
	"passing_types": "fbref_player_match_passing_types",
	"defense":       "fbref_player_match_defense",
	"possession":    "fbref_player_match_possession",
	"misc":          "fbref_player_match_misc",
}

// allowedTables is the full allow-list for dynamically named tables.
var allowedTables = buildAllowedTables()

func buildAllowedTables() map[string]bool {
	allowed := map[string]bool{
		"fbref_team_match_schedule": true,
	}
	for _, t := range TeamStatTables {
		allowed[t] = true
	}
	for _, t := range PlayerStatTables {
		allowed[t] = true
	}
	return allowed
}

// TableAllowed reports whether table is one of the known stat tables.
func TableAllowed(table string) bool {
	return allowedTables[table]
}

// Identifying columns common to the stat tables. These are never aggregated
// and never part of a leaderboard.
var identityColumns = map[string]bool{
	"game_id":       true,
	"game":          true,
	"season":        true,
	"competition":   true,
	"source":        true,
	"team":          true,
	"opponent":      true,
	"player":        true,
	"venue":         true,
	"round":         true,
	"jersey_number": true,
}
