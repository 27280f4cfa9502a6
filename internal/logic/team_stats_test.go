package logic

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

func TestListTeams(t *testing.T) {
	pool := &MockPgPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &MockRows{Data: [][]any{
				{"Arsenal"},
				{"Nottingham Forest"},
			}}, nil
		},
	}
	svc := NewTeamStatsService(pool, NewAggregator(pool), nil)

	teams, err := svc.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams() error = %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(teams))
	}
	if teams[1].Name != "Nottingham Forest" || teams[1].Slug != "nottingham-forest" {
		t.Errorf("second team = %+v", teams[1])
	}
}

func TestResolveTeam(t *testing.T) {
	var gotArgs []any
	pool := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			gotArgs = args
			if args[0] == "nottingham-forest" {
				return &MockRow{Data: []any{"Nottingham Forest"}}
			}
			return &MockRow{ScanErr: pgx.ErrNoRows}
		},
	}
	svc := &teamStatsService{pg: pool}

	// The fbref short-name slug resolves through the variant map.
	name, err := svc.resolveTeam(context.Background(), "nott-ham-forest")
	if err != nil {
		t.Fatalf("resolveTeam() error = %v", err)
	}
	if name != "Nottingham Forest" {
		t.Errorf("name = %q", name)
	}
	if gotArgs[0] != "nottingham-forest" {
		t.Errorf("lookup slug = %v, want the canonical slug", gotArgs[0])
	}

	_, err = svc.resolveTeam(context.Background(), "atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

var teamMatchesCols = map[string]string{
	"game_id":     "text",
	"season":      "text",
	"competition": "text",
	"match_date":  "timestamp with time zone",
	"home_team":   "text",
	"away_team":   "text",
}

var shootingCols = map[string]string{
	"game_id":          "text",
	"team":             "text",
	"season":           "text",
	"competition":      "text",
	"standard_sh":      "bigint",
	"standard_sot":     "bigint",
	"standard_sot_pct": "double precision",
}

// teamPagePool serves a full GetTeamPage round trip: 10 team matches, a
// shooting table with only 2 rows, a two-game match log with one scorer.
func teamPagePool() *MockPgPool {
	pool := &MockPgPool{}
	pool.QueryFunc = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		switch {
		case strings.Contains(sql, "information_schema"):
			switch args[0] {
			case "matches":
				return &MockRows{Data: columnRows(teamMatchesCols)}, nil
			case "fbref_team_match_shooting":
				return &MockRows{Data: columnRows(shootingCols)}, nil
			}
			return &MockRows{}, nil
		case strings.Contains(sql, "JOIN matches m"):
			return &MockRows{Data: [][]any{
				{"g1", time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC), "Arsenal", "Wolves", "Home", "W", 2, 0},
				{"g2", time.Date(2024, 8, 24, 15, 0, 0, 0, time.UTC), "Aston Villa", "Arsenal", "Away", "W", 2, 0},
			}}, nil
		case strings.Contains(sql, "FROM player_match_stats"):
			return &MockRows{Data: [][]any{
				{"g1", "Bukayo Saka", 2},
			}}, nil
		}
		return &MockRows{}, nil
	}
	pool.QueryRowFunc = func(ctx context.Context, sql string, args ...any) pgx.Row {
		switch {
		case strings.Contains(sql, "FROM teams"):
			return &MockRow{Data: []any{"Arsenal"}}
		case strings.Contains(sql, "FROM team_match_stats"):
			// matches, W, D, L, goals for, goals against
			return &MockRow{Data: []any{10.0, 6.0, 2.0, 2.0, 20.0, 10.0}}
		}
		// shooting aggregate: matches, minutes, then the sorted numeric
		// columns standard_sh / standard_sot / standard_sot_pct
		return &MockRow{Data: []any{2.0, 0.0, 10.0, 4.0, 40.0}}
	}
	return pool
}

func TestGetTeamPagePerGame(t *testing.T) {
	pool := teamPagePool()
	svc := NewTeamStatsService(pool, NewAggregator(pool), nil)

	page, err := svc.GetTeamPage(context.Background(), "arsenal",
		MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"}, ModePerGame)
	if err != nil {
		t.Fatalf("GetTeamPage() error = %v", err)
	}

	// points = 6*3+2 = 20 over 10 matches
	if page.Totals["matches"] != 10 {
		t.Errorf("matches = %v, want unscaled 10", page.Totals["matches"])
	}
	if page.Totals["points"] != 2.0 {
		t.Errorf("points per game = %v, want 2", page.Totals["points"])
	}

	// The shooting table only has 2 rows; its 10 shots are still divided by
	// the team's 10 matches, not by its own row count.
	shooting := page.Stats["shooting"]
	if shooting == nil {
		t.Fatal("shooting stats missing")
	}
	if shooting["standard_sh"] != 1.0 {
		t.Errorf("shots per game = %v, want 1 (page denominator)", shooting["standard_sh"])
	}
	if shooting["standard_sot_pct"] != 40.0 {
		t.Errorf("shot accuracy = %v, want unscaled 40", shooting["standard_sot_pct"])
	}
	if shooting["matches"] != 2 {
		t.Errorf("category row count = %v, want 2", shooting["matches"])
	}

	// Tables absent from the schema come back as null categories.
	if stats, ok := page.Stats["keeper"]; !ok || stats != nil {
		t.Errorf("keeper category = %v (present %v), want present and nil", stats, ok)
	}

	if len(page.Matches) != 2 {
		t.Fatalf("match log length = %d, want 2", len(page.Matches))
	}
	if len(page.Matches[0].Scorers) != 1 || page.Matches[0].Scorers[0].Player != "Bukayo Saka" {
		t.Errorf("g1 scorers = %+v", page.Matches[0].Scorers)
	}
	if len(page.Matches[1].Scorers) != 0 {
		t.Errorf("g2 scorers = %+v, want empty", page.Matches[1].Scorers)
	}
}

func TestGetTeamPageFallbackSharedAcrossPanels(t *testing.T) {
	pool := teamPagePool()
	base := pool.QueryRowFunc
	var totalsCalls int
	var aggSQL []string
	var mu sync.Mutex
	pool.QueryRowFunc = func(ctx context.Context, sql string, args ...any) pgx.Row {
		if strings.Contains(sql, "FROM team_match_stats") {
			totalsCalls++
			if totalsCalls == 1 {
				// nothing under the strict competition filter
				return &MockRow{Data: []any{0.0, 0.0, 0.0, 0.0, 0.0, 0.0}}
			}
		} else if !strings.Contains(sql, "FROM teams") {
			mu.Lock()
			aggSQL = append(aggSQL, sql)
			mu.Unlock()
		}
		return base(ctx, sql, args...)
	}
	svc := NewTeamStatsService(pool, NewAggregator(pool), nil)

	page, err := svc.GetTeamPage(context.Background(), "arsenal",
		MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"}, ModeTotal)
	if err != nil {
		t.Fatalf("GetTeamPage() error = %v", err)
	}

	if totalsCalls != 2 {
		t.Errorf("totals queries = %d, want strict then fallback", totalsCalls)
	}
	if page.Totals["matches"] != 10 {
		t.Errorf("matches after fallback = %v, want 10", page.Totals["matches"])
	}
	// Every category query runs with the filter the totals settled on.
	for _, sql := range aggSQL {
		if strings.Contains(sql, "competition") {
			t.Errorf("category query kept the dropped competition filter: %s", sql)
		}
	}
}
