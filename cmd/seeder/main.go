// Dev-only seeder: loads a miniature copy of the ingested schema with a
// handful of rows so the API can be exercised without running the full
// ingestion. Not idempotent beyond CREATE TABLE IF NOT EXISTS; point it at a
// scratch database.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

const schema = `
CREATE TABLE IF NOT EXISTS teams (name TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS players (name TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS matches (
	game_id TEXT NOT NULL,
	competition TEXT,
	season TEXT,
	match_date TIMESTAMPTZ,
	home_team TEXT,
	away_team TEXT
);
CREATE TABLE IF NOT EXISTS team_match_stats (
	game_id TEXT NOT NULL,
	team TEXT NOT NULL,
	opponent TEXT,
	venue TEXT,
	result TEXT,
	goals_for INTEGER,
	goals_against INTEGER
);
CREATE TABLE IF NOT EXISTS player_match_stats (
	game_id TEXT NOT NULL,
	player TEXT NOT NULL,
	team TEXT,
	opponent TEXT,
	minutes INTEGER,
	goals INTEGER,
	assists INTEGER,
	shots INTEGER
);
CREATE TABLE IF NOT EXISTS fbref_team_match_shooting (
	game_id TEXT NOT NULL,
	team TEXT NOT NULL,
	season TEXT,
	competition TEXT,
	standard_sh INTEGER,
	standard_sot INTEGER,
	standard_sot_pct DOUBLE PRECISION
);
CREATE TABLE IF NOT EXISTS fbref_player_match_summary (
	game_id TEXT NOT NULL,
	player TEXT NOT NULL,
	team TEXT,
	season TEXT,
	competition TEXT,
	min INTEGER,
	performance_gls INTEGER,
	performance_ast INTEGER,
	performance_sh INTEGER
);
`

type fixture struct {
	gameID    string
	date      time.Time
	home      string
	away      string
	homeGoals int
	awayGoals int
}

func main() {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		log.Fatal("Missing POSTGRES_URL")
	}
	season := "2024-2025"
	competition := "ENG-Premier League"

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	teams := []string{"Manchester United", "Nottingham Forest", "Arsenal", "Liverpool"}
	for _, t := range teams {
		if _, err := conn.Exec(ctx, `INSERT INTO teams (name) VALUES ($1)`, t); err != nil {
			log.Fatalf("Failed to insert team: %v", err)
		}
	}

	players := []string{"Bruno Fernandes", "Chris Wood", "Bukayo Saka", "Mohamed Salah"}
	for _, p := range players {
		if _, err := conn.Exec(ctx, `INSERT INTO players (name) VALUES ($1)`, p); err != nil {
			log.Fatalf("Failed to insert player: %v", err)
		}
	}

	day := func(n int) time.Time {
		return time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC).AddDate(0, 0, n*7)
	}
	fixtures := []fixture{
		{"2024-08-17-manutd-forest", day(0), "Manchester United", "Nottingham Forest", 2, 1},
		{"2024-08-24-arsenal-liverpool", day(1), "Arsenal", "Liverpool", 1, 1},
		{"2024-08-31-liverpool-manutd", day(2), "Liverpool", "Manchester United", 3, 0},
	}

	result := func(gf, ga int) string {
		switch {
		case gf > ga:
			return "W"
		case gf < ga:
			return "L"
		}
		return "D"
	}

	for _, fx := range fixtures {
		if _, err := conn.Exec(ctx, `
			INSERT INTO matches (game_id, competition, season, match_date, home_team, away_team)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			fx.gameID, competition, season, fx.date, fx.home, fx.away); err != nil {
			log.Fatalf("Failed to insert match: %v", err)
		}
		if _, err := conn.Exec(ctx, `
			INSERT INTO team_match_stats (game_id, team, opponent, venue, result, goals_for, goals_against)
			VALUES ($1, $2, $3, 'Home', $4, $5, $6), ($1, $3, $2, 'Away', $7, $6, $5)`,
			fx.gameID, fx.home, fx.away,
			result(fx.homeGoals, fx.awayGoals), fx.homeGoals, fx.awayGoals,
			result(fx.awayGoals, fx.homeGoals)); err != nil {
			log.Fatalf("Failed to insert team match stats: %v", err)
		}
		if _, err := conn.Exec(ctx, `
			INSERT INTO fbref_team_match_shooting (game_id, team, season, competition, standard_sh, standard_sot, standard_sot_pct)
			VALUES ($1, $2, $3, $4, 14, 6, 42.9), ($1, $5, $3, $4, 9, 3, 33.3)`,
			fx.gameID, fx.home, season, competition, fx.away); err != nil {
			log.Fatalf("Failed to insert shooting stats: %v", err)
		}
	}

	appearances := []struct {
		gameID  string
		player  string
		team    string
		minutes int
		goals   int
		assists int
		shots   int
	}{
		{"2024-08-17-manutd-forest", "Bruno Fernandes", "Manchester United", 90, 1, 1, 4},
		{"2024-08-17-manutd-forest", "Chris Wood", "Nottingham Forest", 90, 1, 0, 3},
		{"2024-08-24-arsenal-liverpool", "Bukayo Saka", "Arsenal", 85, 1, 0, 2},
		{"2024-08-24-arsenal-liverpool", "Mohamed Salah", "Liverpool", 90, 1, 0, 5},
		{"2024-08-31-liverpool-manutd", "Mohamed Salah", "Liverpool", 90, 2, 1, 6},
		{"2024-08-31-liverpool-manutd", "Bruno Fernandes", "Manchester United", 90, 0, 0, 2},
	}
	for _, a := range appearances {
		if _, err := conn.Exec(ctx, `
			INSERT INTO player_match_stats (game_id, player, team, minutes, goals, assists, shots)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.gameID, a.player, a.team, a.minutes, a.goals, a.assists, a.shots); err != nil {
			log.Fatalf("Failed to insert player match stats: %v", err)
		}
		if _, err := conn.Exec(ctx, `
			INSERT INTO fbref_player_match_summary (game_id, player, team, season, competition, min, performance_gls, performance_ast, performance_sh)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.gameID, a.player, a.team, season, competition,
			a.minutes, a.goals, a.assists, a.shots); err != nil {
			log.Fatalf("Failed to insert player summary: %v", err)
		}
	}

	log.Printf("Seeded %d teams, %d players, %d fixtures", len(teams), len(players), len(fixtures))
}
