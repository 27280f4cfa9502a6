package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/fbsts/stats-api/internal/metrics"
	"github.com/fbsts/stats-api/internal/models"
)

// PlayerStatsService serves the per-player page.
type PlayerStatsService interface {
	GetPlayerPage(ctx context.Context, slug string, f MatchFilter, mode Mode) (*models.PlayerPage, error)
}

type playerStatsService struct {
	pg    PgPool
	agg   *Aggregator
	cache *Cache
}

func NewPlayerStatsService(pg PgPool, agg *Aggregator, cache *Cache) PlayerStatsService {
	return &playerStatsService{pg: pg, agg: agg, cache: cache}
}

func (s *playerStatsService) resolvePlayer(ctx context.Context, slug string) (string, error) {
	var name string
	err := s.pg.QueryRow(ctx,
		fmt.Sprintf(`SELECT name FROM players WHERE %s = $1`, fmt.Sprintf(slugSQL, "name")),
		slug).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: player %q", ErrNotFound, slug)
	}
	if err != nil {
		return "", fmt.Errorf("resolve player: %w", err)
	}
	return name, nil
}

func (s *playerStatsService) GetPlayerPage(ctx context.Context, slug string, f MatchFilter, mode Mode) (*models.PlayerPage, error) {
	key := Key("player", slug, ModeKey(f, mode))
	var cached models.PlayerPage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	name, err := s.resolvePlayer(ctx, slug)
	if err != nil {
		return nil, err
	}

	matchCols, err := s.agg.Schema().Columns(ctx, "matches")
	if err != nil {
		return nil, err
	}

	totals, f, err := s.playerTotals(ctx, name, f, matchCols)
	if err != nil {
		return nil, err
	}

	// One set of denominators for the whole page: categories are scaled by
	// the player's appearance and minute totals, not by their own table's row
	// counts, so a sparse export cannot inflate per-game or per-90 values.
	appearances, minutes := totals["appearances"], totals["minutes"]

	page := &models.PlayerPage{
		Player: name,
		Mode:   string(mode),
		Totals: Scale(totals, mode, appearances, minutes, DefaultExclusions()),
		Stats:  make(map[string]map[string]float64, len(PlayerStatTables)),
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for category, table := range PlayerStatTables {
		category, table := category, table
		g.Go(func() error {
			line, err := s.agg.Totals(gctx, table, "player", name, f)
			if err != nil {
				return fmt.Errorf("%s stats: %w", category, err)
			}
			var scaled map[string]float64
			if line != nil {
				scaled = Scale(line.Totals, mode, appearances, minutes, DefaultExclusions())
				scaled["matches"] = line.Matches
				if line.Minutes > 0 {
					scaled["minutes"] = line.Minutes
				}
			}
			mu.Lock()
			page.Stats[category] = scaled
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		byTeam, err := s.byTeam(gctx, name, f, matchCols)
		if err != nil {
			return fmt.Errorf("byTeam split: %w", err)
		}
		page.ByTeam = byTeam
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, page)
	return page, nil
}

// playerTotals sums the normalized player_match_stats line. Like the team
// page, the filter actually used is returned so every panel of the page falls
// back together.
func (s *playerStatsService) playerTotals(ctx context.Context, name string, f MatchFilter, matchCols map[string]string) (map[string]float64, MatchFilter, error) {
	run := func(f MatchFilter) (map[string]float64, error) {
		pred, args := f.BuildPredicate(matchCols, 1)
		args = append([]any{name}, args...)

		var apps, minutes, goals, assists, shots float64
		err := s.pg.QueryRow(ctx, fmt.Sprintf(`
			SELECT COUNT(*)::double precision,
			       COALESCE(SUM(minutes), 0)::double precision,
			       COALESCE(SUM(goals), 0)::double precision,
			       COALESCE(SUM(assists), 0)::double precision,
			       COALESCE(SUM(shots), 0)::double precision
			FROM player_match_stats
			WHERE player = $1
			  AND game_id IN (SELECT game_id FROM matches WHERE %s)
		`, pred), args...).Scan(&apps, &minutes, &goals, &assists, &shots)
		if err != nil {
			return nil, fmt.Errorf("player totals: %w", err)
		}
		return map[string]float64{
			"appearances": apps,
			"minutes":     minutes,
			"goals":       goals,
			"assists":     assists,
			"shots":       shots,
		}, nil
	}

	totals, err := run(f)
	if err != nil {
		return nil, f, err
	}
	if totals["appearances"] == 0 && f.hasCompetitionFilter(matchCols) {
		metrics.FilterFallbacks.Inc()
		fallback := f.WithoutCompetition()
		if totals, err = run(fallback); err != nil {
			return nil, f, err
		}
		if totals["appearances"] > 0 {
			return totals, fallback, nil
		}
	}
	return totals, f, nil
}

func (s *playerStatsService) byTeam(ctx context.Context, name string, f MatchFilter, matchCols map[string]string) ([]models.TeamSplit, error) {
	pred, args := f.BuildPredicate(matchCols, 1)
	args = append([]any{name}, args...)

	rows, err := s.pg.Query(ctx, fmt.Sprintf(`
		SELECT team,
		       COUNT(*)::double precision,
		       COALESCE(SUM(minutes), 0)::double precision,
		       COALESCE(SUM(goals), 0)::double precision,
		       COALESCE(SUM(assists), 0)::double precision
		FROM player_match_stats
		WHERE player = $1
		  AND game_id IN (SELECT game_id FROM matches WHERE %s)
		GROUP BY team
		ORDER BY COUNT(*) DESC, team
	`, pred), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	splits := make([]models.TeamSplit, 0)
	for rows.Next() {
		var split models.TeamSplit
		if err := rows.Scan(&split.Team, &split.Appearances, &split.Minutes,
			&split.Goals, &split.Assists); err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return splits, nil
}
