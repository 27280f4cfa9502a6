package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/fbsts/stats-api/internal/metrics"
	"github.com/fbsts/stats-api/internal/models"
)

// TeamStatsService serves the team list and the per-team page.
type TeamStatsService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeamPage(ctx context.Context, slug string, f MatchFilter, mode Mode) (*models.TeamPage, error)
}

type teamStatsService struct {
	pg    PgPool
	agg   *Aggregator
	cache *Cache
}

func NewTeamStatsService(pg PgPool, agg *Aggregator, cache *Cache) TeamStatsService {
	return &teamStatsService{pg: pg, agg: agg, cache: cache}
}

func (s *teamStatsService) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := s.pg.Query(ctx, `SELECT name FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, models.Team{Name: name, Slug: Slugify(name)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("team iteration: %w", err)
	}
	return teams, nil
}

// resolveTeam maps a slug to the stored team name: configured name variants
// first, then the in-database slug comparison.
func (s *teamStatsService) resolveTeam(ctx context.Context, slug string) (string, error) {
	if name, ok := CanonicalTeamName(slug); ok {
		slug = Slugify(name)
	}
	var name string
	err := s.pg.QueryRow(ctx,
		fmt.Sprintf(`SELECT name FROM teams WHERE %s = $1`, fmt.Sprintf(slugSQL, "name")),
		slug).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: team %q", ErrNotFound, slug)
	}
	if err != nil {
		return "", fmt.Errorf("resolve team: %w", err)
	}
	return name, nil
}

func (s *teamStatsService) GetTeamPage(ctx context.Context, slug string, f MatchFilter, mode Mode) (*models.TeamPage, error) {
	key := Key("team", slug, ModeKey(f, mode))
	var cached models.TeamPage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	name, err := s.resolveTeam(ctx, slug)
	if err != nil {
		return nil, err
	}

	matchCols, err := s.agg.Schema().Columns(ctx, "matches")
	if err != nil {
		return nil, err
	}

	totals, f, err := s.teamTotals(ctx, name, f, matchCols)
	if err != nil {
		return nil, err
	}

	// One denominator for the whole page: every category is scaled by the
	// team's match count, not by however many rows its own table happens to
	// carry. Sparse exports would otherwise inflate per-game values.
	pageMatches := totals["matches"]

	page := &models.TeamPage{
		Team:   name,
		Mode:   string(mode),
		Totals: Scale(totals, mode, pageMatches, 0, DefaultExclusions()),
		Stats:  make(map[string]map[string]float64, len(TeamStatTables)),
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for category, table := range TeamStatTables {
		category, table := category, table
		g.Go(func() error {
			line, err := s.agg.Totals(gctx, table, "team", name, f)
			if err != nil {
				return fmt.Errorf("%s stats: %w", category, err)
			}
			var scaled map[string]float64
			if line != nil {
				scaled = Scale(line.Totals, mode, pageMatches, 0, DefaultExclusions())
				scaled["matches"] = line.Matches
			}
			mu.Lock()
			page.Stats[category] = scaled
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		matches, err := s.matchLog(gctx, name, f, matchCols)
		if err != nil {
			return fmt.Errorf("match log: %w", err)
		}
		page.Matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, page)
	return page, nil
}

// teamTotals builds the unscaled season summary from team_match_stats. It
// returns the filter actually used so the rest of the page sees the same
// rows after a competition-drop fallback.
func (s *teamStatsService) teamTotals(ctx context.Context, name string, f MatchFilter, matchCols map[string]string) (map[string]float64, MatchFilter, error) {
	run := func(f MatchFilter) (map[string]float64, error) {
		pred, args := f.BuildPredicate(matchCols, 1)
		args = append([]any{name}, args...)

		var matches, wins, draws, losses, goalsFor, goalsAgainst float64
		err := s.pg.QueryRow(ctx, fmt.Sprintf(`
			SELECT COUNT(*)::double precision,
			       COUNT(*) FILTER (WHERE tms.result = 'W')::double precision,
			       COUNT(*) FILTER (WHERE tms.result = 'D')::double precision,
			       COUNT(*) FILTER (WHERE tms.result = 'L')::double precision,
			       COALESCE(SUM(tms.goals_for), 0)::double precision,
			       COALESCE(SUM(tms.goals_against), 0)::double precision
			FROM team_match_stats tms
			WHERE tms.team = $1
			  AND tms.game_id IN (SELECT game_id FROM matches WHERE %s)
		`, pred), args...).Scan(&matches, &wins, &draws, &losses, &goalsFor, &goalsAgainst)
		if err != nil {
			return nil, fmt.Errorf("team totals: %w", err)
		}
		return map[string]float64{
			"matches":       matches,
			"wins":          wins,
			"draws":         draws,
			"losses":        losses,
			"points":        wins*3 + draws,
			"goals_for":     goalsFor,
			"goals_against": goalsAgainst,
		}, nil
	}

	totals, err := run(f)
	if err != nil {
		return nil, f, err
	}
	if totals["matches"] == 0 && f.hasCompetitionFilter(matchCols) {
		metrics.FilterFallbacks.Inc()
		fallback := f.WithoutCompetition()
		if totals, err = run(fallback); err != nil {
			return nil, f, err
		}
		if totals["matches"] > 0 {
			return totals, fallback, nil
		}
	}
	return totals, f, nil
}

func (s *teamStatsService) matchLog(ctx context.Context, name string, f MatchFilter, matchCols map[string]string) ([]models.MatchLogEntry, error) {
	pred, args := f.BuildPredicate(matchCols, 1)
	args = append([]any{name}, args...)

	rows, err := s.pg.Query(ctx, fmt.Sprintf(`
		SELECT m.game_id, m.match_date, m.home_team, m.away_team,
		       COALESCE(tms.venue, ''), COALESCE(tms.result, ''),
		       tms.goals_for, tms.goals_against
		FROM team_match_stats tms
		JOIN matches m ON m.game_id = tms.game_id
		WHERE tms.team = $1
		  AND m.game_id IN (SELECT game_id FROM matches WHERE %s)
		ORDER BY m.match_date
	`, pred), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.MatchLogEntry, 0)
	index := make(map[string]int)
	for rows.Next() {
		var e models.MatchLogEntry
		var date *time.Time
		if err := rows.Scan(&e.GameID, &date, &e.HomeTeam, &e.AwayTeam,
			&e.Venue, &e.Result, &e.GoalsFor, &e.GoalsAgainst); err != nil {
			return nil, err
		}
		if date != nil {
			e.Date = *date
		}
		e.Scorers = make([]models.Scorer, 0)
		index[e.GameID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	scorers, err := s.pg.Query(ctx, fmt.Sprintf(`
		SELECT game_id, player, goals
		FROM player_match_stats
		WHERE team = $1 AND goals > 0
		  AND game_id IN (SELECT game_id FROM matches WHERE %s)
		ORDER BY goals DESC, player
	`, pred), args...)
	if err != nil {
		return nil, err
	}
	defer scorers.Close()

	for scorers.Next() {
		var gameID, player string
		var goals int
		if err := scorers.Scan(&gameID, &player, &goals); err != nil {
			return nil, err
		}
		if i, ok := index[gameID]; ok {
			entries[i].Scorers = append(entries[i].Scorers, models.Scorer{Player: player, Goals: goals})
		}
	}
	if err := scorers.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
