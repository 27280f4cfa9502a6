package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fbsts/stats-api/internal/metrics"
	"github.com/fbsts/stats-api/internal/models"
)

// DashboardService assembles the landing-page panels: standings, schedule and
// the headline leaderboards.
type DashboardService interface {
	GetDashboard(ctx context.Context, f MatchFilter, mode Mode, limit int) (*models.Dashboard, error)
}

type dashboardService struct {
	pg    PgPool
	agg   *Aggregator
	cache *Cache
}

func NewDashboardService(pg PgPool, agg *Aggregator, cache *Cache) DashboardService {
	return &dashboardService{pg: pg, agg: agg, cache: cache}
}

// dashboardStats are the normalized player_match_stats columns surfaced as
// dashboard leaderboards.
var dashboardStats = []string{"goals", "assists", "shots", "minutes"}

func (s *dashboardService) GetDashboard(ctx context.Context, f MatchFilter, mode Mode, limit int) (*models.Dashboard, error) {
	key := Key("dashboard", ModeKey(f, mode), fmt.Sprintf("%d", limit))
	var cached models.Dashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	matchCols, err := s.agg.Schema().Columns(ctx, "matches")
	if err != nil {
		return nil, err
	}

	dash := &models.Dashboard{
		Season:       f.Season,
		Competition:  f.Competition,
		Leaderboards: make(map[string][]models.LeaderboardRow, len(dashboardStats)),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		standings, err := s.standings(gctx, f, matchCols)
		if err != nil {
			return fmt.Errorf("standings: %w", err)
		}
		dash.Standings = standings
		return nil
	})

	g.Go(func() error {
		schedule, err := s.schedule(gctx, f, matchCols, limit)
		if err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		dash.Schedule = schedule
		return nil
	})

	g.Go(func() error {
		boards, err := s.leaderboards(gctx, f, matchCols, mode, limit)
		if err != nil {
			return fmt.Errorf("leaderboards: %w", err)
		}
		dash.Leaderboards = boards
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, dash)
	return dash, nil
}

func (s *dashboardService) standings(ctx context.Context, f MatchFilter, matchCols map[string]string) ([]models.StandingsRow, error) {
	run := func(f MatchFilter) ([]models.StandingsRow, error) {
		pred, args := f.BuildPredicate(matchCols, 0)

		rows, err := s.pg.Query(ctx, fmt.Sprintf(`
			SELECT tms.team,
			       COUNT(*),
			       COUNT(*) FILTER (WHERE tms.result = 'W'),
			       COUNT(*) FILTER (WHERE tms.result = 'D'),
			       COUNT(*) FILTER (WHERE tms.result = 'L'),
			       COALESCE(SUM(tms.goals_for), 0),
			       COALESCE(SUM(tms.goals_against), 0)
			FROM team_match_stats tms
			WHERE tms.game_id IN (SELECT game_id FROM matches WHERE %s)
			GROUP BY tms.team
		`, pred), args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		table := make([]models.StandingsRow, 0)
		for rows.Next() {
			var r models.StandingsRow
			if err := rows.Scan(&r.Team, &r.Played, &r.Wins, &r.Draws, &r.Losses,
				&r.GoalsFor, &r.GoalsAgainst); err != nil {
				return nil, err
			}
			r.Points = r.Wins*3 + r.Draws
			r.GoalDifference = r.GoalsFor - r.GoalsAgainst
			if r.Played > 0 {
				r.PointsPerGame = float64(r.Points) / float64(r.Played)
			}
			table = append(table, r)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return table, nil
	}

	table, err := run(f)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 && f.hasCompetitionFilter(matchCols) {
		metrics.FilterFallbacks.Inc()
		if table, err = run(f.WithoutCompetition()); err != nil {
			return nil, err
		}
	}

	sortStandings(table)
	return table, nil
}

// sortStandings orders a league table by points, then goal difference, then
// goals scored, then name, and assigns ranks.
func sortStandings(table []models.StandingsRow) {
	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range table {
		table[i].Rank = i + 1
	}
}

// schedule returns the latest completed fixtures and the next scheduled ones,
// scores taken from the home side's team_match_stats row when present. The
// two halves are queried separately: ordering the whole season by date would
// surface only far-future fixtures once upcoming rows outnumber the limit.
func (s *dashboardService) schedule(ctx context.Context, f MatchFilter, matchCols map[string]string, limit int) ([]models.Fixture, error) {
	run := func(f MatchFilter) ([]models.Fixture, error) {
		pred, args := f.BuildPredicate(matchCols, 0)

		rows, err := s.pg.Query(ctx, fmt.Sprintf(`
			SELECT * FROM (
				(SELECT m.game_id, m.match_date, m.home_team, m.away_team,
				        tms.goals_for, tms.goals_against
				 FROM matches m
				 LEFT JOIN team_match_stats tms
				   ON tms.game_id = m.game_id AND tms.team = m.home_team
				 WHERE %s AND tms.goals_for IS NOT NULL
				 ORDER BY m.match_date DESC
				 LIMIT %d)
				UNION ALL
				(SELECT m.game_id, m.match_date, m.home_team, m.away_team,
				        tms.goals_for, tms.goals_against
				 FROM matches m
				 LEFT JOIN team_match_stats tms
				   ON tms.game_id = m.game_id AND tms.team = m.home_team
				 WHERE %s AND tms.goals_for IS NULL
				 ORDER BY m.match_date ASC
				 LIMIT %d)
			) fixtures
			ORDER BY match_date
		`, pred, limit, pred, limit), args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		fixtures := make([]models.Fixture, 0, limit)
		for rows.Next() {
			var fx models.Fixture
			var date *time.Time
			if err := rows.Scan(&fx.GameID, &date, &fx.HomeTeam, &fx.AwayTeam,
				&fx.HomeGoals, &fx.AwayGoals); err != nil {
				return nil, err
			}
			if date != nil {
				fx.Date = *date
			}
			fx.Played = fx.HomeGoals != nil && fx.AwayGoals != nil
			fixtures = append(fixtures, fx)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return fixtures, nil
	}

	fixtures, err := run(f)
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 && f.hasCompetitionFilter(matchCols) {
		metrics.FilterFallbacks.Inc()
		if fixtures, err = run(f.WithoutCompetition()); err != nil {
			return nil, err
		}
	}
	return fixtures, nil
}

func (s *dashboardService) leaderboards(ctx context.Context, f MatchFilter, matchCols map[string]string, mode Mode, limit int) (map[string][]models.LeaderboardRow, error) {
	run := func(f MatchFilter, stat string) ([]models.LeaderboardRow, error) {
		pred, args := f.BuildPredicate(matchCols, 0)

		rows, err := s.pg.Query(ctx, fmt.Sprintf(`
			SELECT player,
			       COUNT(*)::double precision,
			       COALESCE(SUM(minutes), 0)::double precision,
			       COALESCE(SUM(%q), 0)::double precision AS value
			FROM player_match_stats
			WHERE game_id IN (SELECT game_id FROM matches WHERE %s)
			GROUP BY player
			ORDER BY value DESC
			LIMIT %d
		`, stat, pred, limit), args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		ranked := make([]models.LeaderboardRow, 0, limit)
		for rows.Next() {
			var row models.LeaderboardRow
			var line EntityTotals
			var value float64
			if err := rows.Scan(&row.Player, &line.Matches, &line.Minutes, &value); err != nil {
				return nil, err
			}
			row.Value = scaleValue(stat, value, mode, line)
			ranked = append(ranked, row)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return ranked, nil
	}

	boards := make(map[string][]models.LeaderboardRow, len(dashboardStats))
	for _, stat := range dashboardStats {
		ranked, err := run(f, stat)
		if err != nil {
			return nil, fmt.Errorf("%s board: %w", stat, err)
		}
		if len(ranked) == 0 && f.hasCompetitionFilter(matchCols) {
			metrics.FilterFallbacks.Inc()
			if ranked, err = run(f.WithoutCompetition(), stat); err != nil {
				return nil, fmt.Errorf("%s board fallback: %w", stat, err)
			}
		}
		boards[stat] = ranked
	}
	return boards, nil
}
