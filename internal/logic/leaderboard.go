package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fbsts/stats-api/internal/models"
)

// leaderboardColumnCap bounds how many discovered columns the all-columns
// variant aggregates; the widest fbref tables carry 30+ numeric columns and a
// single grouped query covers them all, the cap just keeps responses sane.
const leaderboardColumnCap = 40

// LeaderboardService ranks entities over the discovered numeric columns of a
// requested stat table.
type LeaderboardService interface {
	GetLeaderboards(ctx context.Context, table string, f MatchFilter, mode Mode, limit int) (*models.Leaderboards, error)
	GetColumnLeaderboard(ctx context.Context, table, column string, f MatchFilter, mode Mode, limit int) (*models.ColumnLeaderboard, error)
}

type leaderboardService struct {
	agg   *Aggregator
	cache *Cache
}

func NewLeaderboardService(agg *Aggregator, cache *Cache) LeaderboardService {
	return &leaderboardService{agg: agg, cache: cache}
}

// entityColumn picks the grouping column implied by the table name.
func entityColumn(table string) string {
	if strings.HasPrefix(table, "fbref_team_") {
		return "team"
	}
	return "player"
}

// scaleValue rescales a single leaderboard value using the entity's own match
// and minute counts as denominators.
func scaleValue(column string, value float64, mode Mode, line EntityTotals) float64 {
	scaled := Scale(map[string]float64{column: value}, mode, line.Matches, line.Minutes, DefaultExclusions())
	return scaled[column]
}

func (s *leaderboardService) GetLeaderboards(ctx context.Context, table string, f MatchFilter, mode Mode, limit int) (*models.Leaderboards, error) {
	if !TableAllowed(table) {
		return nil, fmt.Errorf("%w: unsupported table %q", ErrBadRequest, table)
	}
	key := Key("leaderboards", table, ModeKey(f, mode), fmt.Sprintf("%d", limit))
	var cached models.Leaderboards
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	lines, err := s.agg.GroupedTotals(ctx, table, entityColumn(table), f)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]bool)
	for _, line := range lines {
		for col := range line.Totals {
			columns[col] = true
		}
	}
	sorted := make([]string, 0, len(columns))
	for col := range columns {
		sorted = append(sorted, col)
	}
	sort.Strings(sorted)
	if len(sorted) > leaderboardColumnCap {
		sorted = sorted[:leaderboardColumnCap]
	}

	out := &models.Leaderboards{
		Table:        table,
		Columns:      sorted,
		Leaderboards: make(map[string][]models.LeaderboardRow, len(sorted)),
	}
	for _, col := range sorted {
		ranked := make([]models.LeaderboardRow, 0, len(lines))
		for _, line := range lines {
			value, ok := line.Totals[col]
			if !ok {
				continue
			}
			ranked = append(ranked, models.LeaderboardRow{
				Player: line.Entity,
				Value:  scaleValue(col, value, mode, line),
			})
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
		if len(ranked) > limit {
			ranked = ranked[:limit]
		}
		out.Leaderboards[col] = ranked
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *leaderboardService) GetColumnLeaderboard(ctx context.Context, table, column string, f MatchFilter, mode Mode, limit int) (*models.ColumnLeaderboard, error) {
	if !TableAllowed(table) {
		return nil, fmt.Errorf("%w: unsupported table %q", ErrBadRequest, table)
	}
	key := Key("leaderboard", table, column, ModeKey(f, mode), fmt.Sprintf("%d", limit))
	var cached models.ColumnLeaderboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	// Over-fetch when rescaling: per-game and per-90 reorder the raw top list.
	fetch := limit
	if mode != ModeTotal {
		fetch = limit * 4
	}
	lines, err := s.agg.TopByColumn(ctx, table, entityColumn(table), column, f, fetch)
	if err != nil {
		return nil, err
	}

	rows := make([]models.LeaderboardRow, 0, len(lines))
	for _, line := range lines {
		value, ok := line.Totals[column]
		if !ok {
			continue
		}
		rows = append(rows, models.LeaderboardRow{
			Player: line.Entity,
			Value:  scaleValue(column, value, mode, line),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := &models.ColumnLeaderboard{Table: table, Column: column, Rows: rows}
	s.cache.Set(ctx, key, out)
	return out, nil
}
