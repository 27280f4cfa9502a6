package handlers

import (
	"context"

	"github.com/fbsts/stats-api/internal/logic"
	"github.com/fbsts/stats-api/internal/models"
)

// MockTeamStats implements logic.TeamStatsService for testing
type MockTeamStats struct {
	ListTeamsFunc   func(ctx context.Context) ([]models.Team, error)
	GetTeamPageFunc func(ctx context.Context, slug string, f logic.MatchFilter, mode logic.Mode) (*models.TeamPage, error)
}

func (m *MockTeamStats) ListTeams(ctx context.Context) ([]models.Team, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(ctx)
	}
	return nil, nil
}

func (m *MockTeamStats) GetTeamPage(ctx context.Context, slug string, f logic.MatchFilter, mode logic.Mode) (*models.TeamPage, error) {
	if m.GetTeamPageFunc != nil {
		return m.GetTeamPageFunc(ctx, slug, f, mode)
	}
	return &models.TeamPage{}, nil
}

// MockPlayerStats implements logic.PlayerStatsService for testing
type MockPlayerStats struct {
	GetPlayerPageFunc func(ctx context.Context, slug string, f logic.MatchFilter, mode logic.Mode) (*models.PlayerPage, error)
}

func (m *MockPlayerStats) GetPlayerPage(ctx context.Context, slug string, f logic.MatchFilter, mode logic.Mode) (*models.PlayerPage, error) {
	if m.GetPlayerPageFunc != nil {
		return m.GetPlayerPageFunc(ctx, slug, f, mode)
	}
	return &models.PlayerPage{}, nil
}

// MockLeaderboard implements logic.LeaderboardService for testing
type MockLeaderboard struct {
	GetLeaderboardsFunc      func(ctx context.Context, table string, f logic.MatchFilter, mode logic.Mode, limit int) (*models.Leaderboards, error)
	GetColumnLeaderboardFunc func(ctx context.Context, table, column string, f logic.MatchFilter, mode logic.Mode, limit int) (*models.ColumnLeaderboard, error)
}

func (m *MockLeaderboard) GetLeaderboards(ctx context.Context, table string, f logic.MatchFilter, mode logic.Mode, limit int) (*models.Leaderboards, error) {
	if m.GetLeaderboardsFunc != nil {
		return m.GetLeaderboardsFunc(ctx, table, f, mode, limit)
	}
	return &models.Leaderboards{}, nil
}

func (m *MockLeaderboard) GetColumnLeaderboard(ctx context.Context, table, column string, f logic.MatchFilter, mode logic.Mode, limit int) (*models.ColumnLeaderboard, error) {
	if m.GetColumnLeaderboardFunc != nil {
		return m.GetColumnLeaderboardFunc(ctx, table, column, f, mode, limit)
	}
	return &models.ColumnLeaderboard{}, nil
}

// MockDashboard implements logic.DashboardService for testing
type MockDashboard struct {
	GetDashboardFunc func(ctx context.Context, f logic.MatchFilter, mode logic.Mode, limit int) (*models.Dashboard, error)
}

func (m *MockDashboard) GetDashboard(ctx context.Context, f logic.MatchFilter, mode logic.Mode, limit int) (*models.Dashboard, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx, f, mode, limit)
	}
	return &models.Dashboard{}, nil
}

// MockSearch implements logic.SearchService for testing
type MockSearch struct {
	SearchFunc func(ctx context.Context, q string, limit int) ([]models.SearchResult, error)
}

func (m *MockSearch) Search(ctx context.Context, q string, limit int) ([]models.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q, limit)
	}
	return nil, nil
}

// MockVerifier implements auth.Verifier for testing
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) error
}

func (m *MockVerifier) Verify(ctx context.Context, token string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil
}
