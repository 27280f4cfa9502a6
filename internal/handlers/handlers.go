package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fbsts/stats-api/internal/auth"
	"github.com/fbsts/stats-api/internal/logic"
)

type Config struct {
	Postgres *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.Logger

	Verifier     auth.Verifier
	AuthDisabled bool

	DefaultSeason      string
	DefaultCompetition string

	// Services
	TeamStats   logic.TeamStatsService
	PlayerStats logic.PlayerStatsService
	Leaderboard logic.LeaderboardService
	Dashboard   logic.DashboardService
	Search      logic.SearchService
}

type Handler struct {
	pg           *pgxpool.Pool
	redis        *redis.Client
	logger       *zap.SugaredLogger
	validator    *validator.Validate
	verifier     auth.Verifier
	authDisabled bool

	defaultSeason      string
	defaultCompetition string

	teamStats   logic.TeamStatsService
	playerStats logic.PlayerStatsService
	leaderboard logic.LeaderboardService
	dashboard   logic.DashboardService
	search      logic.SearchService
}

func New(cfg Config) *Handler {
	season := cfg.DefaultSeason
	if season == "" {
		season = "2024-2025"
	}
	competition := cfg.DefaultCompetition
	if competition == "" {
		competition = "ENG-Premier League"
	}
	return &Handler{
		pg:                 cfg.Postgres,
		redis:              cfg.Redis,
		logger:             cfg.Logger.Sugar(),
		validator:          validator.New(),
		verifier:           cfg.Verifier,
		authDisabled:       cfg.AuthDisabled,
		defaultSeason:      season,
		defaultCompetition: competition,
		teamStats:          cfg.TeamStats,
		playerStats:        cfg.PlayerStats,
		leaderboard:        cfg.Leaderboard,
		dashboard:          cfg.Dashboard,
		search:             cfg.Search,
	}
}
