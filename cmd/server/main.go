package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fbsts/stats-api/internal/auth"
	"github.com/fbsts/stats-api/internal/config"
	"github.com/fbsts/stats-api/internal/handlers"
	"github.com/fbsts/stats-api/internal/logic"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Invalid Postgres URL", "error", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	var verifier auth.Verifier
	if cfg.AuthDisabled {
		sugar.Warnw("Bearer-token verification disabled")
	} else {
		verifier, err = auth.NewJWKSVerifier(ctx, cfg.AuthIssuer, cfg.AuthAudience)
		if err != nil {
			sugar.Fatalw("Failed to initialize JWKS verifier", "error", err)
		}
	}

	agg := logic.NewAggregator(pool)
	cache := logic.NewCache(rdb, cfg.CacheTTL, sugar)

	h := handlers.New(handlers.Config{
		Postgres:           pool,
		Redis:              rdb,
		Logger:             logger,
		Verifier:           verifier,
		AuthDisabled:       cfg.AuthDisabled,
		DefaultSeason:      cfg.DefaultSeason,
		DefaultCompetition: cfg.DefaultCompetition,
		TeamStats:          logic.NewTeamStatsService(pool, agg, cache),
		PlayerStats:        logic.NewPlayerStatsService(pool, agg, cache),
		Leaderboard:        logic.NewLeaderboardService(agg, cache),
		Dashboard:          logic.NewDashboardService(pool, agg, cache),
		Search:             logic.NewSearchService(pool),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Router(cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Shutdown failed", "error", err)
	}
}
