package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/stadtaev/sixdegrees/internal/config"
	"github.com/stadtaev/sixdegrees/internal/database"
	"github.com/stadtaev/sixdegrees/internal/game"
	"github.com/stadtaev/sixdegrees/internal/graph"
	"github.com/stadtaev/sixdegrees/internal/migrations"
	"github.com/stadtaev/sixdegrees/internal/policy"
	"github.com/stadtaev/sixdegrees/internal/server"
	"github.com/stadtaev/sixdegrees/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Redis (optional response cache) ---
	var rdb *redis.Client
	var graphOpts []graph.Option
	if cfg.RedisURL != "" {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		graphOpts = append(graphOpts, graph.WithCache(graph.NewRedisCache(rdb), cfg.GraphCacheTTL))
		logger.Info("connected to redis")
	}

	// --- Game engine ---
	variant, err := game.ParseVariant(cfg.Game.Variant)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	denied, err := policy.Load(cfg.DenylistPath)
	if err != nil {
		return fmt.Errorf("loading denylist: %w", err)
	}
	logger.Info("policy denylist loaded", "names", len(denied))

	graphClient := graph.New(cfg.GraphServiceURL, cfg.GraphServiceToken, cfg.GraphTimeout, logger, graphOpts...)
	store := storage.NewSQLite(db, cfg.Game.MaxScoreResetAfter)
	eng := game.NewEngine(store, graphClient, denied, game.Options{
		Variant:          variant,
		DistanceOfWrong1: cfg.Game.DistanceOfWrong1,
		DistanceOfWrong2: cfg.Game.DistanceOfWrong2,
		MaxCandidates:    cfg.Game.MaxCandidates,
		FirstFewMax:      cfg.Game.FirstFewMax,
	}, logger)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, eng, db, rdb)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
