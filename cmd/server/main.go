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

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/FabledTyromancer/Professorlocke/internal/config"
	"github.com/FabledTyromancer/Professorlocke/internal/database"
	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/handler/health"
	"github.com/FabledTyromancer/Professorlocke/internal/migrations"
	"github.com/FabledTyromancer/Professorlocke/internal/server"
	"github.com/FabledTyromancer/Professorlocke/internal/store"
)

const (
	pruneInterval  = 5 * time.Minute
	sessionMaxIdle = 2 * time.Hour
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

	st := store.NewSQLiteStore(db, store.Preferences{UseMetric: cfg.UseMetric})
	checks := map[string]health.Checker{
		"sqlite": st,
	}

	// --- Redis (optional, shared with dexgen) ---
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		checks["redis"] = health.CheckFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		logger.Info("connected to redis")
	}

	// --- Pokédex ---
	catalog := dex.NewCatalog(cfg.DataDir, logger)
	checks["pokedex"] = catalog

	api := server.NewAPI(logger, catalog, st,
		server.WithTolerance(cfg.Tolerance()),
		server.WithAllowedOrigins(cfg.CORSOrigins),
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, cfg.SPADir, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
		r.Mount("/api", api.Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// A missing cache is reported through /healthz; the server keeps
		// running so dexgen can be pointed at it later.
		if err := catalog.Load(gctx); err != nil {
			logger.Warn("pokedex unavailable, run dexgen to build the cache", "dir", cfg.DataDir)
		}
		return nil
	})

	g.Go(func() error {
		return api.PruneLoop(gctx, pruneInterval, sessionMaxIdle)
	})

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
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
