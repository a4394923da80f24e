// Command locke runs the Pokémon quiz in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/FabledTyromancer/Professorlocke/internal/config"
	"github.com/FabledTyromancer/Professorlocke/internal/database"
	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/migrations"
	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
	"github.com/FabledTyromancer/Professorlocke/internal/store"
	"github.com/FabledTyromancer/Professorlocke/internal/units"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	noSave := flag.Bool("no-save", false, "Do not read preferences or record results")
	flag.Parse()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, *noSave); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, noSave bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	catalog := dex.NewCatalog(cfg.DataDir, logger)
	if err := catalog.Load(ctx); err != nil {
		return fmt.Errorf("loading pokedex from %s (run dexgen first): %w", cfg.DataDir, err)
	}
	pool, groups, err := catalog.Get()
	if err != nil {
		return err
	}

	g := &game{
		in:     stdin,
		out:    stdout,
		logger: logger,
		quiz:   quiz.NewSession(pool, groups, quiz.WithTolerance(cfg.Tolerance())),
	}
	g.quiz.SetUnits(units.FromMetric(cfg.UseMetric))

	if !noSave {
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		g.store = store.NewSQLiteStore(db, store.Preferences{UseMetric: cfg.UseMetric})
	}

	return g.play(ctx)
}
