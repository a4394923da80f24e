// Command dexgen builds the Pokédex cache (professordata.json,
// egg_groups.json and optionally sprites) from PokeAPI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/FabledTyromancer/Professorlocke/internal/config"
	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/pokeapi"
)

type options struct {
	clear    bool
	flush    bool
	sprites  bool
	variants string
	count    int
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts options
	flag.BoolVar(&opts.clear, "clear", false, "Delete the existing cache files before fetching")
	flag.BoolVar(&opts.flush, "flush", false, "Also drop cached PokeAPI responses from Redis")
	flag.BoolVar(&opts.sprites, "sprites", false, "Download sprites into the cache directory")
	flag.StringVar(&opts.variants, "variants", "", "Extra pokemon ids to fetch, e.g. 10091-10115,10161 (regional forms)")
	flag.IntVar(&opts.count, "count", 0, "Number of national dex entries to fetch (default POKEMON_COUNT)")
	flag.Parse()

	if err := run(ctx, os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	count := cfg.PokemonCount
	if opts.count > 0 {
		count = opts.count
	}
	variants, err := parseIDs(opts.variants)
	if err != nil {
		return fmt.Errorf("parsing -variants: %w", err)
	}
	ids := make([]int, 0, count+len(variants))
	for id := 1; id <= count; id++ {
		ids = append(ids, id)
	}
	ids = append(ids, variants...)

	if opts.clear {
		removed, err := dex.Clear(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		logger.Info("cleared cache", "removed", removed)
	}

	var clientOpts []pokeapi.ClientOption
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		cache := pokeapi.NewRedisCache(rdb, cfg.RedisTTL)
		if opts.flush {
			n, err := cache.Clear(ctx)
			if err != nil {
				return fmt.Errorf("flushing response cache: %w", err)
			}
			logger.Info("flushed response cache", "keys", n)
		}
		clientOpts = append(clientOpts, pokeapi.WithCache(cache))
		logger.Info("using redis response cache", "ttl", cfg.RedisTTL.String())
	}

	client := pokeapi.NewClient(cfg.PokeAPIBase, logger, clientOpts...)
	fetcher := pokeapi.NewFetcher(client, logger, cfg.FetchConcurrency, cfg.FetchDelay)

	logger.Info("fetching pokemon", "count", len(ids), "concurrency", cfg.FetchConcurrency, "delay", cfg.FetchDelay.String())
	entities, err := fetcher.FetchAll(ctx, ids, func(done, total int) {
		if done%50 == 0 || done == total {
			logger.Info("progress", "done", done, "total", total)
		}
	})
	if err != nil {
		return err
	}

	dataPath := filepath.Join(cfg.DataDir, dex.DataFile)
	if err := dex.SaveJSON(dataPath, entities); err != nil {
		return fmt.Errorf("saving pokemon: %w", err)
	}
	logger.Info("saved pokemon", "path", dataPath, "pokemon", len(entities), "skipped", len(ids)-len(entities))

	groups, err := fetcher.EggGroups(ctx, entities)
	if err != nil {
		return fmt.Errorf("fetching egg groups: %w", err)
	}
	groupPath := filepath.Join(cfg.DataDir, dex.GroupFile)
	if err := dex.SaveJSON(groupPath, groups); err != nil {
		return fmt.Errorf("saving egg groups: %w", err)
	}
	logger.Info("saved egg groups", "path", groupPath, "groups", len(groups))

	if opts.sprites {
		dir := filepath.Join(cfg.DataDir, dex.SpriteDir)
		n, err := fetcher.DownloadSprites(ctx, dir, entities)
		if err != nil {
			return fmt.Errorf("downloading sprites: %w", err)
		}
		logger.Info("downloaded sprites", "dir", dir, "new", n)
	}
	return nil
}

// parseIDs reads a comma separated list of ids and inclusive ranges.
func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid id %q", part)
			}
		}
		if first < 1 || last < first {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		for id := first; id <= last; id++ {
			ids = append(ids, id)
		}
	}
	return ids, nil
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
