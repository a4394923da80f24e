package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir  string     `env:"DATA_DIR" envDefault:"professor_cache"`
	DBPath   string     `env:"DB_PATH" envDefault:"professor_cache/professor.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	NumericLeniency     float64 `env:"NUMERIC_LENIENCY" envDefault:"0.15"`
	SimilarityThreshold float64 `env:"SIMILARITY_THRESHOLD" envDefault:"0.7"`
	UseMetric           bool    `env:"USE_METRIC" envDefault:"true"`

	PokeAPIBase      string        `env:"POKEAPI_BASE" envDefault:"https://pokeapi.co/api/v2/"`
	PokemonCount     int           `env:"POKEMON_COUNT" envDefault:"1025"`
	FetchConcurrency int           `env:"FETCH_CONCURRENCY" envDefault:"4"`
	FetchDelay       time.Duration `env:"FETCH_DELAY" envDefault:"500ms"`
	RedisURL         string        `env:"REDIS_URL"`
	RedisTTL         time.Duration `env:"REDIS_TTL" envDefault:"168h"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.NumericLeniency < 0 {
		return fmt.Errorf("NUMERIC_LENIENCY must not be negative, got %v", c.NumericLeniency)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be within [0, 1], got %v", c.SimilarityThreshold)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.FetchConcurrency)
	}
	return nil
}

// Tolerance returns the matcher settings.
func (c Config) Tolerance() quiz.Tolerance {
	return quiz.Tolerance{
		NumericLeniency:     c.NumericLeniency,
		SimilarityThreshold: c.SimilarityThreshold,
	}
}
