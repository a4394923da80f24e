package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.DataDir != "professor_cache" {
		t.Errorf("addr=%q dir=%q", cfg.HTTPAddr, cfg.DataDir)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
	if tol := cfg.Tolerance(); tol.NumericLeniency != 0.15 || tol.SimilarityThreshold != 0.7 {
		t.Errorf("tolerance = %+v", tol)
	}
	if !cfg.UseMetric || cfg.FetchDelay != 500*time.Millisecond || cfg.RedisURL != "" {
		t.Errorf("metric=%v delay=%v redis=%q", cfg.UseMetric, cfg.FetchDelay, cfg.RedisURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("USE_METRIC", "false")
	t.Setenv("SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("FETCH_DELAY", "2s")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://quiz.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.UseMetric || cfg.SimilarityThreshold != 0.9 || cfg.FetchDelay != 2*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://quiz.example" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"NUMERIC_LENIENCY":     "-1",
		"SIMILARITY_THRESHOLD": "1.5",
		"FETCH_CONCURRENCY":    "0",
		"POKEMON_COUNT":        "many",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}
