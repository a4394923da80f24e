package server

import (
	"context"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/store"
)

// Store persists preferences and finished quizzes.
type Store interface {
	Preferences(ctx context.Context) (store.Preferences, error)
	SavePreferences(ctx context.Context, p store.Preferences) error
	RecordResult(ctx context.Context, r store.Result) (store.Result, error)
	ListResults(ctx context.Context, limit int) ([]store.Result, error)
}

// Catalog hands out the loaded Pokédex data without blocking.
type Catalog interface {
	Get() (*dex.Pool, dex.GroupTable, error)
}
