package store_test

import (
	"context"
	"testing"

	"github.com/FabledTyromancer/Professorlocke/internal/database"
	"github.com/FabledTyromancer/Professorlocke/internal/migrations"
	"github.com/FabledTyromancer/Professorlocke/internal/store"
)

func newTestStore(t *testing.T, defaults store.Preferences) *store.SQLiteStore {
	t.Helper()
	db, err := database.Open(context.Background(), database.Memory)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return store.NewSQLiteStore(db, defaults)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.Preferences{UseMetric: true})

	got, err := s.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if !got.UseMetric {
		t.Error("expected default preference before anything is saved")
	}

	for _, want := range []bool{false, true, false} {
		if err := s.SavePreferences(ctx, store.Preferences{UseMetric: want}); err != nil {
			t.Fatalf("SavePreferences: %v", err)
		}
		got, err := s.Preferences(ctx)
		if err != nil {
			t.Fatalf("Preferences: %v", err)
		}
		if got.UseMetric != want {
			t.Errorf("UseMetric = %v, want %v", got.UseMetric, want)
		}
	}
}

func TestResults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.Preferences{})

	results, err := s.ListResults(ctx, 10)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}

	inputs := []store.Result{
		{SessionID: "a", Pokemon: "bulbasaur", Score: 6, Total: 8, Percent: 75, Passed: true},
		{SessionID: "b", Pokemon: "pikachu", Score: 3.5, Total: 7, Percent: 50},
		{SessionID: "a", Pokemon: "eevee", Score: 7, Total: 7, Percent: 100, Passed: true},
	}
	for _, in := range inputs {
		r, err := s.RecordResult(ctx, in)
		if err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
		if r.ID == 0 || r.FinishedAt.IsZero() {
			t.Errorf("RecordResult did not fill id and time: %+v", r)
		}
	}

	results, err = s.ListResults(ctx, 2)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Pokemon != "eevee" || results[1].Pokemon != "pikachu" {
		t.Errorf("order = %s, %s; want eevee, pikachu", results[0].Pokemon, results[1].Pokemon)
	}
	if results[1].Score != 3.5 || results[1].Passed {
		t.Errorf("pikachu result = %+v", results[1])
	}
}

func TestCheck(t *testing.T) {
	s := newTestStore(t, store.Preferences{})
	if err := s.Check(context.Background()); err != nil {
		t.Errorf("Check: %v", err)
	}
}
