package pokeapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
)

var fixtures = map[string]string{
	"/api/v2/pokemon/1": `{
		"id": 1, "name": "bulbasaur", "height": 7, "weight": 69,
		"types": [{"type": {"name": "grass"}}, {"type": {"name": "poison"}}],
		"abilities": [{"ability": {"name": "overgrow"}}, {"ability": {"name": "chlorophyll"}}],
		"held_items": [],
		"sprites": {"front_default": "{{base}}/sprites/1.png"},
		"species": {"name": "bulbasaur", "url": "{{base}}/api/v2/pokemon-species/1/"}
	}`,
	"/api/v2/pokemon-species/1": `{
		"genera": [
			{"genus": "Pokémon Graine", "language": {"name": "fr"}},
			{"genus": "Seed Pokémon", "language": {"name": "en"}}
		],
		"egg_groups": [{"name": "monster"}, {"name": "plant"}],
		"flavor_text_entries": [
			{"flavor_text": "A strange seed was\nplanted on its\fback at birth.", "language": {"name": "en"}},
			{"flavor_text": "Une graine.", "language": {"name": "fr"}},
			{"flavor_text": "A strange seed was planted on its back at birth.", "language": {"name": "en"}},
			{"flavor_text": "It carries a seed on its back.", "language": {"name": "en"}}
		],
		"evolution_chain": {"url": "{{base}}/api/v2/evolution-chain/1/"}
	}`,
	"/api/v2/evolution-chain/1/": `{
		"chain": {
			"species": {"name": "bulbasaur"},
			"evolution_details": [],
			"evolves_to": [{
				"species": {"name": "ivysaur"},
				"evolution_details": [{"trigger": {"name": "level-up"}, "min_level": 16}],
				"evolves_to": [{
					"species": {"name": "venusaur"},
					"evolution_details": [{"trigger": {"name": "level-up"}, "min_level": 32}],
					"evolves_to": []
				}]
			}]
		}
	}`,
	"/api/v2/ability/overgrow": `{
		"effect_entries": [{"short_effect": "Strengthens grass moves.", "language": {"name": "en"}}]
	}`,
	"/api/v2/ability/chlorophyll": `{"effect_entries": []}`,
	"/api/v2/pokemon/10103": `{
		"id": 10103, "name": "vulpix-alola", "height": 6, "weight": 99,
		"types": [{"type": {"name": "ice"}}],
		"abilities": [],
		"held_items": [],
		"sprites": {"front_default": null},
		"species": {"name": "vulpix", "url": "{{base}}/api/v2/pokemon-species/37/"}
	}`,
	"/api/v2/pokemon-species/37": `{
		"genera": [{"genus": "Fox Pokémon", "language": {"name": "en"}}],
		"egg_groups": [{"name": "ground"}],
		"flavor_text_entries": [],
		"evolution_chain": null
	}`,
	"/api/v2/egg-group/monster": `{"names": [{"name": "Monstruo", "language": {"name": "es"}}, {"name": "Monster", "language": {"name": "en"}}]}`,
	"/api/v2/egg-group/plant":   `{"names": [{"name": "Grass", "language": {"name": "en"}}]}`,
	"/sprites/1.png":            "png-bytes",
}

type fixtureServer struct {
	*httptest.Server
	requests atomic.Int64
}

func newFixtureServer(t *testing.T) *fixtureServer {
	t.Helper()
	fs := &fixtureServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.requests.Add(1)
		body, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, strings.ReplaceAll(body, "{{base}}", fs.URL))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFetcher(srv *fixtureServer, opts ...ClientOption) *Fetcher {
	client := NewClient(srv.URL+"/api/v2", discardLogger(), opts...)
	return NewFetcher(client, discardLogger(), 2, 0)
}

func TestEntity(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)

	e, err := f.Entity(context.Background(), 1)
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}

	want := dex.Entity{
		ID:     1,
		Name:   "bulbasaur",
		Genus:  []string{"Seed Pokémon"},
		Height: 7,
		Weight: 69,
		FlavorText: []string{
			"A strange seed was planted on its back at birth.",
			"It carries a seed on its back.",
		},
		Types: []string{"grass", "poison"},
		Abilities: []dex.Ability{
			{Name: "overgrow", ShortEffect: "Strengthens grass moves."},
			{Name: "chlorophyll", ShortEffect: noEffect},
		},
		EggGroups:      []string{"monster", "plant"},
		HeldItems:      []string{},
		EvolutionChain: []string{"bulbasaur", "ivysaur", "venusaur"},
		Evolutions: []dex.EvolutionTrigger{
			{From: "bulbasaur", To: "ivysaur", Condition: "level-up at level 16"},
			{From: "ivysaur", To: "venusaur", Condition: "level-up at level 32"},
		},
		SpriteURL: srv.URL + "/sprites/1.png",
	}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("Entity(1) =\n%+v\nwant\n%+v", e, want)
	}
}

func TestEntityRegionalForm(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)

	e, err := f.Entity(context.Background(), 10103)
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	if e.Name != "vulpix-alola" || e.ID != 10103 {
		t.Errorf("got %s #%d", e.Name, e.ID)
	}
	if !reflect.DeepEqual(e.Genus, []string{"Fox Pokémon"}) {
		t.Errorf("Genus = %v", e.Genus)
	}
	if e.SpriteURL != "" {
		t.Errorf("SpriteURL = %q, want empty", e.SpriteURL)
	}
	if len(e.EvolutionChain) != 0 || len(e.Evolutions) != 0 || len(e.FlavorText) != 0 {
		t.Errorf("expected empty lists, got %+v", e)
	}
}

func TestEntityNotFound(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)

	_, err := f.Entity(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchAllSkipsFailures(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)

	var calls []int
	var mu sync.Mutex
	entities, err := f.FetchAll(context.Background(), []int{10103, 9999, 1}, func(done, total int) {
		mu.Lock()
		calls = append(calls, done)
		mu.Unlock()
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(entities) != 2 || entities[0].ID != 1 || entities[1].ID != 10103 {
		t.Fatalf("entities = %+v, want ids 1 and 10103", entities)
	}
	if len(calls) != 3 {
		t.Errorf("progress called %d times, want 3", len(calls))
	}
}

func TestFetchAllCanceled(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.FetchAll(ctx, []int{1}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEggGroups(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)

	entities := []dex.Entity{
		{Name: "bulbasaur", EggGroups: []string{"monster", "plant"}},
		{Name: "vulpix-alola", EggGroups: []string{"ground"}},
	}
	got, err := f.EggGroups(context.Background(), entities)
	if err != nil {
		t.Fatalf("EggGroups: %v", err)
	}
	want := dex.GroupTable{"monster": "Monster", "plant": "Grass", "ground": "ground"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EggGroups = %v, want %v", got, want)
	}
}

func TestDownloadSprites(t *testing.T) {
	srv := newFixtureServer(t)
	f := newTestFetcher(srv)
	dir := filepath.Join(t.TempDir(), "sprites")

	entities := []dex.Entity{
		{Name: "bulbasaur", SpriteURL: srv.URL + "/sprites/1.png"},
		{Name: "missingno", SpriteURL: srv.URL + "/sprites/0.png"},
		{Name: "vulpix-alola"},
	}
	n, err := f.DownloadSprites(context.Background(), dir, entities)
	if err != nil {
		t.Fatalf("DownloadSprites: %v", err)
	}
	if n != 1 {
		t.Errorf("written = %d, want 1", n)
	}
	body, err := os.ReadFile(filepath.Join(dir, "bulbasaur.png"))
	if err != nil || string(body) != "png-bytes" {
		t.Errorf("sprite = %q, %v", body, err)
	}

	n, err = f.DownloadSprites(context.Background(), dir, entities[:1])
	if err != nil || n != 0 {
		t.Errorf("second run wrote %d (err %v), want 0", n, err)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = body
	return nil
}

func TestClientCache(t *testing.T) {
	srv := newFixtureServer(t)
	cache := &memCache{data: map[string][]byte{}}
	f := newTestFetcher(srv, WithCache(cache))

	first, err := f.Entity(context.Background(), 1)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	served := srv.requests.Load()

	// A new fetcher has no memoized abilities, so everything must come from the cache.
	f = newTestFetcher(srv, WithCache(cache))
	second, err := f.Entity(context.Background(), 1)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if got := srv.requests.Load(); got != served {
		t.Errorf("server saw %d more requests, want 0", got-served)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached entity differs:\n%+v\n%+v", first, second)
	}
}

func TestClientURL(t *testing.T) {
	c := NewClient("https://example.test/api/v2", discardLogger())
	tests := []struct {
		path string
		want string
	}{
		{"pokemon/1", "https://example.test/api/v2/pokemon/1"},
		{"/ability/blaze", "https://example.test/api/v2/ability/blaze"},
		{"https://other.test/x/", "https://other.test/x/"},
	}
	for _, tt := range tests {
		if got := c.URL(tt.path); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSpeciesIDFromURL(t *testing.T) {
	id, err := speciesIDFromURL("https://pokeapi.co/api/v2/pokemon-species/37/")
	if err != nil || id != 37 {
		t.Errorf("got %d, %v", id, err)
	}
	if _, err := speciesIDFromURL("https://pokeapi.co/api/v2/pokemon/37/"); !errors.Is(err, errNoSpeciesID) {
		t.Errorf("err = %v, want errNoSpeciesID", err)
	}
}

func TestGenusOverride(t *testing.T) {
	if got := genusFor("typhlosion-hisui", []string{"Volcano Pokémon"}); !reflect.DeepEqual(got, []string{"Ghost Flame Pokémon"}) {
		t.Errorf("override = %v", got)
	}
	if got := genusFor("typhlosion", []string{"Volcano Pokémon"}); !reflect.DeepEqual(got, []string{"Volcano Pokémon"}) {
		t.Errorf("no override = %v", got)
	}
}
