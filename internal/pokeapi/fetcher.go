package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
)

const noEffect = "No effect description available."

var speciesIDPattern = regexp.MustCompile(`/pokemon-species/(\d+)/`)

// Fetcher turns PokeAPI resources into dex entities.
type Fetcher struct {
	client      *Client
	logger      *slog.Logger
	concurrency int
	delay       time.Duration

	mu      sync.Mutex
	effects map[string]string
}

func NewFetcher(client *Client, logger *slog.Logger, concurrency int, delay time.Duration) *Fetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fetcher{
		client:      client,
		logger:      logger,
		concurrency: concurrency,
		delay:       delay,
		effects:     make(map[string]string),
	}
}

// Entity fetches pokemon/{id} and everything it references. Regional forms
// resolve their species through the species URL rather than the id.
func (f *Fetcher) Entity(ctx context.Context, id int) (dex.Entity, error) {
	var p pokemonResponse
	if err := f.client.getJSON(ctx, "pokemon/"+strconv.Itoa(id), &p); err != nil {
		return dex.Entity{}, fmt.Errorf("fetching pokemon %d: %w", id, err)
	}

	speciesID, err := speciesIDFromURL(p.Species.URL)
	if err != nil {
		return dex.Entity{}, fmt.Errorf("pokemon %d: %w", id, err)
	}
	var s speciesResponse
	if err := f.client.getJSON(ctx, "pokemon-species/"+strconv.Itoa(speciesID), &s); err != nil {
		return dex.Entity{}, fmt.Errorf("fetching species %d: %w", speciesID, err)
	}

	e := dex.Entity{
		ID:             id,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		Types:          []string{},
		Abilities:      []dex.Ability{},
		HeldItems:      []string{},
		EggGroups:      []string{},
		EvolutionChain: []string{},
		Evolutions:     []dex.EvolutionTrigger{},
	}
	if p.Sprites.FrontDefault != nil {
		e.SpriteURL = *p.Sprites.FrontDefault
	}
	for _, t := range p.Types {
		e.Types = append(e.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		e.Abilities = append(e.Abilities, dex.Ability{
			Name:        a.Ability.Name,
			ShortEffect: f.abilityEffect(ctx, a.Ability.Name),
		})
	}
	for _, h := range p.HeldItems {
		e.HeldItems = append(e.HeldItems, h.Item.Name)
	}

	var genus []string
	for _, g := range s.Genera {
		if g.Language.Name == english {
			genus = append(genus, g.Genus)
		}
	}
	e.Genus = genusFor(p.Name, genus)
	if e.Genus == nil {
		e.Genus = []string{}
	}
	for _, g := range s.EggGroups {
		e.EggGroups = append(e.EggGroups, g.Name)
	}
	e.FlavorText = flavorTexts(s)

	if s.EvolutionChain != nil && s.EvolutionChain.URL != "" {
		var chain evolutionChainResponse
		if err := f.client.getJSON(ctx, s.EvolutionChain.URL, &chain); err != nil {
			return dex.Entity{}, fmt.Errorf("fetching evolution chain for %s: %w", p.Name, err)
		}
		e.EvolutionChain = chainSpecies(chain.Chain)
		if triggers := chainTriggers(chain.Chain); triggers != nil {
			e.Evolutions = triggers
		}
	}
	return e, nil
}

// FetchAll fetches every id with at most concurrency requests in flight and
// one new entity started per delay. Entities that fail are logged and left
// out. The result is ordered by id.
func (f *Fetcher) FetchAll(ctx context.Context, ids []int, progress func(done, total int)) ([]dex.Entity, error) {
	var (
		mu       sync.Mutex
		entities = make([]dex.Entity, 0, len(ids))
		done     int
	)

	var tick <-chan time.Time
	if f.delay > 0 {
		ticker := time.NewTicker(f.delay)
		defer ticker.Stop()
		tick = ticker.C
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, id := range ids {
		if tick != nil && i > 0 {
			select {
			case <-gctx.Done():
			case <-tick:
			}
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			e, err := f.Entity(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			done++
			if progress != nil {
				progress(done, len(ids))
			}
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				f.logger.Warn("skipping pokemon", "id", id, "error", err)
				return nil
			}
			entities = append(entities, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching pokemon: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetching pokemon: %w", err)
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities, nil
}

// EggGroups returns the English label of every egg group used by entities.
// Groups without an English name, or that fail to load, map to their key.
func (f *Fetcher) EggGroups(ctx context.Context, entities []dex.Entity) (dex.GroupTable, error) {
	table := dex.GroupTable{}
	for _, e := range entities {
		for _, key := range e.EggGroups {
			table[key] = key
		}
	}

	for key := range table {
		var resp eggGroupResponse
		if err := f.client.getJSON(ctx, "egg-group/"+key, &resp); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			f.logger.Warn("egg group name unavailable", "group", key, "error", err)
			continue
		}
		for _, n := range resp.Names {
			if n.Language.Name == english && n.Name != "" {
				table[key] = n.Name
				break
			}
		}
	}
	return table, nil
}

// DownloadSprites saves each entity's sprite as dir/<name><ext>. Files that
// already exist are kept. It returns the number of sprites written.
func (f *Fetcher) DownloadSprites(ctx context.Context, dir string, entities []dex.Entity) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating sprite directory: %w", err)
	}

	var written int
	for _, e := range entities {
		if e.SpriteURL == "" || e.Name == "" {
			continue
		}
		ext := path.Ext(e.SpriteURL)
		if ext == "" {
			ext = ".png"
		}
		file := filepath.Join(dir, e.Name+ext)
		if _, err := os.Stat(file); err == nil {
			continue
		}

		body, err := f.client.get(ctx, e.SpriteURL)
		if err != nil {
			if ctx.Err() != nil {
				return written, ctx.Err()
			}
			f.logger.Warn("sprite download failed", "pokemon", e.Name, "error", err)
			continue
		}
		if err := os.WriteFile(file, body, 0o644); err != nil {
			return written, fmt.Errorf("writing sprite %s: %w", file, err)
		}
		written++

		if f.delay > 0 {
			select {
			case <-ctx.Done():
				return written, ctx.Err()
			case <-time.After(f.delay):
			}
		}
	}
	return written, nil
}

func (f *Fetcher) abilityEffect(ctx context.Context, name string) string {
	f.mu.Lock()
	effect, ok := f.effects[name]
	f.mu.Unlock()
	if ok {
		return effect
	}

	effect = noEffect
	var resp abilityResponse
	if err := f.client.getJSON(ctx, "ability/"+name, &resp); err != nil {
		f.logger.Warn("ability effect unavailable", "ability", name, "error", err)
		return effect
	}
	for _, entry := range resp.EffectEntries {
		if entry.Language.Name == english {
			if entry.ShortEffect != "" {
				effect = entry.ShortEffect
			}
			break
		}
	}

	f.mu.Lock()
	f.effects[name] = effect
	f.mu.Unlock()
	return effect
}

// flavorTexts keeps the English entries once each, in game order, with the
// form feeds and line breaks of the game text collapsed to spaces.
func flavorTexts(s speciesResponse) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, f := range s.FlavorTextEntries {
		if f.Language.Name != english {
			continue
		}
		text := strings.Join(strings.Fields(f.FlavorText), " ")
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return out
}

var errNoSpeciesID = errors.New("species url has no id")

func speciesIDFromURL(url string) (int, error) {
	m := speciesIDPattern.FindStringSubmatch(url)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", errNoSpeciesID, url)
	}
	return strconv.Atoi(m[1])
}
