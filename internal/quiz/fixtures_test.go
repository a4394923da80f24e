package quiz

import (
	"testing"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
)

// scriptedRand replays fixed values so tests can pick each branch of the
// flavor-text question. Exhausted scripts return zero.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func bulbasaur() dex.Entity {
	return dex.Entity{
		ID:        1,
		Name:      "bulbasaur",
		Genus:     []string{"Seed Pokémon"},
		Types:     []string{"grass", "poison"},
		Height:    7,
		Weight:    69,
		EggGroups: []string{"monster", "plant"},
		Abilities: []dex.Ability{
			{Name: "overgrow", ShortEffect: "Strengthens grass moves to inflict 1.5× damage at 1/3 max HP or less."},
			{Name: "chlorophyll", ShortEffect: "Doubles Speed during strong sunlight."},
		},
		FlavorText: []string{
			"A strange seed was planted on its back at birth.",
			"BULBASAUR can be seen napping in bright sunlight.",
		},
		Evolutions: []dex.EvolutionTrigger{
			dex.ParseEvolutionTrigger("bulbasaur to ivysaur: level-up at level 16"),
			dex.ParseEvolutionTrigger("ivysaur to venusaur: level-up at level 32"),
		},
	}
}

func pikachu() dex.Entity {
	return dex.Entity{
		ID:         25,
		Name:       "pikachu",
		Genus:      []string{"Mouse Pokémon"},
		Types:      []string{"electric"},
		Height:     4,
		Weight:     60,
		FlavorText: []string{"PIKACHU stores electricity in its cheeks."},
	}
}

func caterpie() dex.Entity {
	return dex.Entity{ID: 10, Name: "caterpie", Types: []string{"bug"}}
}

func vulpixAlola() dex.Entity {
	return dex.Entity{
		ID:    10103,
		Name:  "vulpix-alola",
		Genus: []string{"Fox Pokémon"},
		Types: []string{"ice"},
		Evolutions: []dex.EvolutionTrigger{
			dex.ParseEvolutionTrigger("vulpix to ninetales: use a ice stone"),
		},
	}
}

var testGroups = dex.GroupTable{"monster": "Monster", "plant": "Grass"}

func testPool(t *testing.T) *dex.Pool {
	t.Helper()
	pool, err := dex.NewPool([]dex.Entity{bulbasaur(), pikachu(), caterpie(), vulpixAlola()})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return pool
}
