package dex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FabledTyromancer/Professorlocke/internal/names"
)

var (
	ErrNotFound      = errors.New("pokemon not found")
	ErrDuplicateName = errors.New("duplicate pokemon name")
)

// Pool is the read-only, ordered collection of cached Pokémon.
type Pool struct {
	entities []Entity
	byName   map[string]int
}

// NewPool copies entities into a pool, filling absent lists with empty ones.
// Names must be unique.
func NewPool(entities []Entity) (*Pool, error) {
	p := &Pool{
		entities: make([]Entity, 0, len(entities)),
		byName:   make(map[string]int, len(entities)),
	}
	for _, e := range entities {
		e.normalize()
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: missing name", e.ID)
		}
		if _, ok := p.byName[e.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, e.Name)
		}
		p.byName[e.Name] = len(p.entities)
		p.entities = append(p.entities, e)
	}
	return p, nil
}

func (p *Pool) Len() int { return len(p.entities) }

// At returns the entity at position i in pool order.
func (p *Pool) At(i int) Entity { return p.entities[i] }

// ByName looks up an entity by its exact canonical name.
func (p *Pool) ByName(name string) (Entity, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Entity{}, false
	}
	return p.entities[i], true
}

// Resolve finds the entity a user meant. The input is canonicalized first
// ("Vulpix (Alola)" → "vulpix-alola"); when that does not match, the first
// entity in pool order whose name is the input's base name or starts with
// "base-" is returned.
func (p *Pool) Resolve(input string) (Entity, error) {
	name := names.Canonical(input)
	if name == "" {
		return Entity{}, ErrNotFound
	}
	if e, ok := p.ByName(name); ok {
		return e, nil
	}

	base := names.BaseName(name)
	for _, e := range p.entities {
		if e.Name == base || strings.HasPrefix(e.Name, base+"-") {
			return e, nil
		}
	}
	return Entity{}, fmt.Errorf("%w: %s", ErrNotFound, input)
}

// Names returns every canonical name in pool order.
func (p *Pool) Names() []string {
	out := make([]string, len(p.entities))
	for i, e := range p.entities {
		out[i] = e.Name
	}
	return out
}
