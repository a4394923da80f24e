// Package dex holds the Pokédex records the quiz is built from and loads
// them from the on-disk cache produced by the fetcher.
package dex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entity is one Pokémon's cached reference data.
type Entity struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Genus          []string           `json:"genus"`
	FlavorText     []string           `json:"flavor_text"`
	Types          []string           `json:"types"`
	Abilities      []Ability          `json:"abilities"`
	Height         int                `json:"height"` // decimetres
	Weight         int                `json:"weight"` // hectograms
	EggGroups      []string           `json:"egg_groups"`
	HeldItems      []string           `json:"held_items"`
	EvolutionChain []string           `json:"evolution_chain"`
	Evolutions     []EvolutionTrigger `json:"evolution_chain_details"`
	SpriteURL      string             `json:"sprite_url"`
}

type Ability struct {
	Name        string `json:"name"`
	ShortEffect string `json:"short_effect"`
}

// EvolutionTrigger describes how one species evolves into another. In the
// cache file it is stored as "from to to: condition".
type EvolutionTrigger struct {
	From      string
	To        string
	Condition string
}

// ParseEvolutionTrigger splits "from to to: condition". The text before the
// first ": " is the transition label and everything after it is the
// human-readable condition.
func ParseEvolutionTrigger(s string) EvolutionTrigger {
	label, condition, _ := strings.Cut(s, ": ")
	from, to, _ := strings.Cut(label, " to ")
	return EvolutionTrigger{
		From:      strings.TrimSpace(from),
		To:        strings.TrimSpace(to),
		Condition: condition,
	}
}

// Label returns "from to to".
func (t EvolutionTrigger) Label() string {
	if t.To == "" {
		return t.From
	}
	return t.From + " to " + t.To
}

func (t EvolutionTrigger) String() string {
	if t.Condition == "" {
		return t.Label()
	}
	return t.Label() + ": " + t.Condition
}

func (t EvolutionTrigger) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EvolutionTrigger) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("evolution trigger: %w", err)
	}
	*t = ParseEvolutionTrigger(s)
	return nil
}

// normalize replaces absent lists with empty ones and clamps negative
// measurements so that consumers never see nil or impossible values.
func (e *Entity) normalize() {
	e.Name = strings.ToLower(strings.TrimSpace(e.Name))
	if e.Genus == nil {
		e.Genus = []string{}
	}
	if e.FlavorText == nil {
		e.FlavorText = []string{}
	}
	if e.Types == nil {
		e.Types = []string{}
	}
	if e.Abilities == nil {
		e.Abilities = []Ability{}
	}
	if e.EggGroups == nil {
		e.EggGroups = []string{}
	}
	if e.HeldItems == nil {
		e.HeldItems = []string{}
	}
	if e.EvolutionChain == nil {
		e.EvolutionChain = []string{}
	}
	if e.Evolutions == nil {
		e.Evolutions = []EvolutionTrigger{}
	}
	if e.Height < 0 {
		e.Height = 0
	}
	if e.Weight < 0 {
		e.Weight = 0
	}
}

// GroupTable maps egg group keys ("monster") to English labels.
type GroupTable map[string]string

// Label returns the English label for key, or key itself when untranslated.
func (g GroupTable) Label(key string) string {
	if label, ok := g[key]; ok && label != "" {
		return label
	}
	return key
}
