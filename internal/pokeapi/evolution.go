package pokeapi

import (
	"fmt"
	"strings"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
)

var physicalStats = map[int]string{
	-1: "higher Defense than Attack",
	0:  "equal Attack and Defense",
	1:  "higher Attack than Defense",
}

// chainSpecies lists every species in the chain, depth first.
func chainSpecies(link chainLink) []string {
	out := []string{link.Species.Name}
	for _, next := range link.EvolvesTo {
		out = append(out, chainSpecies(next)...)
	}
	return out
}

// chainTriggers describes every evolution in the chain, one trigger per
// evolution detail.
func chainTriggers(link chainLink) []dex.EvolutionTrigger {
	var out []dex.EvolutionTrigger
	for _, next := range link.EvolvesTo {
		for _, d := range next.EvolutionDetails {
			out = append(out, dex.EvolutionTrigger{
				From:      nameOr(link.Species.Name),
				To:        nameOr(next.Species.Name),
				Condition: describe(d),
			})
		}
		out = append(out, chainTriggers(next)...)
	}
	return out
}

// describe renders one evolution detail as readable text, for example
// "level-up at level 16" or "use a fire stone".
func describe(d evolutionDetail) string {
	var b strings.Builder
	b.WriteString(nameOr(d.Trigger.Name))
	if positive(d.MinLevel) {
		fmt.Fprintf(&b, " at level %d", *d.MinLevel)
	}
	if d.Item != nil {
		b.Reset()
		b.WriteString("use a " + spaced(d.Item.Name))
	}
	if d.Gender != nil {
		gender := "male"
		if *d.Gender == 1 {
			gender = "female"
		}
		fmt.Fprintf(&b, " (%s only)", gender)
	}
	if d.HeldItem != nil {
		b.WriteString(" while holding " + spaced(d.HeldItem.Name))
	}
	if d.KnownMove != nil {
		b.WriteString(" knowing " + d.KnownMove.Name)
	}
	if d.KnownMoveType != nil {
		fmt.Fprintf(&b, " knowing a %s move", d.KnownMoveType.Name)
	}
	if d.Location != nil {
		b.WriteString(" at " + spaced(d.Location.Name))
	}
	if positive(d.MinAffection) {
		b.WriteString(" with high affection")
	}
	if positive(d.MinBeauty) {
		b.WriteString(" with high beauty")
	}
	if positive(d.MinHappiness) {
		b.WriteString(" with high happiness")
	}
	if d.NeedsOverworldRain {
		b.WriteString(" while raining")
	}
	if d.PartySpecies != nil {
		fmt.Fprintf(&b, " with %s in party", d.PartySpecies.Name)
	}
	if d.PartyType != nil {
		fmt.Fprintf(&b, " with a %s type in party", d.PartyType.Name)
	}
	if d.RelativePhysicalStats != nil {
		if s, ok := physicalStats[*d.RelativePhysicalStats]; ok {
			b.WriteString(" with " + s)
		}
	}
	if d.TimeOfDay != "" {
		b.WriteString(" during " + d.TimeOfDay)
	}
	if d.TradeSpecies != nil {
		b.WriteString(" when traded for " + d.TradeSpecies.Name)
	}
	if d.TurnUpsideDown {
		b.WriteString(" while holding console upside down")
	}
	return b.String()
}

func positive(p *int) bool { return p != nil && *p > 0 }

func spaced(s string) string { return strings.ReplaceAll(s, "-", " ") }

func nameOr(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
