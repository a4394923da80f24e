package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/names"
	"github.com/FabledTyromancer/Professorlocke/internal/units"
)

// ownEntryChance is the probability that the flavor-text question shows
// one of the quizzed Pokémon's own entries.
const ownEntryChance = 0.65

// Randomizer is the random source used for flavor-text selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
}

// NewRandomizer returns a randomly seeded source.
func NewRandomizer() Randomizer {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate builds the ordered question list for e. pool supplies decoy
// flavor texts and may be nil. Inputs are never modified.
func Generate(e dex.Entity, groups dex.GroupTable, pool *dex.Pool, sys units.System, rng Randomizer) []Question {
	display := names.Display(e.Name)

	genus := "unknown"
	if len(e.Genus) > 0 {
		genus = e.Genus[0]
	}

	eggGroups := make([]string, len(e.EggGroups))
	for i, key := range e.EggGroups {
		eggGroups[i] = groups.Label(key)
	}

	abilities := make([]string, len(e.Abilities))
	effects := make([]string, len(e.Abilities))
	for i, a := range e.Abilities {
		abilities[i] = a.Name
		effects[i] = a.ShortEffect
	}

	questions := []Question{
		{
			Kind:     KindFreeText,
			Field:    FieldGenus,
			Prompt:   fmt.Sprintf("What is %s's genus?", display),
			Expected: TextAnswer(genus),
		},
		{
			Kind:     KindFreeText,
			Field:    FieldType,
			Prompt:   fmt.Sprintf("What type(s) is %s?", display),
			Expected: ListAnswer(e.Types),
		},
		heightQuestion(e, display, sys),
		weightQuestion(e, display, sys),
		{
			Kind:     KindFreeText,
			Field:    FieldEggGroup,
			Prompt:   fmt.Sprintf("What egg group(s) does %s belong to?", display),
			Expected: ListAnswer(eggGroups),
		},
		{
			Kind:     KindFreeText,
			Field:    FieldAbility,
			Prompt:   fmt.Sprintf("What ability/abilities does %s have?", display),
			Expected: ListAnswer(abilities),
			Notes:    effects,
		},
	}

	if methods := evolutionMethods(e); len(methods) > 0 {
		questions = append(questions, Question{
			Kind:     KindFreeText,
			Field:    FieldEvolution,
			Prompt:   fmt.Sprintf("How does %s evolve (any method)?", display),
			Expected: ListAnswer(methods),
		})
	}

	if q, ok := flavorQuestion(e, pool, display, rng); ok {
		questions = append(questions, q)
	}
	return questions
}

// Reformat returns a copy of questions with the height and weight answers
// rendered in sys. Every other question is left untouched.
func Reformat(questions []Question, e dex.Entity, sys units.System) []Question {
	display := names.Display(e.Name)
	out := make([]Question, len(questions))
	for i, q := range questions {
		switch q.Field {
		case FieldHeight:
			out[i] = heightQuestion(e, display, sys)
		case FieldWeight:
			out[i] = weightQuestion(e, display, sys)
		default:
			out[i] = q
		}
	}
	return out
}

func heightQuestion(e dex.Entity, display string, sys units.System) Question {
	return Question{
		Kind:     KindFreeText,
		Field:    FieldHeight,
		Prompt:   fmt.Sprintf("What is %s's height?", display),
		Expected: TextAnswer(units.FormatHeight(e.Height, sys)),
	}
}

func weightQuestion(e dex.Entity, display string, sys units.System) Question {
	return Question{
		Kind:     KindFreeText,
		Field:    FieldWeight,
		Prompt:   fmt.Sprintf("What is %s's weight?", display),
		Expected: TextAnswer(units.FormatWeight(e.Weight, sys)),
	}
}

// evolutionMethods lists the conditions of every trigger that starts from
// e, ignoring the regional suffix of e's name.
func evolutionMethods(e dex.Entity) []string {
	base := names.BaseName(e.Name)
	var methods []string
	for _, t := range e.Evolutions {
		if t.Condition != "" && strings.EqualFold(t.From, base) {
			methods = append(methods, t.Condition)
		}
	}
	return methods
}

func flavorQuestion(e dex.Entity, pool *dex.Pool, display string, rng Randomizer) (Question, bool) {
	if len(e.FlavorText) == 0 {
		return Question{}, false
	}

	var (
		text  string
		truth bool
		found bool
	)
	if rng.Float64() >= ownEntryChance {
		if decoy, ok := pickDecoy(e, pool, rng); ok && len(decoy.FlavorText) > 0 {
			entry := decoy.FlavorText[rng.IntN(len(decoy.FlavorText))]
			text = names.Redact(entry, e.Name, decoy.Name)
			found = true
		}
	}
	if !found {
		entry := e.FlavorText[rng.IntN(len(e.FlavorText))]
		text = names.Redact(entry, e.Name)
		truth = true
	}

	return Question{
		Kind:     KindBoolean,
		Field:    FieldFlavorText,
		Prompt:   fmt.Sprintf("Is this a Pokédex entry for %s? %s", display, text),
		Expected: BoolAnswer(truth),
	}, true
}

// pickDecoy chooses uniformly among pool entries other than e.
func pickDecoy(e dex.Entity, pool *dex.Pool, rng Randomizer) (dex.Entity, bool) {
	if pool == nil {
		return dex.Entity{}, false
	}
	others := make([]int, 0, pool.Len())
	for i := 0; i < pool.Len(); i++ {
		if pool.At(i).Name != e.Name {
			others = append(others, i)
		}
	}
	if len(others) == 0 {
		return dex.Entity{}, false
	}
	return pool.At(others[rng.IntN(len(others))]), true
}
