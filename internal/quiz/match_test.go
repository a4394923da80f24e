package quiz

import (
	"testing"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
)

func question(f Field, want Expected) Question {
	return Question{Kind: KindFreeText, Field: f, Expected: want}
}

var (
	correct   = Verdict{Exact: true}
	partial   = Verdict{Close: true}
	incorrect = Verdict{}
)

func TestCheck(t *testing.T) {
	e := bulbasaur()
	tests := []struct {
		name  string
		q     Question
		input string
		want  Verdict
	}{
		{"genus suffix dropped", question(FieldGenus, TextAnswer("Seed Pokémon")), "seed", correct},
		{"genus case and accents", question(FieldGenus, TextAnswer("Seed Pokémon")), " SÉED ", correct},
		{"genus typo", question(FieldGenus, TextAnswer("Seed Pokémon")), "sead", partial},
		{"genus full name", question(FieldGenus, TextAnswer("Seed Pokémon")), "seed pokemon", partial},
		{"genus wrong", question(FieldGenus, TextAnswer("Seed Pokémon")), "dragon", incorrect},

		{"types in order", question(FieldType, ListAnswer([]string{"grass", "poison"})), "grass, poison", correct},
		{"types reversed", question(FieldType, ListAnswer([]string{"grass", "poison"})), "POISON ,Grass", correct},
		{"types trailing comma", question(FieldType, ListAnswer([]string{"grass", "poison"})), "grass, poison,", correct},
		{"types missing one", question(FieldType, ListAnswer([]string{"grass", "poison"})), "grass", partial},
		{"types extra one", question(FieldType, ListAnswer([]string{"grass", "poison"})), "grass, poison, fire", partial},
		{"types wrong", question(FieldType, ListAnswer([]string{"grass", "poison"})), "water", incorrect},
		{"egg groups", question(FieldEggGroup, ListAnswer([]string{"Monster", "Grass"})), "grass, monster", correct},
		{"no egg groups, blank answer", question(FieldEggGroup, ListAnswer([]string{})), "", incorrect},
		{"no egg groups, only commas", question(FieldEggGroup, ListAnswer([]string{})), ",", incorrect},
		{"no types, spaces and commas", question(FieldType, ListAnswer(nil)), " , ,", incorrect},

		{"ability any one", question(FieldAbility, ListAnswer([]string{"overgrow", "chlorophyll"})), "Chlorophyll", correct},
		{"ability one of several", question(FieldAbility, ListAnswer([]string{"overgrow", "chlorophyll"})), "levitate, overgrow", correct},
		{"ability typo", question(FieldAbility, ListAnswer([]string{"overgrow", "chlorophyll"})), "clorophyll", partial},
		{"ability hyphen", question(FieldAbility, ListAnswer([]string{"solar-power"})), "Solar Power", correct},
		{"ability wrong", question(FieldAbility, ListAnswer([]string{"overgrow"})), "levitate", incorrect},

		{"evolution exact", question(FieldEvolution, ListAnswer([]string{"level-up at level 16"})), "level-up at level 16", correct},
		{"evolution without hyphen", question(FieldEvolution, ListAnswer([]string{"level-up at level 16"})), "level up at level 16", correct},
		{"evolution level off by one", question(FieldEvolution, ListAnswer([]string{"level-up at level 16"})), "level 17", partial},
		{"evolution level far off", question(FieldEvolution, ListAnswer([]string{"level-up at level 16"})), "level 19", incorrect},
		{"evolution other method", question(FieldEvolution, ListAnswer([]string{"level-up at level 16"})), "use a fire stone", incorrect},

		{"height imperial exact", question(FieldHeight, TextAnswer("0.7m")), `2'3"`, correct},
		{"height imperial no inches", question(FieldHeight, TextAnswer("0.7m")), `3'0"`, incorrect},
		{"height curly quotes", question(FieldHeight, TextAnswer("0.7m")), "2’4”", correct},
		{"height metric", question(FieldHeight, TextAnswer("0.7m")), "0.7", correct},
		{"height metric suffix", question(FieldHeight, TextAnswer("0.7m")), "0.7m", correct},
		{"height garbage", question(FieldHeight, TextAnswer("0.7m")), "tall", incorrect},
		{"height two apostrophes", question(FieldHeight, TextAnswer("0.7m")), `1'2'3"`, incorrect},

		{"weight lenient", question(FieldWeight, TextAnswer("70.0kg")), "65", correct},
		{"weight with unit", question(FieldWeight, TextAnswer("70.0kg")), "70kg", correct},
		{"weight too low", question(FieldWeight, TextAnswer("70.0kg")), "50", incorrect},
		{"weight imperial", question(FieldWeight, TextAnswer("15.2lbs")), "15 lbs", correct},
		{"weight garbage", question(FieldWeight, TextAnswer("70.0kg")), "heavy", incorrect},

		{"generic", question(FieldGeneric, TextAnswer("Kanto")), " kanto ", correct},
		{"generic typo", question(FieldGeneric, TextAnswer("Kanto")), "kantoo", partial},
		{"shape mismatch falls back", question(FieldType, TextAnswer("grass")), "Grass", correct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.input, tt.q, e, DefaultTolerance())
			if got != tt.want {
				t.Errorf("Check(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if got.Exact && got.Close {
				t.Error("verdict is both exact and close")
			}
		})
	}
}

func TestCheckBoolean(t *testing.T) {
	yes := Question{Kind: KindBoolean, Field: FieldFlavorText, Expected: BoolAnswer(true)}
	no := Question{Kind: KindBoolean, Field: FieldFlavorText, Expected: BoolAnswer(false)}

	tests := []struct {
		q     Question
		input string
		want  Verdict
	}{
		{yes, "true", correct},
		{yes, "Y", correct},
		{yes, "1", correct},
		{yes, "no", incorrect},
		{no, "False", correct},
		{no, "n", correct},
		{no, "yes", incorrect},
		{yes, "maybe", incorrect},
		{no, "", incorrect},
	}
	for _, tt := range tests {
		if got := Check(tt.input, tt.q, dex.Entity{}, DefaultTolerance()); got != tt.want {
			t.Errorf("Check(%q, %v) = %s, want %s", tt.input, tt.q.Expected.Bool, got, tt.want)
		}
	}
}

func TestCheckSetPermutations(t *testing.T) {
	q := question(FieldType, ListAnswer([]string{"Fire", "Flying", "Dragon"}))
	inputs := []string{
		"fire, flying, dragon",
		"fire, dragon, flying",
		"flying, fire, dragon",
		"flying, dragon, fire",
		"dragon, fire, flying",
		"dragon, flying, fire",
	}
	for _, in := range inputs {
		if got := Check(in, q, dex.Entity{}, DefaultTolerance()); got != correct {
			t.Errorf("Check(%q) = %s, want correct", in, got)
		}
	}
}

func TestCheckStricterTolerance(t *testing.T) {
	tol := Tolerance{NumericLeniency: 0.01, SimilarityThreshold: 0.95}
	if got := Check("65", question(FieldWeight, TextAnswer("70.0kg")), dex.Entity{}, tol); got != incorrect {
		t.Errorf("weight with 1%% leniency = %s, want incorrect", got)
	}
	if got := Check("sead", question(FieldGenus, TextAnswer("Seed Pokémon")), dex.Entity{}, tol); got != incorrect {
		t.Errorf("genus with 0.95 threshold = %s, want incorrect", got)
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		v      Verdict
		points float64
		str    string
	}{
		{correct, 1, "correct"},
		{partial, 0.5, "partial"},
		{incorrect, 0, "incorrect"},
	}
	for _, tt := range tests {
		if got := tt.v.Points(); got != tt.points {
			t.Errorf("%s.Points() = %v, want %v", tt.str, got, tt.points)
		}
		if got := tt.v.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestExpectedString(t *testing.T) {
	tests := []struct {
		e    Expected
		want string
	}{
		{TextAnswer("0.7m"), "0.7m"},
		{ListAnswer([]string{"grass", "poison"}), "grass, poison"},
		{BoolAnswer(true), "True"},
		{BoolAnswer(false), "False"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
