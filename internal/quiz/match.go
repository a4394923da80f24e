package quiz

import (
	"math"
	"strconv"
	"strings"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/names"
	"github.com/FabledTyromancer/Professorlocke/internal/units"
)

// Tolerance tunes how forgiving the matcher is.
type Tolerance struct {
	// NumericLeniency is the accepted relative error for height and weight
	// (0.15 accepts answers within 15% of the correct value).
	NumericLeniency float64
	// SimilarityThreshold is the minimum Ratio for a close match.
	SimilarityThreshold float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{NumericLeniency: 0.15, SimilarityThreshold: 0.7}
}

// Verdict is the result of grading one answer. Exact and Close are never
// both set.
type Verdict struct {
	Exact bool
	Close bool
}

// Points is the score awarded for the verdict.
func (v Verdict) Points() float64 {
	switch {
	case v.Exact:
		return 1
	case v.Close:
		return 0.5
	default:
		return 0
	}
}

func (v Verdict) String() string {
	switch {
	case v.Exact:
		return "correct"
	case v.Close:
		return "partial"
	default:
		return "incorrect"
	}
}

// genericSuffixes are dropped from the end of the expected genus.
var genericSuffixes = []string{"pokemon", "creature"}

// Check grades input against q. e is the Pokémon being quizzed; height is
// compared against its stored measurement rather than the display string.
func Check(input string, q Question, e dex.Entity, tol Tolerance) Verdict {
	if q.Kind == KindBoolean {
		return Verdict{Exact: checkBoolean(input, q.Expected)}
	}
	if q.Expected.Shape != shapeFor(q.Field) {
		return checkGeneric(input, q.Expected.String(), tol)
	}

	switch q.Field {
	case FieldType, FieldEggGroup:
		return checkSet(input, q.Expected.List, tol)
	case FieldAbility, FieldEvolution:
		return checkAnyOf(input, q.Expected.List, tol)
	case FieldHeight:
		return Verdict{Exact: checkHeight(input, e.Height, tol.NumericLeniency)}
	case FieldWeight:
		return Verdict{Exact: checkWeight(input, q.Expected.Text, tol.NumericLeniency)}
	case FieldGenus:
		return checkGenus(input, q.Expected.Text, tol)
	default:
		return checkGeneric(input, q.Expected.String(), tol)
	}
}

func checkBoolean(input string, want Expected) bool {
	got, ok := parseBool(input)
	return ok && want.Shape == ShapeBool && got == want.Bool
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	}
	return false, false
}

// checkSet requires the same members in any order. A blank answer never
// matches, even when nothing is expected.
func checkSet(input string, expected []string, tol Tolerance) Verdict {
	user := splitAnswer(input, false)
	want := lowerAll(expected, false)

	if len(user) > 0 && sameSet(user, want) {
		return Verdict{Exact: true}
	}
	return Verdict{Close: anySimilar(user, want, tol.SimilarityThreshold)}
}

// checkAnyOf accepts a single correct member.
func checkAnyOf(input string, expected []string, tol Tolerance) Verdict {
	user := splitAnswer(input, true)
	want := lowerAll(expected, true)

	for _, u := range user {
		for _, w := range want {
			if u == w {
				return Verdict{Exact: true}
			}
		}
	}
	return Verdict{Close: anySimilar(user, want, tol.SimilarityThreshold)}
}

func checkHeight(input string, decimetres int, leniency float64) bool {
	got, ok := parseHeight(input)
	if !ok {
		return false
	}
	return within(got, float64(decimetres)/10, leniency)
}

func checkWeight(input, expected string, leniency float64) bool {
	got, ok := parseLooseNumber(input)
	if !ok {
		return false
	}
	want, ok := parseLooseNumber(expected)
	if !ok {
		return false
	}
	return within(got, want, leniency)
}

func checkGenus(input, expected string, tol Tolerance) Verdict {
	user := names.Normalize(input)
	full := names.Normalize(expected)
	want := full
	for _, suffix := range genericSuffixes {
		if stem, ok := strings.CutSuffix(want, " "+suffix); ok {
			want = strings.TrimSpace(stem)
			break
		}
	}

	if user == want {
		return Verdict{Exact: true}
	}
	return Verdict{Close: Similar(user, want, tol.SimilarityThreshold) ||
		Similar(user, full, tol.SimilarityThreshold)}
}

func checkGeneric(input, expected string, tol Tolerance) Verdict {
	if strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(expected)) {
		return Verdict{Exact: true}
	}
	return Verdict{Close: Similar(input, expected, tol.SimilarityThreshold)}
}

// parseHeight reads feet'inches" when the input contains an apostrophe and
// a bare metre value otherwise. The result is in metres.
func parseHeight(input string) (float64, bool) {
	s := strings.NewReplacer("’", "'", "′", "'", "”", `"`, "″", `"`).Replace(strings.TrimSpace(input))
	if !strings.Contains(s, "'") {
		return parseLooseNumber(s)
	}

	parts := strings.Split(s, "'")
	if len(parts) != 2 {
		return 0, false
	}
	feet, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	var inches float64
	if text := strings.TrimSpace(strings.Trim(strings.TrimSpace(parts[1]), `"`)); text != "" {
		inches, err = strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
	}
	return units.FeetInchesToMeters(feet, inches), true
}

// parseLooseNumber keeps only digits and dots before parsing, so unit
// suffixes like "kg" or "lbs" are ignored.
func parseLooseNumber(s string) (float64, bool) {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func within(got, want, leniency float64) bool {
	return math.Abs(got-want) <= want*leniency
}

func splitAnswer(input string, hyphens bool) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if hyphens {
			token = strings.ReplaceAll(token, "-", " ")
		}
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

func lowerAll(items []string, hyphens bool) []string {
	out := make([]string, len(items))
	for i, s := range items {
		s = strings.ToLower(strings.TrimSpace(s))
		if hyphens {
			s = strings.ReplaceAll(s, "-", " ")
		}
		out[i] = s
	}
	return out
}

func sameSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, s := range a {
		as[s] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, s := range b {
		bs[s] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if _, ok := bs[s]; !ok {
			return false
		}
	}
	return true
}

func anySimilar(user, want []string, threshold float64) bool {
	for _, u := range user {
		for _, w := range want {
			if Similar(u, w, threshold) {
				return true
			}
		}
	}
	return false
}
