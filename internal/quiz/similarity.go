package quiz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// levelPattern finds "level 36" and "level-up at level 36".
var levelPattern = regexp.MustCompile(`(?i)\blevel[\s-]*(?:up\s*at\s*(?:level\s*)?)?(\d+)`)

// Similar reports whether two answers are close enough for partial credit.
// When both mention a level, they are similar exactly when the levels are
// at most one apart and the text itself is not compared.
func Similar(a, b string, threshold float64) bool {
	if la, ok := levelOf(a); ok {
		if lb, ok := levelOf(b); ok {
			d := la - lb
			return d >= -1 && d <= 1
		}
	}
	return Ratio(a, b) >= threshold
}

// Ratio is the difflib similarity of the case-folded, trimmed strings:
// twice the number of matched characters over the total length.
func Ratio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

func levelOf(s string) (int, bool) {
	m := levelPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
