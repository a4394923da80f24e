// Package names canonicalizes Pokémon names and free-text answers so that
// user input can be compared against cached data regardless of accents,
// casing, or regional form notation.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Regions lists the regional form suffixes used in canonical names
// ("vulpix-alola").
var Regions = []string{"alola", "galar", "hisui", "paldea"}

var (
	displayRegion = regexp.MustCompile(`^(.+?)\s*\(\s*([^()]+?)\s*\)$`)
	titleCaser    = cases.Title(language.English)
)

// Normalize case-folds s, strips diacritics and trims surrounding space.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// SplitRegion separates a canonical name into its base and regional suffix.
// region is empty when the name has no known suffix.
func SplitRegion(name string) (base, region string) {
	lower := strings.ToLower(name)
	for _, r := range Regions {
		if b, ok := strings.CutSuffix(lower, "-"+r); ok && b != "" {
			return b, r
		}
	}
	return lower, ""
}

// BaseName returns name without its regional suffix.
func BaseName(name string) string {
	base, _ := SplitRegion(name)
	return base
}

// Canonical turns free-form input ("Mr. Mime", "Vulpix (Alola)",
// "Farfetch’d") into the lowercase hyphenated form used by the cache.
func Canonical(input string) string {
	s := Normalize(input)
	if m := displayRegion.FindStringSubmatch(s); m != nil {
		s = m[1] + "-" + m[2]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '.', '\'', '’', ':':
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// Display formats a canonical name for the user: "vulpix-alola" becomes
// "Vulpix (Alola)" and everything else is title cased.
func Display(name string) string {
	base, region := SplitRegion(name)
	if region != "" {
		return titleCaser.String(base) + " (" + titleCaser.String(region) + ")"
	}
	return titleCaser.String(strings.ToLower(name))
}
