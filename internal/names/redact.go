package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder replaces redacted names in flavor text.
const Placeholder = "***"

// Redact replaces every capitalized word in text that names one of the
// given Pokémon (or its base form without a regional suffix) with
// Placeholder. Punctuation around the word and possessive suffixes are
// kept. Whitespace in text is collapsed to single spaces.
func Redact(text string, pokemon ...string) string {
	forms := make(map[string]struct{}, len(pokemon)*2)
	for _, p := range pokemon {
		c := Canonical(p)
		if c == "" {
			continue
		}
		forms[c] = struct{}{}
		forms[BaseName(c)] = struct{}{}
	}

	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		pre, core, post := splitWord(words[i])
		if !startsUpper(core) {
			out = append(out, words[i])
			continue
		}

		// Two-word names such as "MR. MIME" are stored as "mr-mime".
		if i+1 < len(words) {
			_, next, nextPost := splitWord(words[i+1])
			if next != "" && matches(forms, core+" "+next) {
				out = append(out, pre+Placeholder+nextPost)
				i++
				continue
			}
		}

		if matches(forms, core) {
			out = append(out, pre+Placeholder+post)
			continue
		}
		if stem, ok := cutPossessive(core); ok && matches(forms, stem) {
			out = append(out, pre+Placeholder+core[len(stem):]+post)
			continue
		}
		out = append(out, words[i])
	}
	return strings.Join(out, " ")
}

func matches(forms map[string]struct{}, word string) bool {
	_, ok := forms[Canonical(word)]
	return ok
}

// splitWord separates leading and trailing punctuation from a word.
func splitWord(w string) (pre, core, post string) {
	isWordRune := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	start := strings.IndexFunc(w, isWordRune)
	if start < 0 {
		return w, "", ""
	}
	end := strings.LastIndexFunc(w, isWordRune)
	_, size := utf8.DecodeRuneInString(w[end:])
	return w[:start], w[start : end+size], w[end+size:]
}

func cutPossessive(core string) (string, bool) {
	for _, suffix := range []string{"'s", "’s", "'S", "’S"} {
		if stem, ok := strings.CutSuffix(core, suffix); ok && stem != "" {
			return stem, true
		}
	}
	return "", false
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
