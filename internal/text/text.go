// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package text normalizes free text into comparable terms. Every other
// stage compares résumés and listings through these functions, so the
// output must depend on the input alone.
package text

import (
	"strings"
	"unicode"
)

// MinTermLength is the shortest term, in runes, that survives tokenization.
const MinTermLength = 3

// Tokens returns the normalized terms of s in order of appearance.
// Text is lower-cased and split on every rune that is not a letter, digit,
// hyphen or underscore. Leading and trailing hyphens and underscores are
// trimmed from each token; internal ones are kept ("front-end", "ms_sql").
// Tokens shorter than MinTermLength and stop words are dropped.
func Tokens(s string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := strings.Trim(word.String(), "-_")
		word.Reset()
		if keep(w) {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(s) {
		if isWordRune(r) {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// Terms returns the set of normalized terms of s.
func Terms(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokens(s) {
		set[t] = struct{}{}
	}
	return set
}

// ContainsPhrase reports whether phrase, normalized like any other text,
// occurs as a contiguous run in tokens. A phrase that normalizes to
// nothing never matches.
func ContainsPhrase(tokens []string, phrase string) bool {
	want := Tokens(phrase)
	if len(want) == 0 || len(want) > len(tokens) {
		return false
	}
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j, w := range want {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// FirstPhrase returns the first of phrases found in tokens.
func FirstPhrase(tokens []string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if ContainsPhrase(tokens, p) {
			return p, true
		}
	}
	return "", false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

func keep(w string) bool {
	if len([]rune(w)) < MinTermLength {
		return false
	}
	return !IsStopWord(w)
}
