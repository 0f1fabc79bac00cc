// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile splits a résumé into topical profiles and picks, per
// listing, the profile that matches it best. A résumé spanning unrelated
// fields (bar work and software, say) otherwise dilutes its own vector.
package profile

import (
	"strings"
	"unicode"

	"github.com/pdiddy/job-matcher/internal/score"
	"github.com/pdiddy/job-matcher/internal/text"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// Split builds the candidate document for text. Every line, and every
// sentence within a line, is routed to each bucket sharing at least one
// keyword with it. Buckets that receive nothing are dropped. The Full
// profile holding the whole text always comes first, followed by the
// surviving buckets in declared order.
func Split(candidate string, buckets []types.ProfileBucket) types.CandidateDocument {
	doc := types.CandidateDocument{
		Text:     candidate,
		Profiles: []types.Profile{{Name: types.FullProfile, Text: candidate}},
	}

	routed := make([][]string, len(buckets))
	for _, unit := range Units(candidate) {
		tokens := text.Tokens(unit)
		if len(tokens) == 0 {
			continue
		}
		for i, b := range buckets {
			if _, ok := text.FirstPhrase(tokens, b.Keywords); ok {
				routed[i] = append(routed[i], unit)
			}
		}
	}

	for i, b := range buckets {
		if len(routed[i]) == 0 {
			continue
		}
		doc.Profiles = append(doc.Profiles, types.Profile{
			Name: b.Name,
			Text: strings.Join(routed[i], "\n"),
		})
	}
	return doc
}

// Units splits text into lines and each line into sentences. Bullets and
// semicolons end a unit; so do '.', '!' and '?' when followed by a space
// or the end of the line, which keeps "node.js" and "3.5" intact.
func Units(s string) []string {
	var units []string
	for _, line := range strings.Split(s, "\n") {
		runes := []rune(line)
		start := 0
		emit := func(end int) {
			if u := strings.TrimSpace(string(runes[start:end])); u != "" {
				units = append(units, u)
			}
		}
		for i, r := range runes {
			switch r {
			case '•', ';', '\r':
				emit(i)
				start = i + 1
			case '.', '!', '?':
				if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
					emit(i)
					start = i + 1
				}
			}
		}
		emit(len(runes))
	}
	return units
}

// Choice is the winning profile for one listing.
type Choice struct {
	Profile string
	score.Scored
}

// Selector scores listings once per profile and keeps the best.
type Selector struct {
	scorer *score.Scorer
}

// NewSelector returns a Selector scoring with s.
func NewSelector(s *score.Scorer) *Selector {
	return &Selector{scorer: s}
}

// Best returns, per listing text, the profile with the highest calibrated
// score. A later profile only wins with a strictly higher score, so ties
// go to Full and then to the earlier declared bucket.
func (s *Selector) Best(doc types.CandidateDocument, listings []string) []Choice {
	best := make([]Choice, len(listings))
	for pi, p := range doc.Profiles {
		scored := s.scorer.Calibrated(p.Text, listings)
		for i, sc := range scored {
			if pi == 0 || sc.Score > best[i].Score {
				best[i] = Choice{Profile: p.Name, Scored: sc}
			}
		}
	}
	return best
}
