// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FullProfile is the name of the profile holding the whole candidate text.
const FullProfile = "Full"

// Profile is a named excerpt of the candidate text.
type Profile struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// CandidateDocument is the résumé text plus the profiles derived from it.
// Profiles[0] is always the Full profile.
type CandidateDocument struct {
	Text     string    `json:"text" yaml:"text"`
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

// ProfileNames returns the profile names in order.
func (d CandidateDocument) ProfileNames() []string {
	names := make([]string, len(d.Profiles))
	for i, p := range d.Profiles {
		names[i] = p.Name
	}
	return names
}

// MatchResult is one ranked listing.
type MatchResult struct {
	// Listing is the matched listing.
	Listing Listing `json:"listing" yaml:"listing"`

	// Score is the calibrated, user-facing score in [0,100].
	Score int `json:"score" yaml:"score"`

	// Similarity is the raw cosine similarity the score was derived from.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// MatchedTerms are the evidence terms, strongest first.
	MatchedTerms []string `json:"matched_terms" yaml:"matched_terms"`

	// Profile names the candidate profile that produced the best score.
	Profile string `json:"profile" yaml:"profile"`
}
