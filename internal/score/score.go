// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score rates listings against a candidate text in a TF-IDF vector
// space built over the candidate and the listings of one request, and
// calibrates raw cosine similarity into a bounded percentage.
//
// Weights are relative to the batch being scored: the same listing can
// score differently in two requests with different neighbours.
package score

import (
	"github.com/pdiddy/job-matcher/internal/text"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// Similarity is the raw outcome for one listing.
type Similarity struct {
	// Raw is the cosine similarity in [0,1].
	Raw float64
	// Evidence are the shared terms, strongest first.
	Evidence []string
}

// Scored is a Similarity with its calibrated score.
type Scored struct {
	Similarity
	Score int
	// Bonus is the domain-priority term that earned the bonus, if any.
	Bonus string
}

// Scorer scores listing texts against candidate texts. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	cal Calibration
}

// New returns a Scorer using the given calibration settings.
func New(cfg types.CalibrationConfig) (*Scorer, error) {
	cal, err := NewCalibration(cfg)
	if err != nil {
		return nil, err
	}
	return &Scorer{cal: cal}, nil
}

// Calibration returns the parameters the scorer was built with.
func (s *Scorer) Calibration() Calibration { return s.cal }

// Score returns the raw similarity and evidence of every listing text
// against candidate, in listing order. An empty or all-stop-word
// candidate, or an empty listing, yields similarity 0 and no evidence.
func (s *Scorer) Score(candidate string, listings []string) []Similarity {
	return s.similarities(text.Tokens(candidate), tokenize(listings))
}

// Calibrated scores every listing text against candidate and maps each
// raw similarity into [Floor, Ceiling]. When the candidate carries no
// terms every listing receives exactly Floor with no evidence and no bonus.
func (s *Scorer) Calibrated(candidate string, listings []string) []Scored {
	cand := text.Tokens(candidate)
	docs := tokenize(listings)
	sims := s.similarities(cand, docs)

	out := make([]Scored, len(listings))
	for i, sim := range sims {
		if len(cand) == 0 {
			out[i] = Scored{Similarity: sim, Score: s.cal.Floor}
			continue
		}
		bonus, _ := text.FirstPhrase(docs[i], s.cal.BonusTerms)
		out[i] = Scored{
			Similarity: sim,
			Score:      s.cal.Apply(sim.Raw, bonus != ""),
			Bonus:      bonus,
		}
	}
	return out
}

func (s *Scorer) similarities(cand []string, docs [][]string) []Similarity {
	out := make([]Similarity, len(docs))
	if len(cand) == 0 {
		for i := range out {
			out[i] = Similarity{Evidence: []string{}}
		}
		return out
	}

	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, cand)
	corpus = append(corpus, docs...)
	vectors := buildSpace(corpus)

	for i := range docs {
		v := vectors[i+1]
		out[i] = Similarity{
			Raw:      cosine(vectors[0], v),
			Evidence: evidence(vectors[0], v, s.cal.MaxEvidence),
		}
	}
	return out
}

func tokenize(texts []string) [][]string {
	docs := make([][]string, len(texts))
	for i, t := range texts {
		docs[i] = text.Tokens(t)
	}
	return docs
}
