// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"math"
	"sort"
)

// vector is a sparse, L2-normalized TF-IDF vector.
type vector map[string]float64

// buildSpace weights every document against the corpus formed by all of
// docs. TF is the raw count; IDF is ln((1+n)/(1+df))+1, so a term present
// in every document still carries weight 1.
func buildSpace(docs [][]string) []vector {
	n := len(docs)
	df := make(map[string]int)
	counts := make([]map[string]int, n)
	for i, doc := range docs {
		c := make(map[string]int, len(doc))
		for _, t := range doc {
			c[t]++
		}
		for t := range c {
			df[t]++
		}
		counts[i] = c
	}

	vectors := make([]vector, n)
	for i, c := range counts {
		v := make(vector, len(c))
		var norm float64
		for _, t := range sortedTerms(c) {
			w := float64(c[t]) * (math.Log(float64(1+n)/float64(1+df[t])) + 1)
			v[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range v {
				v[t] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors
}

// cosine returns the similarity of two normalized vectors clamped to [0,1].
// An empty vector has similarity 0 with everything.
func cosine(a, b vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for _, t := range sortedTerms(a) {
		dot += a[t] * b[t]
	}
	return clamp01(dot)
}

// sortedTerms returns the keys of m in order. Summing in a fixed order
// keeps scores bit-for-bit reproducible across runs.
func sortedTerms[V any](m map[string]V) []string {
	terms := make([]string, 0, len(m))
	for t := range m {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

type weightedTerm struct {
	term   string
	weight float64
}

// evidence returns the terms shared by a and b ordered by the product of
// their weights, strongest first, ties broken alphabetically.
func evidence(a, b vector, max int) []string {
	var shared []weightedTerm
	for t, wa := range a {
		if wb, ok := b[t]; ok {
			if p := wa * wb; p > 0 {
				shared = append(shared, weightedTerm{term: t, weight: p})
			}
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].weight != shared[j].weight {
			return shared[i].weight > shared[j].weight
		}
		return shared[i].term < shared[j].term
	})
	if len(shared) > max {
		shared = shared[:max]
	}
	terms := make([]string, len(shared))
	for i, wt := range shared {
		terms[i] = wt.term
	}
	return terms
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
