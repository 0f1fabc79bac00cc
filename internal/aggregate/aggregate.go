// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges listing batches from several sources into one
// deduplicated, filtered sequence and accounts for what each source
// contributed. A failing source costs its own listings and nothing else.
package aggregate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/pkg/types"
)

// Merge concatenates batches and removes listings without a URL and
// listings whose URL was already seen. The first occurrence wins and
// order is preserved.
func Merge(batches ...[]types.Listing) []types.Listing {
	var all []types.Listing
	for _, b := range batches {
		all = append(all, b...)
	}
	out, _, _ := Deduplicate(all)
	return out
}

// Deduplicate drops listings with an empty URL and repeats of a URL
// already seen, returning the survivors plus both drop counts.
func Deduplicate(listings []types.Listing) (out []types.Listing, duplicates, missingURL int) {
	seen := make(map[string]struct{}, len(listings))
	out = make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		key := strings.TrimSpace(l.URL)
		if key == "" {
			missingURL++
			continue
		}
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out, duplicates, missingURL
}

// Step describes the effect of one filter application.
type Step struct {
	Initial  int
	Dropped  int
	Left     int
	Bypassed bool
}

// Filter keeps the listings matched by pred. When pred would remove every
// listing of a non-empty input, the input is returned unchanged and the
// bypass is recorded in diag under scope. diag may be nil.
func Filter(listings []types.Listing, pred Predicate, diag *types.Diagnostics, scope string) []types.Listing {
	out, _ := apply(listings, pred, diag, scope)
	return out
}

func apply(listings []types.Listing, pred Predicate, diag *types.Diagnostics, scope string) ([]types.Listing, Step) {
	step := Step{Initial: len(listings)}
	kept := make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		if pred.Match(l) {
			kept = append(kept, l)
		}
	}

	if len(kept) == 0 && len(listings) > 0 {
		step.Bypassed = true
		step.Left = len(listings)
		if diag != nil {
			diag.RecordBypass(pred.Name, scope)
		}
		return listings, step
	}

	step.Left = len(kept)
	step.Dropped = step.Initial - step.Left
	return kept, step
}

// Options names the predicates an Aggregator applies.
type Options struct {
	// Global predicates run on every batch.
	Global []string
	// PerSource predicates run on the batch of the named source only.
	PerSource map[string][]string
	// Domain runs once on the merged listings; empty disables it.
	Domain string
}

// Aggregator applies filters to source batches and merges the result.
// It holds no mutable state.
type Aggregator struct {
	global    []Predicate
	perSource map[string][]Predicate
	domain    *Predicate
	logger    *zap.Logger
}

// New resolves opts against reg. Unknown predicate names are errors.
func New(reg Registry, opts Options, logger *zap.Logger) (*Aggregator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{perSource: map[string][]Predicate{}, logger: logger}

	var err error
	if a.global, err = reg.Lookup(opts.Global...); err != nil {
		return nil, err
	}
	for src, names := range opts.PerSource {
		preds, err := reg.Lookup(names...)
		if err != nil {
			return nil, err
		}
		a.perSource[src] = preds
	}
	if opts.Domain != "" {
		preds, err := reg.Lookup(opts.Domain)
		if err != nil {
			return nil, err
		}
		a.domain = &preds[0]
	}
	return a, nil
}

// Aggregate filters each batch, records its counts and status in diag,
// then merges and deduplicates across batches and applies the domain
// filter. Batches are processed in the order given.
func (a *Aggregator) Aggregate(batches []types.Batch, diag *types.Diagnostics) []types.Listing {
	var all []types.Listing
	for _, b := range batches {
		listings := b.Listings
		if b.Err != "" {
			listings = nil
		}
		preds := append(append([]Predicate(nil), a.global...), a.perSource[b.Source]...)
		for _, p := range preds {
			var step Step
			listings, step = apply(listings, p, diag, "source "+b.Source)
			a.logStep(b.Source, p.Name, step)
		}

		diag.AddSource(types.SourceStats{
			Source:   b.Source,
			Raw:      len(b.Listings),
			Filtered: len(listings),
			Status:   batchStatus(b),
			Error:    b.Err,
		}, b.Query)
		all = append(all, listings...)
	}

	merged, dups, missing := Deduplicate(all)
	diag.DuplicatesRemoved += dups
	diag.MissingURL += missing
	a.logger.Debug("merged batches",
		zap.Int("batches", len(batches)),
		zap.Int("listings", len(merged)),
		zap.Int("duplicates", dups),
		zap.Int("missing_url", missing),
	)

	if a.domain != nil {
		var step Step
		merged, step = apply(merged, *a.domain, diag, "merged listings")
		a.logStep("merged", a.domain.Name, step)
	}
	return merged
}

func (a *Aggregator) logStep(scope, name string, step Step) {
	if step.Bypassed {
		a.logger.Warn("filter bypassed: it matched no listings",
			zap.String("scope", scope),
			zap.String("name", name),
			zap.Int("initial", step.Initial),
		)
		return
	}
	a.logger.Debug("filter step",
		zap.String("scope", scope),
		zap.String("name", name),
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)
}

func batchStatus(b types.Batch) string {
	switch {
	case b.Status != "":
		return b.Status
	case b.Err != "":
		return types.StatusError
	default:
		return types.StatusOK
	}
}
