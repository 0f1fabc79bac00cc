// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank turns a résumé and a set of source batches into an ordered
// list of matches. It aggregates the batches, scores every listing against
// every profile of the résumé, keeps the winning profile per listing and
// sorts the outcome.
package rank

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/aggregate"
	"github.com/pdiddy/job-matcher/internal/logger"
	"github.com/pdiddy/job-matcher/internal/profile"
	"github.com/pdiddy/job-matcher/internal/score"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// Options tunes a Pipeline beyond its collaborators.
type Options struct {
	// Buckets drive profile splitting; nil means no buckets, Full only.
	Buckets []types.ProfileBucket
	// MinScore drops results scoring below it; 0 keeps everything.
	MinScore int
}

// Pipeline ranks listings for a candidate. It holds no per-request state
// and may be shared.
type Pipeline struct {
	scorer     *score.Scorer
	selector   *profile.Selector
	aggregator *aggregate.Aggregator
	opts       Options
	logger     *zap.Logger
}

// New returns a Pipeline built from its collaborators.
func New(scorer *score.Scorer, aggregator *aggregate.Aggregator, opts Options, l *zap.Logger) *Pipeline {
	return &Pipeline{
		scorer:     scorer,
		selector:   profile.NewSelector(scorer),
		aggregator: aggregator,
		opts:       opts,
		logger:     logger.OrNop(l),
	}
}

// Rank scores the listings of batches against candidateText and returns
// at most maxResults matches (maxResults <= 0 means all), best first, with
// the diagnostics of the request. Degenerate input never fails: an empty
// candidate scores every listing at the calibration floor and no listings
// yield an empty, non-nil slice.
func (p *Pipeline) Rank(candidateText string, batches []types.Batch, maxResults int) ([]types.MatchResult, types.Diagnostics) {
	start := time.Now()
	diag := types.NewDiagnostics()
	log := logger.WithFields(p.logger, zap.String("request_id", diag.RequestID))

	candidate := normalize(candidateText)
	doc := profile.Split(candidate, p.opts.Buckets)

	listings := p.aggregator.Aggregate(batches, diag)
	if len(listings) == 0 {
		diag.Note("no listings to rank")
		log.Info("nothing to rank", zap.Int("batches", len(batches)))
		return []types.MatchResult{}, *diag
	}

	texts := make([]string, len(listings))
	for i, l := range listings {
		texts[i] = l.Text()
	}
	choices := p.selector.Best(doc, texts)

	type entry struct {
		types.MatchResult
		order int
	}
	entries := make([]entry, 0, len(listings))
	for i, c := range choices {
		if c.Score < p.opts.MinScore {
			diag.BelowThreshold++
			continue
		}
		entries = append(entries, entry{
			MatchResult: types.MatchResult{
				Listing:      listings[i],
				Score:        c.Score,
				Similarity:   c.Raw,
				MatchedTerms: c.Evidence,
				Profile:      c.Profile,
			},
			order: i,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if newer, decided := moreRecent(a.Listing, b.Listing); decided {
			return newer
		}
		return a.order < b.order
	})

	if maxResults > 0 && len(entries) > maxResults {
		entries = entries[:maxResults]
	}

	results := make([]types.MatchResult, len(entries))
	for i, e := range entries {
		results[i] = e.MatchResult
	}

	top := ""
	if len(results) > 0 {
		top = logger.Truncate(results[0].Listing.Title, 60)
	}
	log.Info("ranked listings",
		zap.Int("listings", len(listings)),
		zap.String("top", top),
		zap.Int("results", len(results)),
		zap.Int("below_threshold", diag.BelowThreshold),
		zap.Strings("profiles", doc.ProfileNames()),
		zap.Strings("bypassed", diag.Bypassed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, *diag
}

// moreRecent reports whether a was published after b. decided is false
// when the dates do not separate them; a dated listing precedes an
// undated one.
func moreRecent(a, b types.Listing) (newer, decided bool) {
	at, aok := a.Published()
	bt, bok := b.Published()
	switch {
	case aok && bok:
		if at.Equal(bt) {
			return false, false
		}
		return at.After(bt), true
	case aok != bok:
		return aok, true
	default:
		return false, false
	}
}

// normalize strips NUL bytes left by document converters and trims the
// candidate text. Line structure is kept for profile splitting.
func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
