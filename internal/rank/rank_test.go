// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/job-matcher/internal/aggregate"
	"github.com/pdiddy/job-matcher/internal/score"
	"github.com/pdiddy/job-matcher/pkg/types"
)

func newPipeline(t *testing.T, aggOpts aggregate.Options, opts Options, logger *zap.Logger) *Pipeline {
	t.Helper()
	scorer, err := score.New(types.DefaultCalibration())
	require.NoError(t, err)
	reg, err := aggregate.NewRegistry(types.DefaultPredicates())
	require.NoError(t, err)
	agg, err := aggregate.New(reg, aggOpts, logger)
	require.NoError(t, err)
	return New(scorer, agg, opts, logger)
}

func job(url, title, summary string) types.Listing {
	return types.Listing{Source: "test", URL: url, Title: title, Summary: summary}
}

func dated(l types.Listing, t time.Time) types.Listing {
	l.PublishedAt = &t
	return l
}

func batch(listings ...types.Listing) types.Batch {
	return types.NewBatch("test", listings)
}

func titles(results []types.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Listing.Title
	}
	return out
}

func TestRankEmptyCandidate(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{Buckets: types.DefaultBuckets()}, nil)

	results, diag := p.Rank("", []types.Batch{batch(
		job("1", "Chef", "Busy kitchen needs a chef"),
		job("2", "Developer", "Golang and kubernetes"),
		job("3", "Porter", "Night porter for a hotel"),
	)}, 10)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 30, r.Score)
		assert.Empty(t, r.MatchedTerms)
		assert.Equal(t, types.FullProfile, r.Profile)
	}
	assert.Equal(t, []string{"Chef", "Developer", "Porter"}, titles(results), "ties keep insertion order")
	assert.NotEmpty(t, diag.RequestID)
}

func TestRankDataAnalystScenario(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{Buckets: types.DefaultBuckets()}, nil)

	results, _ := p.Rank("data analyst sql python", []types.Batch{batch(
		job("1", "Forklift Driver", "forklift driver warehouse"),
		job("2", "Data Analyst", "data analyst reporting with sql"),
	)}, 0)

	require.Len(t, results, 2)
	assert.Equal(t, "Data Analyst", results[0].Listing.Title)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Equal(t, 30, results[1].Score)
	assert.Subset(t, []string{"analyst", "data", "sql"}, results[0].MatchedTerms)
	assert.Greater(t, results[0].Similarity, 0.0)
}

func TestRankSortedByScore(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{Buckets: types.DefaultBuckets()}, nil)

	results, _ := p.Rank("Chef with kitchen and catering background. Python hobbyist.", []types.Batch{
		batch(
			job("1", "Accountant", "ledgers and audits"),
			job("2", "Head Chef", "kitchen catering chef"),
		),
		batch(
			job("3", "Python Tutor", "teach python"),
			job("4", "Kitchen Porter", "kitchen cleaning"),
		),
	}, 0)

	require.Len(t, results, 4)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "Head Chef", results[0].Listing.Title)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 30)
		assert.LessOrEqual(t, r.Score, 98)
	}
}

func TestRankTieBreakRecency(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{}, nil)
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	results, _ := p.Rank("barista coffee", []types.Batch{batch(
		job("1", "Barista", "coffee shop"),
		dated(job("2", "Barista", "coffee shop"), jan),
		dated(job("3", "Barista", "coffee shop"), mar),
		job("4", "Barista", "coffee shop"),
	)}, 0)

	require.Len(t, results, 4)
	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.Listing.URL
	}
	assert.Equal(t, []string{"3", "2", "1", "4"}, got)
}

func TestRankTruncates(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{}, nil)
	listings := []types.Listing{
		job("1", "Welder", "welding"),
		job("2", "Welder apprentice", "welding fabrication"),
		job("3", "Gardener", "lawns"),
	}

	results, diag := p.Rank("welding fabrication", []types.Batch{batch(listings...)}, 2)
	assert.Len(t, results, 2)
	assert.Equal(t, 3, diag.Sources[0].Filtered)

	all, _ := p.Rank("welding fabrication", []types.Batch{batch(listings...)}, -1)
	assert.Len(t, all, 3)
}

func TestRankMinScore(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{MinScore: 31}, nil)

	results, diag := p.Rank("welding fabrication", []types.Batch{batch(
		job("1", "Welder", "welding fabrication"),
		job("2", "Gardener", "lawns"),
	)}, 0)

	assert.Equal(t, []string{"Welder"}, titles(results))
	assert.Equal(t, 1, diag.BelowThreshold)
}

func TestRankProfileSelection(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{Buckets: types.DefaultBuckets()}, nil)
	cv := "Software developer with Python and SQL.\nBar staff and waiter at a busy hotel restaurant."

	results, _ := p.Rank(cv, []types.Batch{batch(
		job("1", "Waiter", "Hotel restaurant waiter wanted"),
		job("2", "Developer", "Python software developer, SQL"),
	)}, 0)

	require.Len(t, results, 2)
	byTitle := map[string]types.MatchResult{}
	for _, r := range results {
		byTitle[r.Listing.Title] = r
	}
	assert.Equal(t, "hospitality", byTitle["Waiter"].Profile)
	assert.Equal(t, "technical", byTitle["Developer"].Profile)
}

func TestRankDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := newPipeline(t, aggregate.Options{Global: []string{"no-red-flags"}}, Options{}, zap.New(core))

	results, diag := p.Rank("sales", []types.Batch{
		{
			Source: "indeed-ni", Status: types.StatusOK,
			Listings: []types.Listing{
				job("https://x/1", "Sales Assistant", "retail sales"),
				job("https://x/2", "Sales Agent", "commission only sales"),
			},
		},
		{
			Source: "civil-service", Status: types.StatusOK,
			Listings: []types.Listing{job("https://x/1", "Duplicate", "retail sales")},
		},
		{Source: "adzuna", Status: types.StatusTimeout, Err: "timed out"},
	}, 0)

	require.Len(t, results, 1)
	assert.Equal(t, "Sales Assistant", results[0].Listing.Title)
	assert.Equal(t, 1, diag.DuplicatesRemoved)
	assert.Equal(t, []string{"adzuna: timed out"}, diag.Errors)
	assert.Equal(t, types.StatusTimeout, diag.Statuses["adzuna"])
	require.Len(t, diag.Sources, 3)
	assert.Equal(t, 2, diag.Sources[0].Raw)
	assert.Equal(t, 1, diag.Sources[0].Filtered)

	entries := logs.FilterMessage("ranked listings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, diag.RequestID, entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, 1, entries[0].ContextMap()["results"])
}

func TestRankFailedSourceContributesNothing(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{}, nil)

	results, diag := p.Rank("python", []types.Batch{{
		Source:   "adzuna",
		Status:   "http 503",
		Err:      "adzuna returned HTTP 503",
		Listings: []types.Listing{job("https://x/9", "Python Developer", "python")},
	}}, 0)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, 1, diag.Sources[0].Raw)
	assert.Equal(t, 0, diag.Sources[0].Filtered)
}

func TestRankNoListings(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{}, nil)

	results, diag := p.Rank("python developer", nil, 5)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Contains(t, diag.Notes, "no listings to rank")
}

func TestRankDeterministic(t *testing.T) {
	p := newPipeline(t, aggregate.Options{}, Options{Buckets: types.DefaultBuckets()}, nil)
	batches := []types.Batch{batch(
		job("1", "Data Analyst", "sql dashboards"),
		job("2", "Receptionist", "front desk office"),
	)}

	a, _ := p.Rank("data analyst, office admin", batches, 0)
	b, _ := p.Rank("data analyst, office admin", batches, 0)
	assert.Equal(t, a, b)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb", normalize("  a\x00\nb \n"))
}
