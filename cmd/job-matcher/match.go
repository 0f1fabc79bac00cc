// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/aggregate"
	"github.com/pdiddy/job-matcher/internal/cache"
	"github.com/pdiddy/job-matcher/internal/ingest"
	"github.com/pdiddy/job-matcher/internal/rank"
	"github.com/pdiddy/job-matcher/internal/report"
	"github.com/pdiddy/job-matcher/internal/score"
	"github.com/pdiddy/job-matcher/internal/secrets"
	"github.com/pdiddy/job-matcher/internal/source"
	"github.com/pdiddy/job-matcher/pkg/types"
)

const defaultLocation = "Northern Ireland"

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank current job listings against a résumé",
	Long: `Match reads a résumé (text, Markdown, HTML or PDF via pdftotext), fetches
listings from every enabled source in parallel and prints them ranked by
calibrated match score. Sources that fail or time out are reported in the
summary and do not stop the run.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("cv", "", "path to the résumé file, or - for stdin")
	matchCmd.Flags().String("text", "", "résumé text given inline")
	matchCmd.Flags().String("keywords", "", "search keywords sent to sources (empty fetches everything)")
	matchCmd.Flags().String("location", defaultLocation, "location sent to sources")
	matchCmd.Flags().StringSlice("source", nil, "only query the named sources")
	matchCmd.Flags().Int("max-results", 0, "maximum number of results (default from config)")
	matchCmd.Flags().Int("min-score", -1, "hide results scoring below this percentage (default from config)")
	matchCmd.Flags().String("format", report.FormatNameTable, "output format: table, json or yaml")
	matchCmd.Flags().Duration("timeout", 0, "per-source timeout (default from config)")

	rootCmd.AddCommand(matchCmd)
}

// matchOptions are the per-run inputs of the match command.
type matchOptions struct {
	Candidate  string
	Query      source.Query
	Only       []string
	MaxResults int
	Format     string
}

func runMatch(cmd *cobra.Command, args []string) error {
	cvPath, _ := cmd.Flags().GetString("cv")
	inline, _ := cmd.Flags().GetString("text")
	keywords, _ := cmd.Flags().GetString("keywords")
	location, _ := cmd.Flags().GetString("location")
	only, _ := cmd.Flags().GetStringSlice("source")
	format, _ := cmd.Flags().GetString("format")

	cfg := appConfig
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		cfg.Match.MaxResults = n
	}
	if n, _ := cmd.Flags().GetInt("min-score"); n >= 0 {
		if n > 100 {
			return fmt.Errorf("--min-score %d must be in [0,100]", n)
		}
		cfg.Match.MinScore = n
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		cfg.Match.SourceTimeout = d
	}

	candidate, err := readCandidate(cmd.Context(), cvPath, inline, cmd.InOrStdin())
	if err != nil {
		return err
	}

	return match(cmd.Context(), cfg, loadedSecrets, matchOptions{
		Candidate:  candidate,
		Query:      source.Query{Keywords: keywords, Location: location},
		Only:       only,
		MaxResults: cfg.Match.MaxResults,
		Format:     format,
	}, cmd.OutOrStdout())
}

// readCandidate returns the résumé text from a file, stdin or the inline flag.
func readCandidate(ctx context.Context, cvPath, inline string, stdin io.Reader) (string, error) {
	switch {
	case cvPath != "" && inline != "":
		return "", fmt.Errorf("use either --cv or --text, not both")
	case cvPath == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading résumé from stdin: %w", err)
		}
		return ingest.Clean(string(data)), nil
	case cvPath != "":
		if ctx == nil {
			ctx = context.Background()
		}
		return ingest.NewLoader(log).Load(ctx, cvPath)
	case strings.TrimSpace(inline) != "":
		return ingest.Clean(inline), nil
	default:
		return "", fmt.Errorf("provide a résumé with --cv <file> or --text")
	}
}

// match collects listings, ranks them against opts.Candidate and writes
// the report to w.
func match(ctx context.Context, cfg types.Config, creds map[string]string, opts matchOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// Reject a bad format before spending time on the network.
	if err := report.Write(io.Discard, opts.Format, report.Output{}); err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	sources, err := source.FromConfig(selectSources(cfg.Sources, opts.Only), cfg.HTTP, creds, log)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources enabled: check the sources section of the config")
	}

	c, err := cache.New(ctx, cfg.Cache, creds[secrets.RedisPassword], log)
	if err != nil {
		log.Warn("listing cache unavailable, continuing without it", zap.Error(err))
		c = nil
	}
	if c != nil {
		defer c.Close()
	}

	start := time.Now()
	log.Info("fetching listings",
		zap.Int("sources", len(sources)),
		zap.String("query", opts.Query.String()),
	)
	batches := aggregate.Collect(ctx, sources, opts.Query, aggregate.CollectOptions{
		Timeout: cfg.Match.SourceTimeout,
		Cache:   c,
		Logger:  log,
	})
	log.Debug("fetched listings", zap.Duration("elapsed", time.Since(start)))

	results, diag := pipeline.Rank(opts.Candidate, batches, opts.MaxResults)
	return report.Write(w, opts.Format, report.Output{Results: results, Diagnostics: diag})
}

// buildPipeline wires the scorer and aggregator described by cfg.
func buildPipeline(cfg types.Config) (*rank.Pipeline, error) {
	scorer, err := score.New(cfg.Match.Calibration)
	if err != nil {
		return nil, fmt.Errorf("calibration: %w", err)
	}

	reg, err := aggregate.NewRegistry(cfg.Match.Predicates)
	if err != nil {
		return nil, fmt.Errorf("predicates: %w", err)
	}
	perSource := map[string][]string{}
	for _, s := range cfg.Sources {
		if len(s.Filters) > 0 {
			perSource[s.Name] = s.Filters
		}
	}
	agg, err := aggregate.New(reg, aggregate.Options{
		Global:    cfg.Match.GlobalFilters,
		PerSource: perSource,
		Domain:    cfg.Match.DomainFilter,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("filters: %w", err)
	}

	return rank.New(scorer, agg, rank.Options{
		Buckets:  cfg.Match.Buckets,
		MinScore: cfg.Match.MinScore,
	}, log), nil
}

// selectSources keeps the sources named in only, or all when only is empty.
func selectSources(cfgs []types.SourceConfig, only []string) []types.SourceConfig {
	if len(only) == 0 {
		return cfgs
	}
	want := map[string]bool{}
	for _, n := range only {
		want[strings.TrimSpace(n)] = true
	}
	var out []types.SourceConfig
	for _, c := range cfgs {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out
}
