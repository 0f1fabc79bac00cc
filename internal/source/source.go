// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source retrieves raw job listings from external providers: RSS
// and Atom feeds, the Adzuna search API, and HTML careers pages. Each
// provider implements Source; none of them filter or score.
package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/secrets"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// Source fetches listings for a query from one provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]types.Listing, error)
}

// Query holds the retrieval parameters shared by all sources.
type Query struct {
	Keywords string
	Location string
}

// String returns the canonical form used in diagnostics and cache keys.
func (q Query) String() string {
	k := strings.ToLower(strings.Join(strings.Fields(q.Keywords), " "))
	l := strings.ToLower(strings.Join(strings.Fields(q.Location), " "))
	if l == "" {
		return k
	}
	return k + "@" + l
}

// HTTPError reports a non-success response from a provider.
type HTTPError struct {
	Source     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Source, e.StatusCode)
}

// FromConfig builds the enabled sources in declaration order.
func FromConfig(cfgs []types.SourceConfig, httpCfg types.HTTPConfig, creds map[string]string, logger *zap.Logger) ([]Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &http.Client{Timeout: httpCfg.Timeout}

	var sources []Source
	seen := map[string]bool{}
	for _, c := range cfgs {
		if c.Disabled {
			continue
		}
		if c.Name == "" {
			return nil, fmt.Errorf("source of kind %q has no name", c.Kind)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("source %q declared twice", c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case types.SourceFeed:
			if c.URL == "" {
				return nil, fmt.Errorf("feed source %q has no url", c.Name)
			}
			sources = append(sources, NewFeed(c, client, httpCfg, logger))
		case types.SourcePage:
			if c.URL == "" || c.ItemSelector == "" {
				return nil, fmt.Errorf("page source %q needs url and item_selector", c.Name)
			}
			sources = append(sources, NewPage(c, httpCfg, logger))
		case types.SourceAdzuna:
			sources = append(sources, NewAdzuna(c, creds[secrets.AdzunaAppID], creds[secrets.AdzunaAppKey], client, httpCfg, logger))
		default:
			return nil, fmt.Errorf("source %q: unknown kind %q", c.Name, c.Kind)
		}
	}
	return sources, nil
}

// expandURL substitutes the query-escaped request values into a URL
// template.
func expandURL(tmpl string, q Query) string {
	return strings.NewReplacer(
		"{keywords}", url.QueryEscape(q.Keywords),
		"{location}", url.QueryEscape(q.Location),
	).Replace(tmpl)
}

// plainText strips markup from provider summaries and collapses whitespace.
func plainText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
