// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/pdiddy/job-matcher/internal/httputil"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// FeedSource reads listings from an RSS 2.0 or Atom feed.
type FeedSource struct {
	name         string
	urlTemplate  string
	organisation string
	location     string
	userAgent    string
	retrier      *httputil.Retrier
	logger       *zap.Logger
}

// NewFeed returns a feed source for cfg.
func NewFeed(cfg types.SourceConfig, client *http.Client, httpCfg types.HTTPConfig, logger *zap.Logger) *FeedSource {
	return &FeedSource{
		name:         cfg.Name,
		urlTemplate:  cfg.URL,
		organisation: cfg.Organisation,
		location:     cfg.Location,
		userAgent:    httpCfg.UserAgent,
		retrier:      &httputil.Retrier{Client: client, MaxRetries: httpCfg.MaxRetries, Logger: logger},
		logger:       logger,
	}
}

// Name returns the source identifier.
func (f *FeedSource) Name() string { return f.name }

// Fetch downloads the feed and converts every item with a link.
func (f *FeedSource) Fetch(ctx context.Context, q Query) ([]types.Listing, error) {
	url := expandURL(f.urlTemplate, q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.5")

	resp, err := f.retrier.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s feed request: %w", f.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Source: f.name, StatusCode: resp.StatusCode}
	}

	var doc feedDoc
	dec := xml.NewDecoder(resp.Body)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s feed: %w", f.name, err)
	}

	listings := f.convert(doc)
	f.logger.Debug("feed fetched",
		zap.String("source", f.name),
		zap.Int("items", len(doc.Channel.Items)+len(doc.Entries)),
		zap.Int("listings", len(listings)),
	)
	return listings, nil
}

func (f *FeedSource) convert(doc feedDoc) []types.Listing {
	var listings []types.Listing
	for _, it := range doc.Channel.Items {
		link := firstNonEmpty(it.Link, it.GUID)
		if link == "" {
			continue
		}
		listings = append(listings, types.Listing{
			Source:       f.name,
			Title:        plainText(it.Title),
			Organisation: firstNonEmpty(it.Source, it.Creator, f.organisation),
			Location:     firstNonEmpty(it.Location, f.location),
			URL:          link,
			Summary:      plainText(it.Description),
			PublishedAt:  parseFeedDate(it.PubDate),
		})
	}
	for _, e := range doc.Entries {
		link := e.href()
		if link == "" {
			continue
		}
		listings = append(listings, types.Listing{
			Source:       f.name,
			Title:        plainText(e.Title),
			Organisation: firstNonEmpty(e.Author.Name, f.organisation),
			Location:     firstNonEmpty(e.Location, f.location),
			URL:          link,
			Summary:      plainText(firstNonEmpty(e.Summary, e.Content)),
			PublishedAt:  parseFeedDate(firstNonEmpty(e.Published, e.Updated)),
		})
	}
	return listings
}

// feedDoc decodes either an RSS document (<rss><channel><item>) or an
// Atom feed (<feed><entry>); the root element name is not checked.
type feedDoc struct {
	Channel rssChannel  `xml:"channel"`
	Entries []atomEntry `xml:"entry"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Source      string `xml:"source"`
	Creator     string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Location    string `xml:"location"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Location  string     `xml:"location"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// href prefers the alternate link, falling back to the first one.
func (e atomEntry) href() string {
	for _, l := range e.Links {
		if l.Rel == "" || l.Rel == "alternate" {
			return strings.TrimSpace(l.Href)
		}
	}
	if len(e.Links) > 0 {
		return strings.TrimSpace(e.Links[0].Href)
	}
	return ""
}

var feedDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// parseFeedDate returns nil for missing or unparseable dates.
func parseFeedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
