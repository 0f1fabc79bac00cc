// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/pkg/types"
)

// PageSource scrapes listings from an HTML careers page using CSS
// selectors. Each element matching the item selector becomes one listing.
type PageSource struct {
	name         string
	urlTemplate  string
	organisation string
	location     string
	selectors    pageSelectors
	userAgent    string
	timeout      time.Duration
	logger       *zap.Logger
}

type pageSelectors struct {
	item     string
	title    string
	link     string
	location string
	summary  string
}

// NewPage returns a page source for cfg. Missing title and link
// selectors default to "a".
func NewPage(cfg types.SourceConfig, httpCfg types.HTTPConfig, logger *zap.Logger) *PageSource {
	sel := pageSelectors{
		item:     cfg.ItemSelector,
		title:    cfg.TitleSelector,
		link:     cfg.LinkSelector,
		location: cfg.LocationSelector,
		summary:  cfg.SummarySelector,
	}
	if sel.title == "" {
		sel.title = "a"
	}
	if sel.link == "" {
		sel.link = "a"
	}
	return &PageSource{
		name:         cfg.Name,
		urlTemplate:  cfg.URL,
		organisation: cfg.Organisation,
		location:     cfg.Location,
		selectors:    sel,
		userAgent:    httpCfg.UserAgent,
		timeout:      httpCfg.Timeout,
		logger:       logger,
	}
}

// Name returns the source identifier.
func (p *PageSource) Name() string { return p.name }

// Fetch visits the page once and collects the matching items. Links are
// resolved against the page URL and repeated links are skipped.
func (p *PageSource) Fetch(ctx context.Context, q Query) ([]types.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pageURL := expandURL(p.urlTemplate, q)

	c := colly.NewCollector(colly.MaxDepth(1))
	if p.userAgent != "" {
		c.UserAgent = p.userAgent
	}
	c.SetRequestTimeout(p.requestTimeout(ctx))

	var listings []types.Listing
	seen := map[string]struct{}{}

	c.OnHTML(p.selectors.item, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.ChildAttr(p.selectors.link, "href"))
		if href == "" {
			href = strings.TrimSpace(e.Attr("href"))
		}
		if href == "" {
			return
		}
		link := e.Request.AbsoluteURL(href)
		if link == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}

		title := e.ChildText(p.selectors.title)
		if title == "" {
			title = e.Text
		}
		l := types.Listing{
			Source:       p.name,
			Title:        plainText(title),
			Organisation: p.organisation,
			Location:     p.location,
			URL:          link,
		}
		if p.selectors.location != "" {
			l.Location = firstNonEmpty(e.ChildText(p.selectors.location), p.location)
		}
		if p.selectors.summary != "" {
			l.Summary = plainText(e.ChildText(p.selectors.summary))
		}
		listings = append(listings, l)
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= 400 {
			fetchErr = &HTTPError{Source: p.name, StatusCode: r.StatusCode}
			return
		}
		fetchErr = err
	})

	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("scraping %s: %w", p.name, fetchErr)
	}
	p.logger.Debug("page scraped", zap.String("source", p.name), zap.Int("listings", len(listings)))
	return listings, nil
}

// requestTimeout fits the collector's timeout inside the context deadline.
func (p *PageSource) requestTimeout(ctx context.Context) time.Duration {
	timeout := p.timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left > 0 && left < timeout {
			timeout = left
		}
	}
	return timeout
}
