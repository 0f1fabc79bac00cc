// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/httputil"
	"github.com/pdiddy/job-matcher/internal/secrets"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// adzunaAPIBase is the Adzuna search endpoint. Declared as a var so tests
// can substitute an httptest server.
var adzunaAPIBase = "https://api.adzuna.com/v1/api/jobs"

const (
	defaultAdzunaCountry  = "gb"
	defaultAdzunaPageSize = 50
	defaultAdzunaMaxPages = 2
)

// AdzunaSource queries the Adzuna job search API. Without credentials it
// fetches nothing and reports no error.
type AdzunaSource struct {
	name      string
	appID     string
	appKey    string
	country   string
	pageSize  int
	maxPages  int
	userAgent string
	retrier   *httputil.Retrier
	logger    *zap.Logger
}

// NewAdzuna returns an Adzuna source for cfg.
func NewAdzuna(cfg types.SourceConfig, appID, appKey string, client *http.Client, httpCfg types.HTTPConfig, logger *zap.Logger) *AdzunaSource {
	a := &AdzunaSource{
		name:      cfg.Name,
		appID:     appID,
		appKey:    appKey,
		country:   cfg.Country,
		pageSize:  cfg.ResultsPerPage,
		maxPages:  cfg.MaxPages,
		userAgent: httpCfg.UserAgent,
		retrier:   &httputil.Retrier{Client: client, MaxRetries: httpCfg.MaxRetries, Logger: logger},
		logger:    logger,
	}
	if a.country == "" {
		a.country = defaultAdzunaCountry
	}
	if a.pageSize <= 0 {
		a.pageSize = defaultAdzunaPageSize
	}
	if a.maxPages <= 0 {
		a.maxPages = defaultAdzunaMaxPages
	}
	return a
}

// Name returns the source identifier.
func (a *AdzunaSource) Name() string { return a.name }

// Fetch pages through the results until a short page or maxPages.
func (a *AdzunaSource) Fetch(ctx context.Context, q Query) ([]types.Listing, error) {
	if a.appID == "" || a.appKey == "" {
		a.logger.Warn("adzuna credentials not set, skipping",
			zap.String("source", a.name),
			zap.String("secrets", secrets.AdzunaAppID+", "+secrets.AdzunaAppKey),
		)
		return nil, nil
	}

	var listings []types.Listing
	for page := 1; page <= a.maxPages; page++ {
		batch, err := a.fetchPage(ctx, q, page)
		if err != nil {
			return listings, fmt.Errorf("page %d: %w", page, err)
		}
		listings = append(listings, batch...)
		if len(batch) < a.pageSize {
			break
		}
	}
	return listings, nil
}

func (a *AdzunaSource) fetchPage(ctx context.Context, q Query, page int) ([]types.Listing, error) {
	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", strconv.Itoa(a.pageSize))
	params.Set("what", q.Keywords)
	params.Set("where", q.Location)
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")

	endpoint := fmt.Sprintf("%s/%s/search/%d?%s", adzunaAPIBase, a.country, page, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.retrier.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Source: a.name, StatusCode: resp.StatusCode}
	}

	var body adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing adzuna response: %w", err)
	}

	listings := make([]types.Listing, 0, len(body.Results))
	for _, r := range body.Results {
		l := types.Listing{
			Source:       a.name,
			Title:        plainText(r.Title),
			Organisation: r.Company.DisplayName,
			Location:     r.Location.DisplayName,
			URL:          r.RedirectURL,
			Summary:      plainText(r.Description),
		}
		if t, err := time.Parse(time.RFC3339, r.Created); err == nil {
			t = t.UTC()
			l.PublishedAt = &t
		}
		listings = append(listings, l)
	}
	return listings, nil
}

type adzunaResponse struct {
	Count   int            `json:"count"`
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Created     string `json:"created"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}
