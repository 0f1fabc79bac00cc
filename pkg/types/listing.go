// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the job-matcher
// packages: listings, match results, diagnostics and configuration.
package types

import (
	"strings"
	"time"
)

// Listing is one job opportunity as produced by a listing source.
// Listings are treated as immutable once constructed; URL is the identity
// key used for deduplication.
type Listing struct {
	// Source is the provenance tag of the source that produced the listing
	// (e.g. "indeed-ni", "civil-service").
	Source string `json:"source" yaml:"source"`

	// Title is the job title.
	Title string `json:"title" yaml:"title"`

	// Organisation is the hiring organisation, if known.
	Organisation string `json:"organisation,omitempty" yaml:"organisation,omitempty"`

	// Location is the free-text location string, if known.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// URL links to the listing and identifies it. Listings without a URL
	// are never admitted into a ranking.
	URL string `json:"url" yaml:"url"`

	// Summary is the free-text description of the role.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// PublishedAt is the publication time; nil when the source gives none.
	PublishedAt *time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
}

// Text returns the text used for scoring and predicate evaluation.
// Empty fields are skipped.
func (l Listing) Text() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{l.Title, l.Organisation, l.Location, l.Summary} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Published reports the publication time and whether one is known.
func (l Listing) Published() (time.Time, bool) {
	if l.PublishedAt == nil || l.PublishedAt.IsZero() {
		return time.Time{}, false
	}
	return *l.PublishedAt, true
}

// Batch status values recorded for a source retrieval.
const (
	StatusOK      = "ok"
	StatusCached  = "cached"
	StatusTimeout = "timeout"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Batch is one source's contribution to a ranking request together with
// the retrieval outcome.
type Batch struct {
	// Source names the source that produced the listings.
	Source string `json:"source" yaml:"source"`

	// Query is the query string the source was asked for.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	// Listings holds the raw listings in source order.
	Listings []Listing `json:"listings" yaml:"listings"`

	// Status is the retrieval status ("ok", "cached", "timeout", "http 503", ...).
	Status string `json:"status" yaml:"status"`

	// Err is the retrieval error message, empty on success.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewBatch wraps listings from a successful retrieval.
func NewBatch(source string, listings []Listing) Batch {
	return Batch{Source: source, Listings: listings, Status: StatusOK}
}
