// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	"github.com/google/uuid"
)

// SourceStats records what one source batch contributed to a request.
type SourceStats struct {
	Source   string `json:"source" yaml:"source"`
	Raw      int    `json:"raw" yaml:"raw"`
	Filtered int    `json:"filtered" yaml:"filtered"`
	Status   string `json:"status" yaml:"status"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Diagnostics accumulates what happened during one ranking request. A
// fresh value is built for every request.
type Diagnostics struct {
	// RequestID identifies the request in logs.
	RequestID string `json:"request_id" yaml:"request_id"`

	// Sources holds per-batch counts in the order batches were supplied.
	Sources []SourceStats `json:"sources" yaml:"sources"`

	// Statuses maps "source" or "source:query" to the retrieval status.
	Statuses map[string]string `json:"statuses" yaml:"statuses"`

	// Errors lists retrieval error messages in order of occurrence.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Bypassed names the filters skipped because they would have removed
	// every listing.
	Bypassed []string `json:"bypassed,omitempty" yaml:"bypassed,omitempty"`

	// Notes are free-form messages about the request.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// DuplicatesRemoved counts listings dropped because their URL was seen before.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// MissingURL counts listings dropped because they had no URL.
	MissingURL int `json:"missing_url" yaml:"missing_url"`

	// BelowThreshold counts results dropped by the minimum score.
	BelowThreshold int `json:"below_threshold" yaml:"below_threshold"`
}

// NewDiagnostics returns an empty Diagnostics with a fresh request id.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		RequestID: uuid.NewString(),
		Statuses:  map[string]string{},
	}
}

// AddSource appends the stats for one batch and records its status and
// error, if any.
func (d *Diagnostics) AddSource(s SourceStats, query string) {
	d.Sources = append(d.Sources, s)
	key := s.Source
	if query != "" {
		key = s.Source + ":" + query
	}
	if d.Statuses == nil {
		d.Statuses = map[string]string{}
	}
	d.Statuses[key] = s.Status
	if s.Error != "" {
		d.Errors = append(d.Errors, fmt.Sprintf("%s: %s", s.Source, s.Error))
	}
}

// RecordBypass notes that the named filter was not applied in scope.
func (d *Diagnostics) RecordBypass(filter, scope string) {
	d.Bypassed = append(d.Bypassed, filter)
	d.Notes = append(d.Notes, fmt.Sprintf("filter %q bypassed for %s: it matched no listings", filter, scope))
}

// Note appends a free-form message.
func (d *Diagnostics) Note(format string, args ...any) {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
}

// TotalRaw returns the number of listings received across all sources.
func (d *Diagnostics) TotalRaw() int {
	n := 0
	for _, s := range d.Sources {
		n += s.Raw
	}
	return n
}
