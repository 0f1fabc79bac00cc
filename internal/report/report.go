// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders ranking results for the terminal or for other
// programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/job-matcher/pkg/types"
)

// Output formats.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
	FormatNameYAML  = "yaml"
)

// Output is the document written by FormatJSON and FormatYAML.
type Output struct {
	Results     []types.MatchResult `json:"results" yaml:"results"`
	Diagnostics types.Diagnostics   `json:"diagnostics" yaml:"diagnostics"`
}

// Write renders out in the named format.
func Write(w io.Writer, format string, out Output) error {
	switch strings.ToLower(format) {
	case FormatNameTable, "":
		FormatTable(out, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(out, w)
	case FormatNameYAML, "yml":
		return FormatYAML(out, w)
	default:
		return fmt.Errorf("unknown output format %q: use table, json or yaml", format)
	}
}

// FormatTable writes results as a human-readable table followed by a
// summary of the sources consulted.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No matching listings found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-5s  %-40s  %-24s  %-14s  %s\n",
			"Rank", "Score", "Title", "Organisation", "Profile", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 110))

		for i, r := range out.Results {
			fmt.Fprintf(w, "%-4d  %-5s  %-40s  %-24s  %-14s  %s\n",
				i+1,
				fmt.Sprintf("%d%%", r.Score),
				truncate(r.Listing.Title, 40),
				truncate(r.Listing.Organisation, 24),
				truncate(r.Profile, 14),
				r.Listing.Source,
			)
			if len(r.MatchedTerms) > 0 {
				fmt.Fprintf(w, "      matched: %s\n", strings.Join(r.MatchedTerms, ", "))
			}
			fmt.Fprintf(w, "      %s\n", r.Listing.URL)
		}
	}

	formatDiagnostics(out, w)
}

func formatDiagnostics(out Output, w io.Writer) {
	d := out.Diagnostics
	fmt.Fprintf(w, "\n%d results from %d listings", len(out.Results), d.TotalRaw())
	var extra []string
	if d.DuplicatesRemoved > 0 {
		extra = append(extra, fmt.Sprintf("%d duplicates removed", d.DuplicatesRemoved))
	}
	if d.MissingURL > 0 {
		extra = append(extra, fmt.Sprintf("%d without url", d.MissingURL))
	}
	if d.BelowThreshold > 0 {
		extra = append(extra, fmt.Sprintf("%d below minimum score", d.BelowThreshold))
	}
	if len(extra) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(extra, ", "))
	}
	fmt.Fprintln(w)

	for _, s := range d.Sources {
		fmt.Fprintf(w, "  %-16s %-10s %3d raw  %3d kept", s.Source, s.Status, s.Raw, s.Filtered)
		if s.Error != "" {
			fmt.Fprintf(w, "  %s", s.Error)
		}
		fmt.Fprintln(w)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "note: %s\n", n)
	}
}

// FormatJSON writes out as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	if out.Results == nil {
		out.Results = []types.MatchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FormatYAML writes out as YAML to w.
func FormatYAML(out Output, w io.Writer) error {
	if out.Results == nil {
		out.Results = []types.MatchResult{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
