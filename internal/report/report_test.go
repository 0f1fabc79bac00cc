// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/job-matcher/pkg/types"
)

func sampleOutput() Output {
	diag := types.NewDiagnostics()
	diag.AddSource(types.SourceStats{Source: "indeed-ni", Raw: 12, Filtered: 10, Status: "ok"}, "")
	diag.AddSource(types.SourceStats{Source: "adzuna", Status: "timeout", Error: "timed out"}, "")
	diag.DuplicatesRemoved = 2
	diag.RecordBypass("public-sector", "merged listings")

	return Output{
		Results: []types.MatchResult{
			{
				Listing: types.Listing{
					Source: "indeed-ni", Title: "Data Analyst", Organisation: "Belfast City Council",
					URL: "https://example.org/jobs/1",
				},
				Score:        84,
				Similarity:   0.61,
				MatchedTerms: []string{"sql", "analyst"},
				Profile:      "data",
			},
			{
				Listing: types.Listing{
					Source: "indeed-ni",
					Title:  "Senior Full Stack Software Engineer, Payments Platform Team",
					URL:    "https://example.org/jobs/2",
				},
				Score:        30,
				MatchedTerms: []string{},
				Profile:      types.FullProfile,
			},
		},
		Diagnostics: *diag,
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleOutput(), &buf)
	s := buf.String()

	for _, want := range []string{
		"Data Analyst",
		"84%",
		"Belfast City Council",
		"matched: sql, analyst",
		"https://example.org/jobs/1",
		"Senior Full Stack Software Engineer, ...",
		"2 results from 12 listings (2 duplicates removed)",
		"timed out",
		`note: filter "public-sector" bypassed for merged listings`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("table should contain %q\n%s", want, s)
		}
	}
	if strings.Count(s, "matched:") != 1 {
		t.Error("listings without evidence should not print a matched line")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{Diagnostics: *types.NewDiagnostics()}, &buf)
	if !strings.Contains(buf.String(), "No matching listings found.") {
		t.Errorf("empty output should say so, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "0 results from 0 listings") {
		t.Errorf("empty output should still summarise, got %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(sampleOutput(), &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var parsed struct {
		Results []struct {
			Score        int      `json:"score"`
			Profile      string   `json:"profile"`
			MatchedTerms []string `json:"matched_terms"`
			Listing      struct {
				URL string `json:"url"`
			} `json:"listing"`
		} `json:"results"`
		Diagnostics struct {
			Statuses map[string]string `json:"statuses"`
			Bypassed []string          `json:"bypassed"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(parsed.Results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(parsed.Results))
	}
	if parsed.Results[0].Score != 84 || parsed.Results[0].Profile != "data" {
		t.Errorf("first result = %+v", parsed.Results[0])
	}
	if parsed.Results[1].MatchedTerms == nil {
		t.Error("empty evidence should encode as [], not null")
	}
	if parsed.Diagnostics.Statuses["adzuna"] != "timeout" {
		t.Errorf("statuses = %v", parsed.Diagnostics.Statuses)
	}
}

func TestFormatJSONEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(Output{}, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"results": []`) {
		t.Errorf("nil results should encode as [], got %s", buf.String())
	}
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatYAML(sampleOutput(), &buf); err != nil {
		t.Fatalf("FormatYAML: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	results, ok := parsed["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("results = %#v", parsed["results"])
	}
	first := results[0].(map[string]any)
	if first["score"] != 84 {
		t.Errorf("score = %v", first["score"])
	}
	if !strings.Contains(buf.String(), "request_id:") {
		t.Error("yaml should include the request id")
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format  string
		prefix  string
		wantErr bool
	}{
		{"table", "Rank", false},
		{"", "Rank", false},
		{"JSON", "{", false},
		{"yaml", "results:", false},
		{"yml", "results:", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, sampleOutput())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output starts %q, want prefix %q", buf.String()[:20], tt.prefix)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("Café manager wanted", 8); got != "Café ..." {
		t.Errorf("truncate = %q", got)
	}
}
