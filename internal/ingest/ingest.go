// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns résumé files into plain text. Text and Markdown
// files are read as they are, HTML is reduced to its visible text and PDF
// goes through the pdftotext binary from poppler.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/logger"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

// Loader reads résumé documents.
type Loader struct {
	exec   executor
	logger *zap.Logger
}

// NewLoader returns a Loader that shells out to the real pdftotext.
func NewLoader(l *zap.Logger) *Loader {
	return &Loader{exec: &osExecutor{}, logger: logger.OrNop(l)}
}

// Load returns the cleaned text of the document at path. The format is
// chosen by extension; files without one are read as text.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var raw string
	switch ext {
	case "", ".txt", ".text", ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		raw = string(data)
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		defer f.Close()
		doc, err := goquery.NewDocumentFromReader(f)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
		doc.Find("script, style, head").Remove()
		raw = blockText(doc.Selection)
	case ".pdf":
		out, err := l.pdfText(ctx, path)
		if err != nil {
			return "", err
		}
		raw = out
	default:
		return "", fmt.Errorf("unsupported document type %q: use .txt, .md, .html or .pdf", ext)
	}

	text := Clean(raw)
	if text == "" {
		return "", fmt.Errorf("%s contains no text", path)
	}
	l.logger.Debug("loaded document",
		zap.String("path", path),
		zap.String("format", strings.TrimPrefix(ext, ".")),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func (l *Loader) pdfText(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := l.exec.LookPath(binPdftotext); err != nil {
		return "", fmt.Errorf("%s not found on PATH (install poppler-utils): %w", binPdftotext, err)
	}
	out, err := l.exec.Output(ctx, binPdftotext, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	return string(out), nil
}

// blockText renders the text of sel with a line break after every block
// element, so that list items and paragraphs stay on their own lines.
func blockText(sel *goquery.Selection) string {
	sel.Find("p, li, br, div, h1, h2, h3, h4, h5, h6, tr, dt, dd").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return sel.Text()
}

// Clean normalizes whitespace while keeping line structure: spaces inside
// a line collapse to one, page breaks become line breaks and runs of
// blank lines shrink to a single one.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.NewReplacer("\r", "\n", "\f", "\n", "\x00", "").Replace(s)

	var b strings.Builder
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		blank = false
		b.WriteString(line)
	}
	return b.String()
}
