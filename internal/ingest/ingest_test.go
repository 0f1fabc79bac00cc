// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	available bool
	output    string
	err       error
	gotArgs   []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.available {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	m.gotArgs = append([]string{name}, args...)
	return []byte(m.output), m.err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadText(t *testing.T) {
	l := NewLoader(nil)
	for _, name := range []string{"cv.txt", "cv.md", "CV"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "Jane  Doe\r\n\r\n\r\nBarista   at Clements\n")
			got, err := l.Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, "Jane Doe\n\nBarista at Clements", got)
		})
	}
}

func TestLoadHTML(t *testing.T) {
	path := writeFile(t, "cv.html", `<html><head><title>CV</title><style>p{}</style></head>
<body><h1>Jane Doe</h1><ul><li>Python developer</li><li>SQL reporting</li></ul>
<script>var x = 1;</script></body></html>`)

	got, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPython developer\nSQL reporting", got)
}

func TestLoadPDF(t *testing.T) {
	path := writeFile(t, "cv.pdf", "%PDF-1.4")
	mock := &mockExecutor{available: true, output: "Jane Doe\fPage two   text\n"}
	l := &Loader{exec: mock, logger: NewLoader(nil).logger}

	got, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPage two text", got)
	assert.Equal(t, []string{"pdftotext", "-layout", "-enc", "UTF-8", path, "-"}, mock.gotArgs)
}

func TestLoadPDFErrors(t *testing.T) {
	path := writeFile(t, "cv.pdf", "%PDF-1.4")

	tests := []struct {
		name   string
		exec   *mockExecutor
		path   string
		errMsg string
	}{
		{"binary missing", &mockExecutor{}, path, "pdftotext not found on PATH"},
		{"conversion fails", &mockExecutor{available: true, err: errors.New("exit status 1")}, path, "converting"},
		{"empty output", &mockExecutor{available: true, output: " \n\f "}, path, "contains no text"},
		{"missing file", &mockExecutor{available: true}, filepath.Join(t.TempDir(), "nope.pdf"), "reading"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Loader{exec: tt.exec, logger: NewLoader(nil).logger}
			_, err := l.Load(context.Background(), tt.path)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(nil)

	_, err := l.Load(context.Background(), writeFile(t, "cv.docx", "x"))
	assert.ErrorContains(t, err, `unsupported document type ".docx"`)

	_, err = l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "reading")

	_, err = l.Load(context.Background(), writeFile(t, "blank.txt", "  \n\t\n"))
	assert.ErrorContains(t, err, "contains no text")
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses spaces", "a   b\t c", "a b c"},
		{"keeps lines", "a\nb", "a\nb"},
		{"one blank line kept", "a\n\n\n\nb", "a\n\nb"},
		{"leading and trailing blanks dropped", "\n\n a \n\n", "a"},
		{"windows newlines", "a\r\nb\rc", "a\nb\nc"},
		{"form feed and nul", "a\fb\x00c", "a\nbc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}
