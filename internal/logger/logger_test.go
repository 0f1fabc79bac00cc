// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	info, err := New(false, false)
	require.NoError(t, err)
	assert.False(t, info.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, info.Core().Enabled(zapcore.InfoLevel))

	debug, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zapcore.DebugLevel))
}

func TestBuildJSONUsesStepKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := build(true, false, []string{path})
	require.NoError(t, err)

	l.Info("fetching sources", zap.Int("sources", 3))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "fetching sources", entry["step"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["sources"])
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String("source", "adzuna")).Info("fetched")
	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "adzuna", entries[0].ContextMap()["source"])

	assert.NotNil(t, WithFields(nil, zap.String("k", "v")))
	assert.NotPanics(t, func() { WithFields(nil).Info("ignored") })
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"exactly", 7, "exactly"},
		{"barista wanted", 7, "barista..."},
		{"café au lait", 4, "café..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.limit), tt.in)
	}
}
