// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value. Environment variables override files.
//
// Known keys: adzuna-app-id, adzuna-app-key, redis-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Known secret keys.
const (
	AdzunaAppID   = "adzuna-app-id"
	AdzunaAppKey  = "adzuna-app-key"
	RedisPassword = "redis-password"
)

// Known lists the keys job-matcher reads, in display order.
var Known = []string{AdzunaAppID, AdzunaAppKey, RedisPassword}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no secrets directory", zap.String("dir", dir))
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// EnvName returns the environment variable that overrides key, e.g.
// JOB_MATCHER_ADZUNA_APP_ID for adzuna-app-id under prefix JOB_MATCHER.
func EnvName(prefix, key string) string {
	name := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// ApplyEnv overlays secrets with the non-empty environment variables for
// the known keys and returns the same map.
func ApplyEnv(secrets map[string]string, prefix string) map[string]string {
	if secrets == nil {
		secrets = map[string]string{}
	}
	for _, key := range Known {
		if v := strings.TrimSpace(os.Getenv(EnvName(prefix, key))); v != "" {
			secrets[key] = v
		}
	}
	return secrets
}

// Status reports, per known key, whether a value is present. Values are
// never exposed.
func Status(secrets map[string]string) map[string]bool {
	out := make(map[string]bool, len(Known))
	for _, key := range Known {
		out[key] = secrets[key] != ""
	}
	return out
}
