// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pdiddy/job-matcher/pkg/types"
)

type memoryEntry struct {
	listings []types.Listing
	expires  time.Time
}

// Memory is an in-process Cache guarded by a mutex. Stored slices are
// copied on the way in and out so callers never share backing arrays.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, entries: map[string]memoryEntry{}, now: time.Now}
}

// Get returns a copy of the live entry for key.
func (m *Memory) Get(_ context.Context, key string) ([]types.Listing, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]types.Listing(nil), e.listings...), true, nil
}

// Set stores a copy of listings.
func (m *Memory) Set(_ context.Context, key string, listings []types.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		listings: append([]types.Listing(nil), listings...),
		expires:  m.now().Add(m.ttl),
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close drops every entry.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]memoryEntry{}
	return nil
}
