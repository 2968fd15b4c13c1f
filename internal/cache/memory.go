// Package cache holds the announcement cache backends.
package cache

import (
	"context"
	"sync"

	"conferencecentral/internal/domain"
)

// Memory is a process-local announcement cache. Each slot is replaced as a
// whole under the lock, so readers see either the old or the new value.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

var _ domain.AnnouncementCache = (*Memory)(nil)

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

func (m *Memory) Get(_ context.Context, key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slots[key]
}

func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
