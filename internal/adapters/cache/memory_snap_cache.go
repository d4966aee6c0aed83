package cache

import (
	"context"
	"route-planner-service/internal/domain"
	"sync"
)

// MemorySnapCache is the in-process variant of SQLSnapCache, used when no
// database is configured.
type MemorySnapCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Coordinates
}

func NewMemorySnapCache() *MemorySnapCache {
	return &MemorySnapCache{entries: make(map[string]domain.Coordinates)}
}

func (m *MemorySnapCache) Get(_ context.Context, raw domain.Coordinates) (domain.Coordinates, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.entries[snapKey(raw)]
	return c, ok, nil
}

func (m *MemorySnapCache) Put(_ context.Context, raw, snapped domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[snapKey(raw)] = snapped
	return nil
}
