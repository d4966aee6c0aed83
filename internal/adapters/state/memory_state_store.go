package state

import (
	"context"
	"route-planner-service/internal/ports"
	"sync"
)

// MemoryStateStore keeps session state in process memory. Contents are lost
// on restart.
type MemoryStateStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{data: make(map[string][]byte)}
}

func (m *MemoryStateStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.data[key]
	if !ok {
		return nil, ports.ErrStateNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryStateStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}
