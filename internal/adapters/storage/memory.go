package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Storage backend. Used by tests and as the
// fallback backend when no store is configured; contents are lost on
// restart.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.blobs[key] = stored
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
