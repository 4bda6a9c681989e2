package store

import (
	"context"
	"sync"
)

type memoryDocs struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an in-memory store intended for local development and
// tests. Documents still round-trip through the codec so defaulting behaves
// exactly as with the durable backends.
func NewMemoryStore() Store {
	return newStore(&memoryDocs{docs: make(map[string][]byte)})
}

func (m *memoryDocs) get(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	body, ok := m.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (m *memoryDocs) put(_ context.Context, name string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(body))
	copy(stored, body)
	m.docs[name] = stored
	return nil
}

func (m *memoryDocs) Close() error { return nil }
