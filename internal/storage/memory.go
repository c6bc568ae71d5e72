package storage

import (
	"context"
	"sync"
)

// MemorySession is an in-process SessionStore. It lives as long as the
// process, which makes it the terminal equivalent of a browser tab's storage.
type MemorySession struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySession creates an empty in-memory session store.
func NewMemorySession() *MemorySession {
	return &MemorySession{data: make(map[string][]byte)}
}

// Get returns a copy of the bytes under key.
func (m *MemorySession) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrUnavailable
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a copy of data under key.
func (m *MemorySession) Set(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.data[key] = buf
	m.mu.Unlock()
	return nil
}
