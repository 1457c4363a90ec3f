package store

import (
	"context"
	"maps"
	"slices"
	"sync"
)

//go:generate mockgen -destination=../mocks/backend_mock.go -package=mocks . Backend

// Backend is a key-value slot store, the durable layer behind [Store].
//
// The Store uses exactly one key and always writes the whole collection, so
// a Backend only needs whole-value reads and overwrites.
type Backend interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases resources held by the backend.
	Close() error
}

// MemoryBackend keeps values in process memory.
// It is safe for concurrent use.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
	puts   int
}

// NewMemoryBackend returns an empty [MemoryBackend].
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Get implements [Backend].
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]

	return slices.Clone(v), ok, nil
}

// Put implements [Backend].
func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = slices.Clone(value)
	m.puts++

	return nil
}

// Close implements [Backend].
func (m *MemoryBackend) Close() error {
	return nil
}

// Puts returns how many times Put was called.
func (m *MemoryBackend) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.puts
}

// Keys returns the stored keys in sorted order.
func (m *MemoryBackend) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Sorted(maps.Keys(m.values))
}

var _ Backend = (*MemoryBackend)(nil)
