package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV. The import CLI uses it for dry runs; tests use
// the error hooks to simulate corrupt or failing storage.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	writes int

	// GetErr and SetErr, when non-nil, are returned by Get and Set.
	GetErr error
	SetErr error
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.put(key, value)
	m.writes++
	return nil
}

// Put stores value without counting a write. Used to seed fixtures.
func (m *MemoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, value)
}

func (m *MemoryKV) put(key, value string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
}

// Writes returns the number of successful Set calls.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
