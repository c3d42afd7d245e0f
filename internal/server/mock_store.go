package server

import (
	"sync"

	"github.com/bnema/kvlru/internal/port"
	"github.com/bnema/kvlru/lru"
)

var _ port.Store = (*MockStore)(nil)

// MockStore is a mock implementation of port.Store for testing.
// Behavior is configured per method; calls are tracked for assertions.
type MockStore struct {
	mu sync.Mutex

	// Behavior configuration
	GetFunc      func(key string) (string, bool)
	PutFunc      func(key, value string)
	ContainsFunc func(key string) bool
	RemoveFunc   func(key string) bool
	LenFunc      func() int
	CapFunc      func() int
	KeysFunc     func() []string
	SnapshotFunc func() []lru.Entry[string, string]

	// Call tracking
	GetCalls    []string
	PutCalls    []struct{ Key, Value string }
	RemoveCalls []string
	ClearCalls  int
}

// NewMockStore creates a new mock with default no-op implementations.
func NewMockStore() *MockStore {
	return &MockStore{
		GetFunc:      func(string) (string, bool) { return "", false },
		PutFunc:      func(string, string) {},
		ContainsFunc: func(string) bool { return false },
		RemoveFunc:   func(string) bool { return false },
		LenFunc:      func() int { return 0 },
		CapFunc:      func() int { return 0 },
		KeysFunc:     func() []string { return nil },
		SnapshotFunc: func() []lru.Entry[string, string] { return nil },
	}
}

// Get implements port.Store.
func (m *MockStore) Get(key string) (string, bool) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, key)
	m.mu.Unlock()
	return m.GetFunc(key)
}

// Put implements port.Store.
func (m *MockStore) Put(key, value string) {
	m.mu.Lock()
	m.PutCalls = append(m.PutCalls, struct{ Key, Value string }{key, value})
	m.mu.Unlock()
	m.PutFunc(key, value)
}

// Contains implements port.Store.
func (m *MockStore) Contains(key string) bool {
	return m.ContainsFunc(key)
}

// Remove implements port.Store.
func (m *MockStore) Remove(key string) bool {
	m.mu.Lock()
	m.RemoveCalls = append(m.RemoveCalls, key)
	m.mu.Unlock()
	return m.RemoveFunc(key)
}

// Len implements port.Store.
func (m *MockStore) Len() int { return m.LenFunc() }

// Cap implements port.Store.
func (m *MockStore) Cap() int { return m.CapFunc() }

// Keys implements port.Store.
func (m *MockStore) Keys() []string { return m.KeysFunc() }

// Snapshot implements port.Store.
func (m *MockStore) Snapshot() []lru.Entry[string, string] { return m.SnapshotFunc() }

// Clear implements port.Store.
func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
}
