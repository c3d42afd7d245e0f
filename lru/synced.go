package lru

import "sync"

// Synced is a Cache guarded by a single read-write mutex.
//
// Get and Put both take the write lock because both reorder the recency
// list; read-only operations (Peek, Contains, Len, Keys, Snapshot) take the
// read lock.
type Synced[K comparable, V any] struct {
	mu    sync.RWMutex
	cache *Cache[K, V]
}

// NewSynced creates a thread-safe LRU cache with the given capacity.
func NewSynced[K comparable, V any](capacity int) (*Synced[K, V], error) {
	c, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Synced[K, V]{cache: c}, nil
}

// OnEvict registers the eviction callback on the underlying cache.
// The callback runs with the cache lock held; it must not call back into
// the cache.
func (s *Synced[K, V]) OnEvict(fn func(key K, value V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.OnEvict(fn)
}

// Get retrieves a value by key and marks it as recently used.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

// Peek returns the value for key without updating recency.
func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Peek(key)
}

// Put adds or updates a value, evicting the least recently used entry if the
// cache is full.
func (s *Synced[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(key, value)
}

// Contains reports whether key is present, without updating recency.
func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Contains(key)
}

// Remove deletes a key and reports whether it was present.
func (s *Synced[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(key)
}

// RemoveOldest removes and returns the least recently used entry.
func (s *Synced[K, V]) RemoveOldest() (K, V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.RemoveOldest()
}

// Len returns the number of entries currently in the cache.
func (s *Synced[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Len()
}

// Cap returns the fixed capacity.
func (s *Synced[K, V]) Cap() int {
	return s.cache.Cap()
}

// Keys returns the cached keys ordered from least to most recently used.
func (s *Synced[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Keys()
}

// Snapshot returns a point-in-time listing ordered from least to most
// recently used.
func (s *Synced[K, V]) Snapshot() []Entry[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Snapshot()
}

// Clear removes all entries.
func (s *Synced[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
}
