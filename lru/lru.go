package lru

import (
	"container/list"
	"fmt"
)

// Entry is a key-value pair as reported by Snapshot.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a bounded LRU (Least Recently Used) cache with a fixed capacity.
//
// When the cache reaches capacity, the least recently accessed entry is
// evicted to make room for new entries. Both Get and Put mark an entry as
// recently used; Peek, Contains, Len and Snapshot never reorder anything.
//
// Cache is not safe for concurrent use. Callers that share a cache across
// goroutines should use Synced, which guards every operation with a single
// lock.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List // Front = most recent, Back = least recent
	onEvict  func(K, V)
}

// entry holds a key-value pair in the LRU cache.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a new LRU cache with the given capacity.
// Capacity must be at least 1; otherwise an error is returned and the cache
// is never constructed.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("lru: capacity must be at least 1, got %d", capacity)
	}
	return &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}, nil
}

// MustNew is like New but panics on invalid capacity. Intended for
// package-level initialization with constant capacities.
func MustNew[K comparable, V any](capacity int) *Cache[K, V] {
	c, err := New[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return c
}

// OnEvict registers a callback invoked whenever an entry is evicted to make
// room for a new one. The callback runs synchronously inside Put, after the
// entry has been removed from both internal structures. Explicit removals
// (Remove, RemoveOldest, Clear) do not trigger it.
func (c *Cache[K, V]) OnEvict(fn func(key K, value V)) {
	c.onEvict = fn
}

// Get retrieves a value by key and marks it as recently used.
// Returns the value and true if found, or the zero value and false if not
// found. A miss has no side effect on the eviction order.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Peek returns the value for key without marking it as recently used.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if elem, ok := c.items[key]; ok {
		return elem.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put adds or updates a value in the cache.
// If the key already exists, its value is updated and it's marked as recently
// used; the size does not change. If the key is new and the cache is at
// capacity, exactly one entry, the least recently used, is evicted before the
// insert.
func (c *Cache[K, V]) Put(key K, value V) {
	// Update existing entry
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*entry[K, V]).value = value
		return
	}

	// Evict LRU entry if at capacity
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}

	// Add new entry at front (most recent)
	elem := c.order.PushFront(&entry[K, V]{key: key, value: value})
	c.items[key] = elem
}

// Contains reports whether key is present, without updating recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Remove deletes a key from the cache and reports whether it was present.
// Removing an absent key is a no-op.
func (c *Cache[K, V]) Remove(key K) bool {
	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.items, key)
	return true
}

// RemoveOldest removes and returns the least recently used entry.
// Returns zero values and false when the cache is empty.
func (c *Cache[K, V]) RemoveOldest() (K, V, bool) {
	oldest := c.order.Back()
	if oldest == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	ent := oldest.Value.(*entry[K, V])
	c.order.Remove(oldest)
	delete(c.items, ent.key)
	return ent.key, ent.value, true
}

// Len returns the number of entries currently in the cache.
func (c *Cache[K, V]) Len() int {
	return c.order.Len()
}

// Cap returns the fixed capacity the cache was constructed with.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the cached keys ordered from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		keys = append(keys, elem.Value.(*entry[K, V]).key)
	}
	return keys
}

// Snapshot returns a point-in-time listing of all entries ordered from least
// to most recently used. The returned slice is a copy; mutating it does not
// affect the cache, and taking it does not affect recency.
func (c *Cache[K, V]) Snapshot() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		ent := elem.Value.(*entry[K, V])
		entries = append(entries, Entry[K, V]{Key: ent.key, Value: ent.value})
	}
	return entries
}

// Clear removes all entries from the cache. Capacity is unchanged.
func (c *Cache[K, V]) Clear() {
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}

// evictOldest drops the back of the recency list from both structures and
// fires the eviction callback.
func (c *Cache[K, V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	ent := oldest.Value.(*entry[K, V])
	c.order.Remove(oldest)
	delete(c.items, ent.key)
	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}
