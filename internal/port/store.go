// Package port defines the interfaces the application layer depends on.
package port

import "github.com/bnema/kvlru/lru"

// lru.Synced is the canonical Store implementation.
var _ Store = (*lru.Synced[string, string])(nil)

// Store is the cache surface consumed by the server and CLI layers.
// Implementations must be safe for concurrent use; lru.Synced satisfies this.
type Store interface {
	// Get retrieves a value by key and marks it as recently used.
	// Returns the value and true if found, or "" and false on a miss.
	Get(key string) (string, bool)

	// Put stores a value for the given key. If the store is at capacity,
	// the least recently used entry is evicted.
	Put(key, value string)

	// Contains reports whether key is present, without updating recency.
	Contains(key string) bool

	// Remove deletes a key and reports whether it was present.
	Remove(key string) bool

	// Len returns the number of entries currently in the store.
	Len() int

	// Cap returns the fixed capacity.
	Cap() int

	// Keys returns the stored keys ordered from least to most recently used.
	Keys() []string

	// Snapshot returns a point-in-time listing ordered from least to most
	// recently used.
	Snapshot() []lru.Entry[string, string]

	// Clear removes all entries.
	Clear()
}
