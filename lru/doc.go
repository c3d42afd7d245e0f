// Package lru provides a generic bounded cache with least-recently-used
// eviction.
//
// The cache combines a hash index with a doubly linked recency list, so Get,
// Put, eviction and explicit removal all run in O(1). Two flavors are
// provided:
//
//   - [Cache]: the single-threaded core. Every operation completes
//     synchronously and no internal locking is performed.
//   - [Synced]: a [Cache] guarded by a single sync.RWMutex, for callers that
//     share one cache across goroutines.
//
// Eviction is purely capacity-driven: there is no TTL, no background
// cleanup, and no time-based expiry. A Put on a full cache evicts exactly
// the least recently touched entry, where both Get hits and Puts count as
// touches.
package lru
