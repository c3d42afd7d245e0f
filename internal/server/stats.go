package server

import "sync/atomic"

// Stats tracks cache traffic counters. All methods are safe for concurrent
// use.
type Stats struct {
	hits      atomic.Int64
	misses    atomic.Int64
	puts      atomic.Int64
	evictions atomic.Int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats {
	return &Stats{}
}

// RecordHit increments the hit counter.
func (s *Stats) RecordHit() { s.hits.Add(1) }

// RecordMiss increments the miss counter.
func (s *Stats) RecordMiss() { s.misses.Add(1) }

// RecordPut increments the put counter.
func (s *Stats) RecordPut() { s.puts.Add(1) }

// RecordEviction increments the eviction counter.
func (s *Stats) RecordEviction() { s.evictions.Add(1) }

// StatsSnapshot is the JSON shape served by /stats.
type StatsSnapshot struct {
	Len       int   `json:"len"`
	Cap       int   `json:"cap"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Puts      int64 `json:"puts"`
	Evictions int64 `json:"evictions"`
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Puts:      s.puts.Load(),
		Evictions: s.evictions.Load(),
	}
}
