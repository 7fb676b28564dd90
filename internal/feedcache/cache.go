// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feedcache

import (
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/agora/internal/metrics"
)

// Entry represents a cached item with expiration.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Store provides a thread-safe in-memory cache with per-entry TTL and
// wildcard pattern deletion.
//
// Concurrency model: entries are independently keyed and every write is a
// full replacement (no read-modify-write), so concurrent Set calls on the
// same key are last-writer-wins and a sync.RWMutex around the map is all the
// locking required.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	stats   Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// cleanupInterval is how often the background sweep removes expired entries.
// Expired entries are also removed lazily on Get, so the sweep only bounds
// memory held by keys that are never read again.
const cleanupInterval = 5 * time.Minute

// New creates an empty store and starts the background cleanup goroutine.
// The store lives for the process lifetime; entries are never persisted
// across restarts.
func New() *Store {
	s := &Store{
		entries: make(map[string]Entry),
		stats: Stats{
			LastCleanup: time.Now(),
		},
	}

	go s.cleanupLoop()

	return s
}

// Get retrieves a value by key. A miss — absent or expired — returns
// (nil, false); expired entries are deleted on the way out. Get never fails:
// callers treat any non-ok result as "assemble fresh".
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		s.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		s.recordMiss()
		s.recordEvictions(1)
		return nil, false
	}

	s.recordHit()
	return entry.Data, true
}

// Set stores a value with the given TTL, unconditionally overwriting any
// existing entry under the same key.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	total := int64(len(s.entries))
	s.mu.Unlock()

	s.setTotalKeys(total)
}

// Delete removes one entry if present; no-op otherwise.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	_, existed := s.entries[key]
	delete(s.entries, key)
	total := int64(len(s.entries))
	s.mu.Unlock()

	if existed {
		s.recordEvictions(1)
	}
	s.setTotalKeys(total)
}

// DeleteByPattern removes every entry whose key matches the pattern and
// returns the count removed. The pattern language is deliberately small:
// '*' matches any run of characters (including none) and may appear at the
// start, middle, or end; every other character matches itself literally —
// regex metacharacters have no special meaning.
func (s *Store) DeleteByPattern(pattern string) int {
	s.mu.Lock()
	removed := 0
	for key := range s.entries {
		if matchPattern(pattern, key) {
			delete(s.entries, key)
			removed++
		}
	}
	total := int64(len(s.entries))
	s.mu.Unlock()

	if removed > 0 {
		s.recordEvictions(int64(removed))
	}
	s.setTotalKeys(total)
	return removed
}

// Clear removes all entries in a single map replacement. Used by tests and
// operational reset; normal invalidation goes through DeleteByPattern.
func (s *Store) Clear() {
	s.mu.Lock()
	evicted := int64(len(s.entries))
	s.entries = make(map[string]Entry)
	s.mu.Unlock()

	s.recordEvictions(evicted)
	s.setTotalKeys(0)
}

// Len returns the current number of entries, including any not yet swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetStats returns a snapshot of the cache counters.
func (s *Store) GetStats() Stats {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	return Stats{
		Hits:        s.stats.Hits,
		Misses:      s.stats.Misses,
		Evictions:   s.stats.Evictions,
		TotalKeys:   s.stats.TotalKeys,
		LastCleanup: s.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage.
func (s *Store) HitRate() float64 {
	stats := s.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// matchPattern reports whether key matches pattern. Segments between '*'
// wildcards must appear in order; a pattern without a leading '*' is anchored
// at the start, without a trailing '*' at the end.
func matchPattern(pattern, key string) bool {
	if pattern == "" {
		return key == ""
	}
	if !strings.Contains(pattern, "*") {
		return pattern == key
	}

	segments := strings.Split(pattern, "*")

	// Anchored prefix.
	first := segments[0]
	if first != "" {
		if !strings.HasPrefix(key, first) {
			return false
		}
		key = key[len(first):]
	}

	// Anchored suffix.
	last := segments[len(segments)-1]
	if last != "" {
		if !strings.HasSuffix(key, last) {
			return false
		}
		key = key[:len(key)-len(last)]
	}

	// Interior segments must appear in order in the remainder.
	for _, seg := range segments[1 : len(segments)-1] {
		if seg == "" {
			continue
		}
		idx := strings.Index(key, seg)
		if idx < 0 {
			return false
		}
		key = key[idx+len(seg):]
	}
	return true
}

// cleanupLoop periodically removes expired entries.
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

// cleanup removes all expired entries.
func (s *Store) cleanup() {
	now := time.Now()
	s.mu.Lock()
	evicted := int64(0)
	for key, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, key)
			evicted++
		}
	}
	total := int64(len(s.entries))
	s.mu.Unlock()

	s.recordEvictions(evicted)
	s.setTotalKeys(total)

	s.stats.mu.Lock()
	s.stats.LastCleanup = now
	s.stats.mu.Unlock()
}

func (s *Store) recordHit() {
	s.stats.mu.Lock()
	s.stats.Hits++
	s.stats.mu.Unlock()
	metrics.CacheHits.Inc()
}

func (s *Store) recordMiss() {
	s.stats.mu.Lock()
	s.stats.Misses++
	s.stats.mu.Unlock()
	metrics.CacheMisses.Inc()
}

func (s *Store) recordEvictions(n int64) {
	if n == 0 {
		return
	}
	s.stats.mu.Lock()
	s.stats.Evictions += n
	s.stats.mu.Unlock()
	metrics.CacheEvictions.Add(float64(n))
}

func (s *Store) setTotalKeys(n int64) {
	s.stats.mu.Lock()
	s.stats.TotalKeys = n
	s.stats.mu.Unlock()
	metrics.CacheKeys.Set(float64(n))
}
