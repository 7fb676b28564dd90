// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feedcache

import (
	"fmt"
	"testing"
	"time"
)

func TestStoreBasicOperations(t *testing.T) {
	s := New()

	s.Set("key1", "value1", time.Minute)
	value, exists := s.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = s.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestStoreExpiration(t *testing.T) {
	s := New()

	s.Set("key1", "value1", 100*time.Millisecond)

	_, exists := s.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	_, exists = s.Get("key1")
	if exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := New()

	s.Set("key1", "old", time.Minute)
	s.Set("key1", "new", time.Minute)

	value, _ := s.Get("key1")
	if value != "new" {
		t.Errorf("Expected overwrite to win, got %v", value)
	}
}

func TestStoreDelete(t *testing.T) {
	s := New()

	s.Set("key1", "value1", time.Minute)
	s.Delete("key1")

	_, exists := s.Get("key1")
	if exists {
		t.Error("Expected key1 to be deleted")
	}

	// Deleting a missing key is a no-op.
	s.Delete("missing")
}

func TestDeleteByPatternPrefix(t *testing.T) {
	s := New()

	s.Set("feed:home:user123:page:1:limit:20", 1, time.Minute)
	s.Set("feed:home:user123:page:2:limit:20", 2, time.Minute)
	s.Set("feed:home:user456:page:1:limit:20", 3, time.Minute)
	s.Set("feed:trending:public:page:1:limit:20", 4, time.Minute)

	removed := s.DeleteByPattern("feed:home:user123:*")
	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}

	if _, exists := s.Get("feed:home:user456:page:1:limit:20"); !exists {
		t.Error("Unrelated user's key should survive")
	}
	if _, exists := s.Get("feed:trending:public:page:1:limit:20"); !exists {
		t.Error("Trending key should survive")
	}
}

func TestDeleteByPatternPlacement(t *testing.T) {
	s := New()
	keys := []string{
		"feed:community:c1:public:page:1:limit:20",
		"feed:community:c1:u9:page:1:limit:20",
		"feed:community:c2:public:page:1:limit:20",
	}
	for _, k := range keys {
		s.Set(k, k, time.Minute)
	}

	// Wildcard at the end.
	if removed := s.DeleteByPattern("feed:community:c1:*"); removed != 2 {
		t.Errorf("trailing wildcard: expected 2, got %d", removed)
	}

	// Wildcard in the middle.
	s.Set("feed:home:u1:page:1:limit:20", 1, time.Minute)
	s.Set("feed:home:u1:page:2:limit:20", 2, time.Minute)
	if removed := s.DeleteByPattern("feed:home:*:limit:20"); removed != 2 {
		t.Errorf("middle wildcard: expected 2, got %d", removed)
	}

	// Wildcard at the start.
	s.Set("feed:following:u2:page:1:limit:20", 1, time.Minute)
	if removed := s.DeleteByPattern("*:u2:page:1:limit:20"); removed != 1 {
		t.Errorf("leading wildcard: expected 1, got %d", removed)
	}
}

func TestMatchPatternLiterals(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"feed:home:u1:*", "feed:home:u1:page:1:limit:20", true},
		{"feed:home:u1:*", "feed:home:u10:page:1:limit:20", false},
		{"feed:home:u1", "feed:home:u1", true},
		{"feed:home:u1", "feed:home:u1:page:1", false},
		{"*", "anything", true},
		{"*", "", true},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "acb", false},
		// Regex metacharacters are literal.
		{"feed:h.me:*", "feed:home:u1", false},
		{"feed:h.me:*", "feed:h.me:u1", true},
	}
	for _, tt := range tests {
		if got := matchPattern(tt.pattern, tt.key); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
}

func TestStoreClear(t *testing.T) {
	s := New()

	for i := 0; i < 5; i++ {
		s.Set(fmt.Sprintf("key%d", i), i, time.Minute)
	}
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Expected empty store after Clear, got %d entries", s.Len())
	}
}

func TestStoreStats(t *testing.T) {
	s := New()

	s.Set("key1", "value1", time.Minute)
	s.Get("key1") // hit
	s.Get("key2") // miss
	s.Get("key1") // hit

	stats := s.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	hitRate := s.HitRate()
	expected := 100.0 * 2 / 3
	if hitRate < expected-0.01 || hitRate > expected+0.01 {
		t.Errorf("Expected hit rate around %.2f%%, got %.2f%%", expected, hitRate)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()
	done := make(chan struct{})

	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("feed:home:u%d:page:%d:limit:20", g, i%10)
				s.Set(key, i, time.Minute)
				s.Get(key)
				if i%50 == 0 {
					s.DeleteByPattern(fmt.Sprintf("feed:home:u%d:*", g))
				}
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
