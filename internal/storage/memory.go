// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/agora/internal/feed"
	"github.com/tomtom215/agora/internal/models"
)

// MemoryStore is an in-memory feed.ContentStore with the same ordering
// semantics as BadgerStore. Intended for tests and development; not bounded.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.ContentItem
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]models.ContentItem)}
}

// Put stores or replaces an item.
func (s *MemoryStore) Put(_ context.Context, item models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

// Get retrieves one item by id.
func (s *MemoryStore) Get(_ context.Context, id string) (models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return models.ContentItem{}, ErrContentNotFound
	}
	return item, nil
}

// Delete removes an item; absent ids are a no-op.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// FindCandidates returns matching items newest-first with skip/limit applied.
func (s *MemoryStore) FindCandidates(ctx context.Context, pred feed.Predicate, opts feed.QueryOptions) ([]models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var matched []models.ContentItem
	for _, item := range s.items {
		if pred.Matches(item) {
			matched = append(matched, item)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Skip >= len(matched) {
		return nil, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// CountCandidates counts matching items.
func (s *MemoryStore) CountCandidates(ctx context.Context, pred feed.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		if pred.Matches(item) {
			count++
		}
	}
	return count, nil
}
