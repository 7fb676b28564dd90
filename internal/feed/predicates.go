// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"time"

	"github.com/tomtom215/agora/internal/models"
)

// Predicate is the fixed contract between the assemblers and the content
// store: a typed, self-contained candidate filter. Implementations carry
// their parameters as struct fields so a store backend can either evaluate
// Matches directly (memory, badger scan) or translate the struct into a
// native query.
type Predicate interface {
	Matches(item models.ContentItem) bool
}

// HomePredicate selects items authored by followed users or posted in joined
// communities within the home recency window.
type HomePredicate struct {
	authors     map[string]struct{}
	communities map[string]struct{}
	Since       time.Time
}

// NewHomePredicate builds the home candidate filter from a viewer's social
// graph snapshot.
func NewHomePredicate(viewer *models.ViewerContext, since time.Time) HomePredicate {
	p := HomePredicate{
		authors:     make(map[string]struct{}),
		communities: make(map[string]struct{}),
		Since:       since,
	}
	if viewer != nil {
		for id := range viewer.FollowedAuthorIDs {
			p.authors[id] = struct{}{}
		}
		for id := range viewer.JoinedCommunityIDs {
			p.communities[id] = struct{}{}
		}
	}
	return p
}

// Matches implements Predicate.
func (p HomePredicate) Matches(item models.ContentItem) bool {
	if item.CreatedAt.Before(p.Since) {
		return false
	}
	if _, ok := p.authors[item.Author.ID()]; ok {
		return true
	}
	if id := item.Community.ID(); id != "" {
		if _, ok := p.communities[id]; ok {
			return true
		}
	}
	return false
}

// FollowingPredicate selects the same graph-scoped items as HomePredicate but
// over the (typically larger) following window. Kept as its own type so the
// two windows can diverge without the store caring.
type FollowingPredicate struct {
	authors     map[string]struct{}
	communities map[string]struct{}
	Since       time.Time
}

// NewFollowingPredicate builds the following candidate filter.
func NewFollowingPredicate(viewer *models.ViewerContext, since time.Time) FollowingPredicate {
	home := NewHomePredicate(viewer, since)
	return FollowingPredicate{
		authors:     home.authors,
		communities: home.communities,
		Since:       since,
	}
}

// Matches implements Predicate.
func (p FollowingPredicate) Matches(item models.ContentItem) bool {
	return HomePredicate{authors: p.authors, communities: p.communities, Since: p.Since}.Matches(item)
}

// TrendingPredicate selects all items within the trending window, globally,
// regardless of viewer.
type TrendingPredicate struct {
	Since time.Time
}

// Matches implements Predicate.
func (p TrendingPredicate) Matches(item models.ContentItem) bool {
	return !item.CreatedAt.Before(p.Since)
}

// RecentPredicate selects all items within a window. Used for the anonymous
// home fallback, which is a plain reverse-chronological slice of recent
// content.
type RecentPredicate struct {
	Since time.Time
}

// Matches implements Predicate.
func (p RecentPredicate) Matches(item models.ContentItem) bool {
	return !item.CreatedAt.Before(p.Since)
}

// CommunityPredicate selects items scoped to one community.
type CommunityPredicate struct {
	CommunityID string
}

// Matches implements Predicate.
func (p CommunityPredicate) Matches(item models.ContentItem) bool {
	return item.Community.ID() == p.CommunityID
}
