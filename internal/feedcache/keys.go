// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feedcache

import (
	"fmt"

	"github.com/tomtom215/agora/internal/models"
)

// Scope returns the cache-key scope component for a viewer: the viewer id,
// or the "public" sentinel for anonymous requests.
func Scope(viewerID string) string {
	if viewerID == "" {
		return models.PublicScope
	}
	return viewerID
}

// PageKey builds the cache key for one page of a non-community feed.
// Identical (feedType, scope, page, limit) inputs always produce identical
// keys; that determinism is what pattern invalidation relies on.
func PageKey(feedType models.FeedType, scope string, page, limit int) string {
	return fmt.Sprintf("feed:%s:%s:page:%d:limit:%d", feedType, scope, page, limit)
}

// CommunityPageKey builds the cache key for one page of a community feed.
// The community id sits before the scope so one pattern can drop every page
// of a community across all viewers.
func CommunityPageKey(communityID, scope string, page, limit int) string {
	return fmt.Sprintf("feed:%s:%s:%s:page:%d:limit:%d", models.FeedCommunity, communityID, scope, page, limit)
}

// FeedPattern matches every cached page of one scope+feedType combination.
func FeedPattern(feedType models.FeedType, scope string) string {
	return fmt.Sprintf("feed:%s:%s:*", feedType, scope)
}

// CommunityPattern matches every cached page of one community, any scope.
func CommunityPattern(communityID string) string {
	return fmt.Sprintf("feed:%s:%s:*", models.FeedCommunity, communityID)
}

// TrendingPattern matches every cached trending page.
func TrendingPattern() string {
	return fmt.Sprintf("feed:%s:*", models.FeedTrending)
}
