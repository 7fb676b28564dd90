// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feedcache

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/agora/internal/metrics"
	"github.com/tomtom215/agora/internal/models"
)

// Invalidator exposes the selective invalidation entry points called from the
// mutation side (event consumer, admin endpoints). Every operation is
// best-effort and returns the number of keys removed: callers may log the
// outcome but must never propagate it as a mutation failure — a stale page
// self-heals at its next TTL expiry.
type Invalidator struct {
	store  *Store
	logger zerolog.Logger
}

// NewInvalidator wraps a store with logging and metrics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewInvalidator(store *Store, logger zerolog.Logger) *Invalidator {
	return &Invalidator{
		store:  store,
		logger: logger.With().Str("component", "invalidator").Logger(),
	}
}

// InvalidateFeed removes all cached pages for one scope+feedType. Community
// keys embed the community id where the other feeds hold the scope, so the
// scope pattern cannot address them: community invalidation goes through
// InvalidateCommunityFeed, and FeedCommunity is rejected here.
func (i *Invalidator) InvalidateFeed(scope string, feedType models.FeedType) int {
	if feedType == models.FeedCommunity {
		i.logger.Warn().
			Str("scope", scope).
			Msg("community pages are keyed by community id, use InvalidateCommunityFeed")
		return 0
	}

	removed := i.store.DeleteByPattern(FeedPattern(feedType, scope))
	i.record("feed", removed)

	i.logger.Debug().
		Str("feed_type", feedType.String()).
		Str("scope", scope).
		Int("removed", removed).
		Msg("invalidated feed")
	return removed
}

// InvalidateFollowerFeeds removes the home and following pages of every given
// follower. Called after a user publishes or edits a post, since those
// followers' personalized feeds are now stale. No-op on empty input.
//
// Deliberately NOT called on likes/unlikes: engagement-only changes ride out
// the TTL instead of fanning out an invalidation per interaction.
func (i *Invalidator) InvalidateFollowerFeeds(followerIDs []string) int {
	if len(followerIDs) == 0 {
		return 0
	}

	removed := 0
	for _, id := range followerIDs {
		scope := Scope(id)
		removed += i.store.DeleteByPattern(FeedPattern(models.FeedHome, scope))
		removed += i.store.DeleteByPattern(FeedPattern(models.FeedFollowing, scope))
	}
	i.record("followers", removed)

	i.logger.Debug().
		Int("followers", len(followerIDs)).
		Int("removed", removed).
		Msg("invalidated follower feeds")
	return removed
}

// InvalidateCommunityFeed removes all cached pages of one community, across
// every scope.
func (i *Invalidator) InvalidateCommunityFeed(communityID string) int {
	removed := i.store.DeleteByPattern(CommunityPattern(communityID))
	i.record("community", removed)

	i.logger.Debug().
		Str("community_id", communityID).
		Int("removed", removed).
		Msg("invalidated community feed")
	return removed
}

// InvalidateTrendingFeed removes all trending pages. Trending is global, so
// any content change that could shift the ranking drops the whole set.
func (i *Invalidator) InvalidateTrendingFeed() int {
	removed := i.store.DeleteByPattern(TrendingPattern())
	i.record("trending", removed)

	i.logger.Debug().
		Int("removed", removed).
		Msg("invalidated trending feed")
	return removed
}

func (i *Invalidator) record(kind string, removed int) {
	metrics.InvalidationsTotal.WithLabelValues(kind).Inc()
	if removed > 0 {
		metrics.InvalidationKeysRemoved.Add(float64(removed))
	}
}
