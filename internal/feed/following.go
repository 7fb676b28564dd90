// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"context"
	"time"

	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/metrics"
	"github.com/tomtom215/agora/internal/models"
)

// Following assembles the strictly reverse-chronological feed of content from
// followed authors and joined communities. Unlike home, nothing is scored:
// the contract here is "newest first, no surprises", which is why it also
// runs on the shortest cache TTL.
//
// Anonymous requests are rejected before any cache or storage access.
func (s *Service) Following(ctx context.Context, req FeedRequest) (models.FeedPage, error) {
	if req.ViewerID == "" {
		metrics.FeedRequestsTotal.WithLabelValues(models.FeedFollowing.String(), "error").Inc()
		return models.FeedPage{}, ErrAuthenticationRequired
	}

	page, limit := s.clampPagination(req)
	key := feedcache.PageKey(models.FeedFollowing, req.ViewerID, page, limit)

	if cached, ok := s.cacheGet(key, models.FeedFollowing); ok {
		return cached, nil
	}
	start := time.Now()
	defer s.observe(models.FeedFollowing, start)

	viewer, err := s.viewerContext(ctx, req.ViewerID)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(models.FeedFollowing.String(), "error").Inc()
		return models.FeedPage{}, err
	}

	var result models.FeedPage
	if !viewer.HasGraph() {
		result = newPage(models.FeedFollowing, nil, page, limit, 0)
	} else {
		pred := NewFollowingPredicate(viewer, s.now().Add(-s.cfg.FollowingWindow))
		result, err = s.assembleChronological(ctx, models.FeedFollowing, pred, req.ViewerID, page, limit)
		if err != nil {
			return models.FeedPage{}, err
		}
	}

	s.cacheStore(key, result, s.cfg.FollowingTTL)
	s.logger.Debug().
		Str("feed", models.FeedFollowing.String()).
		Str("scope", req.ViewerID).
		Int("page", page).
		Int("items", len(result.Items)).
		Msg("assembled feed page")
	return result, nil
}
