// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"context"
	"time"

	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/models"
)

// Trending assembles the global engagement-ranked feed over the trending
// window. Ranking is viewer-independent (the trending weight vector carries
// no source component), so no social-graph lookup happens here; the viewer
// id only flows into per-item enrichment and the cache scope, because the
// enriched liked/saved flags differ per viewer.
func (s *Service) Trending(ctx context.Context, req FeedRequest) (models.FeedPage, error) {
	page, limit := s.clampPagination(req)
	key := feedcache.PageKey(models.FeedTrending, scope(req.ViewerID), page, limit)

	if cached, ok := s.cacheGet(key, models.FeedTrending); ok {
		return cached, nil
	}
	start := time.Now()
	defer s.observe(models.FeedTrending, start)

	pred := TrendingPredicate{Since: s.now().Add(-s.cfg.TrendingWindow)}
	result, err := s.assembleScored(ctx, models.FeedTrending, pred, nil, req.ViewerID, page, limit)
	if err != nil {
		return models.FeedPage{}, err
	}

	s.cacheStore(key, result, s.cfg.TrendingTTL)
	s.logger.Debug().
		Str("feed", models.FeedTrending.String()).
		Str("scope", scope(req.ViewerID)).
		Int("page", page).
		Int("items", len(result.Items)).
		Msg("assembled feed page")
	return result, nil
}
