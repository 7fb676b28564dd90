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

// Home assembles the personalized home feed: scored content from followed
// authors and joined communities within the home window.
//
// Two degenerate cases short-circuit the pipeline:
//   - anonymous viewers get a reverse-chronological page of recent public
//     content, since there is no graph to personalize against;
//   - authenticated viewers with an empty graph get an empty page without a
//     storage query. Both results are still cached under their scope.
func (s *Service) Home(ctx context.Context, req FeedRequest) (models.FeedPage, error) {
	page, limit := s.clampPagination(req)
	key := feedcache.PageKey(models.FeedHome, scope(req.ViewerID), page, limit)

	if cached, ok := s.cacheGet(key, models.FeedHome); ok {
		return cached, nil
	}
	start := time.Now()
	defer s.observe(models.FeedHome, start)

	viewer, err := s.viewerContext(ctx, req.ViewerID)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(models.FeedHome.String(), "error").Inc()
		return models.FeedPage{}, err
	}

	var result models.FeedPage
	switch {
	case viewer.Anonymous():
		pred := RecentPredicate{Since: s.now().Add(-s.cfg.HomeWindow)}
		result, err = s.assembleChronological(ctx, models.FeedHome, pred, req.ViewerID, page, limit)
	case !viewer.HasGraph():
		result = newPage(models.FeedHome, nil, page, limit, 0)
	default:
		pred := NewHomePredicate(viewer, s.now().Add(-s.cfg.HomeWindow))
		result, err = s.assembleScored(ctx, models.FeedHome, pred, viewer, req.ViewerID, page, limit)
	}
	if err != nil {
		return models.FeedPage{}, err
	}

	s.cacheStore(key, result, s.cfg.HomeTTL)
	s.logger.Debug().
		Str("feed", models.FeedHome.String()).
		Str("scope", scope(req.ViewerID)).
		Int("page", page).
		Int("items", len(result.Items)).
		Msg("assembled feed page")
	return result, nil
}
