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

// Community assembles the reverse-chronological feed of one community. Open
// to anonymous viewers; authenticated pages cache under the viewer's scope
// because enrichment flags differ, anonymous pages share the public scope.
func (s *Service) Community(ctx context.Context, req FeedRequest) (models.FeedPage, error) {
	if req.CommunityID == "" {
		metrics.FeedRequestsTotal.WithLabelValues(models.FeedCommunity.String(), "error").Inc()
		return models.FeedPage{}, &ValidationError{Field: "community_id", Reason: "must not be empty"}
	}

	page, limit := s.clampPagination(req)
	key := feedcache.CommunityPageKey(req.CommunityID, scope(req.ViewerID), page, limit)

	if cached, ok := s.cacheGet(key, models.FeedCommunity); ok {
		return cached, nil
	}
	start := time.Now()
	defer s.observe(models.FeedCommunity, start)

	pred := CommunityPredicate{CommunityID: req.CommunityID}
	result, err := s.assembleChronological(ctx, models.FeedCommunity, pred, req.ViewerID, page, limit)
	if err != nil {
		return models.FeedPage{}, err
	}

	s.cacheStore(key, result, s.cfg.CommunityTTL)
	s.logger.Debug().
		Str("feed", models.FeedCommunity.String()).
		Str("community", req.CommunityID).
		Str("scope", scope(req.ViewerID)).
		Int("page", page).
		Int("items", len(result.Items)).
		Msg("assembled feed page")
	return result, nil
}
