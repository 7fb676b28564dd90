// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/agora/internal/feed"
	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/validation"
)

// Handler carries the dependencies the HTTP endpoints need.
type Handler struct {
	feeds *feed.Service
	cache *feedcache.Store

	// ready reports whether dependencies are usable; nil means always ready.
	ready func() error
}

// NewHandler wires a Handler. The ready probe may be nil.
func NewHandler(feeds *feed.Service, cache *feedcache.Store, ready func() error) *Handler {
	return &Handler{feeds: feeds, cache: cache, ready: ready}
}

// feedParams is the validated query shape shared by all feed endpoints.
// Values above max_limit are clamped downstream rather than rejected; the
// validator only rejects nonsense that cannot be clamped meaningfully.
type feedParams struct {
	Page  int `validate:"min=0"`
	Limit int `validate:"min=0"`
}

// parseFeedRequest builds the service request from query parameters and the
// authenticated viewer.
func parseFeedRequest(r *http.Request) (feed.FeedRequest, error) {
	params := feedParams{
		Page:  getIntParam(r, "page", 0),
		Limit: getIntParam(r, "limit", 0),
	}
	if err := validation.ValidateStruct(&params); err != nil {
		return feed.FeedRequest{}, err
	}

	return feed.FeedRequest{
		ViewerID: ViewerID(r.Context()),
		Page:     params.Page,
		Limit:    params.Limit,
	}, nil
}

// serveFeed runs one assembler and writes the envelope.
func (h *Handler) serveFeed(w http.ResponseWriter, r *http.Request, assemble func(feed.FeedRequest) (models.FeedPage, error)) {
	req, err := parseFeedRequest(r)
	if err != nil {
		respondFeedError(w, err)
		return
	}
	req.CommunityID = chi.URLParam(r, "communityID")

	start := time.Now()
	page, err := assemble(req)
	if err != nil {
		respondFeedError(w, err)
		return
	}

	queryTime := int64(0)
	if !page.Cached {
		queryTime = time.Since(start).Milliseconds()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   page,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime,
			Cached:      page.Cached,
		},
	})
}

// HomeFeed handles GET /api/v1/feeds/home.
func (h *Handler) HomeFeed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, func(req feed.FeedRequest) (models.FeedPage, error) {
		return h.feeds.Home(r.Context(), req)
	})
}

// FollowingFeed handles GET /api/v1/feeds/following.
func (h *Handler) FollowingFeed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, func(req feed.FeedRequest) (models.FeedPage, error) {
		return h.feeds.Following(r.Context(), req)
	})
}

// TrendingFeed handles GET /api/v1/feeds/trending.
func (h *Handler) TrendingFeed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, func(req feed.FeedRequest) (models.FeedPage, error) {
		return h.feeds.Trending(r.Context(), req)
	})
}

// CommunityFeed handles GET /api/v1/feeds/communities/{communityID}.
func (h *Handler) CommunityFeed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, func(req feed.FeedRequest) (models.FeedPage, error) {
		return h.feeds.Community(r.Context(), req)
	})
}

// cacheStatsResponse is the wire shape for cache statistics.
type cacheStatsResponse struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	HitRate     float64   `json:"hit_rate"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	stats := h.cache.GetStats()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: cacheStatsResponse{
			Hits:        stats.Hits,
			Misses:      stats.Misses,
			Evictions:   stats.Evictions,
			TotalKeys:   stats.TotalKeys,
			HitRate:     h.cache.HitRate(),
			LastCleanup: stats.LastCleanup,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /api/v1/health/live: process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready: dependencies are usable.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			respondError(w, http.StatusServiceUnavailable, "NOT_READY", err.Error(), nil)
			return
		}
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
