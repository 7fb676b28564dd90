// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/metrics"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/scoring"
)

// Config holds the assembler tuning knobs. Zero values are replaced by the
// defaults below in NewService, so a partially-populated Config is safe.
type Config struct {
	// DefaultLimit is the page size applied when the request carries none.
	DefaultLimit int
	// MaxLimit caps the requested page size. Oversized requests are clamped,
	// not rejected.
	MaxLimit int
	// CandidateMultiplier sizes the superset fetched for scored feeds:
	// limit * CandidateMultiplier candidates are ranked before pagination.
	CandidateMultiplier int

	// Candidate recency windows per feed type.
	HomeWindow      time.Duration
	FollowingWindow time.Duration
	TrendingWindow  time.Duration

	// Cache TTLs per feed type.
	HomeTTL      time.Duration
	FollowingTTL time.Duration
	TrendingTTL  time.Duration
	CommunityTTL time.Duration
}

// DefaultConfig returns the production defaults. Following runs on a short
// TTL because it is the feed users most expect to reflect a fresh post.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:        20,
		MaxLimit:            100,
		CandidateMultiplier: 3,
		HomeWindow:          168 * time.Hour,
		FollowingWindow:     720 * time.Hour,
		TrendingWindow:      72 * time.Hour,
		HomeTTL:             5 * time.Minute,
		FollowingTTL:        1 * time.Minute,
		TrendingTTL:         5 * time.Minute,
		CommunityTTL:        5 * time.Minute,
	}
}

// FeedRequest is one feed page request after transport decoding. ViewerID is
// empty for anonymous requests; CommunityID is only set for community feeds.
type FeedRequest struct {
	ViewerID    string
	Page        int
	Limit       int
	CommunityID string
}

// Service owns the four assemblers and the pipeline they share.
type Service struct {
	store  ContentStore
	graph  SocialGraph
	views  ViewBuilder
	cache  PageCache
	cfg    Config
	logger zerolog.Logger

	// now is swappable for deterministic recency scoring in tests.
	now func() time.Time
}

// NewService wires a Service. Zero Config fields fall back to DefaultConfig
// values.
func NewService(store ContentStore, graph SocialGraph, views ViewBuilder, cache PageCache, cfg Config, logger zerolog.Logger) *Service {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.CandidateMultiplier <= 0 {
		cfg.CandidateMultiplier = def.CandidateMultiplier
	}
	if cfg.HomeWindow <= 0 {
		cfg.HomeWindow = def.HomeWindow
	}
	if cfg.FollowingWindow <= 0 {
		cfg.FollowingWindow = def.FollowingWindow
	}
	if cfg.TrendingWindow <= 0 {
		cfg.TrendingWindow = def.TrendingWindow
	}
	if cfg.HomeTTL <= 0 {
		cfg.HomeTTL = def.HomeTTL
	}
	if cfg.FollowingTTL <= 0 {
		cfg.FollowingTTL = def.FollowingTTL
	}
	if cfg.TrendingTTL <= 0 {
		cfg.TrendingTTL = def.TrendingTTL
	}
	if cfg.CommunityTTL <= 0 {
		cfg.CommunityTTL = def.CommunityTTL
	}

	return &Service{
		store:  store,
		graph:  graph,
		views:  views,
		cache:  cache,
		cfg:    cfg,
		logger: logger.With().Str("component", "feed").Logger(),
		now:    time.Now,
	}
}

// clampPagination normalizes page and limit: page floors at 1, a missing
// limit becomes DefaultLimit, and an oversized limit clamps to MaxLimit.
func (s *Service) clampPagination(req FeedRequest) (page, limit int) {
	page = req.Page
	if page < 1 {
		page = 1
	}
	limit = req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return page, limit
}

// cacheGet looks up a cached page and marks it as cache-served. A value of an
// unexpected type counts as a miss; the entry will be overwritten on store.
func (s *Service) cacheGet(key string, feedType models.FeedType) (models.FeedPage, bool) {
	raw, ok := s.cache.Get(key)
	if !ok {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "miss").Inc()
		return models.FeedPage{}, false
	}
	page, ok := raw.(models.FeedPage)
	if !ok {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "miss").Inc()
		return models.FeedPage{}, false
	}
	metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "hit").Inc()
	page.Cached = true
	return page, true
}

// cacheStore writes a freshly assembled page. Pages are stored with
// Cached=false; the flag flips only when read back out.
func (s *Service) cacheStore(key string, page models.FeedPage, ttl time.Duration) {
	page.Cached = false
	s.cache.Set(key, page, ttl)
}

// newPage assembles the response envelope for a freshly built page.
func newPage(feedType models.FeedType, items []models.EntityView, page, limit, total int) models.FeedPage {
	if items == nil {
		items = []models.EntityView{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.FeedPage{
		FeedType: feedType,
		Cached:   false,
		Items:    items,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// scoredItem pairs a candidate with its combined score for ranking.
type scoredItem struct {
	item  models.ContentItem
	score float64
}

// assembleScored runs the scored pipeline: fetch a bounded superset of
// candidates newest-first, rank by combined score, slice out the requested
// page, then enrich. The superset is limit*CandidateMultiplier items — a
// deliberate approximation that keeps ranking O(superset) instead of
// O(window); deep pages beyond the superset come back empty.
func (s *Service) assembleScored(ctx context.Context, feedType models.FeedType, pred Predicate, viewer *models.ViewerContext, viewerID string, page, limit int) (models.FeedPage, error) {
	fetchLimit := limit * s.cfg.CandidateMultiplier
	skip := (page - 1) * limit
	if skip+limit > fetchLimit {
		fetchLimit = skip + limit
	}

	candidates, err := s.store.FindCandidates(ctx, pred, QueryOptions{Limit: fetchLimit})
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "error").Inc()
		return models.FeedPage{}, upstream("fetch candidates", err)
	}
	metrics.FeedCandidatesFetched.WithLabelValues(feedType.String()).Observe(float64(len(candidates)))

	total, err := s.store.CountCandidates(ctx, pred)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "error").Inc()
		return models.FeedPage{}, upstream("count candidates", err)
	}

	now := s.now()
	scored := make([]scoredItem, len(candidates))
	for i, item := range candidates {
		scored[i] = scoredItem{item: item, score: scoring.CombinedScore(item, viewer, feedType, now)}
	}
	// Stable sort so equal scores keep createdAt-descending query order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var ranked []models.ContentItem
	if skip < len(scored) {
		end := skip + limit
		if end > len(scored) {
			end = len(scored)
		}
		ranked = make([]models.ContentItem, 0, end-skip)
		for _, sc := range scored[skip:end] {
			ranked = append(ranked, sc.item)
		}
	}

	items, err := s.enrich(ctx, ranked, viewerID)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "error").Inc()
		return models.FeedPage{}, err
	}
	return newPage(feedType, items, page, limit, total), nil
}

// assembleChronological runs the unscored pipeline: storage already returns
// newest-first, so pagination happens in the query itself.
func (s *Service) assembleChronological(ctx context.Context, feedType models.FeedType, pred Predicate, viewerID string, page, limit int) (models.FeedPage, error) {
	skip := (page - 1) * limit

	candidates, err := s.store.FindCandidates(ctx, pred, QueryOptions{Limit: limit, Skip: skip})
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "error").Inc()
		return models.FeedPage{}, upstream("fetch candidates", err)
	}
	metrics.FeedCandidatesFetched.WithLabelValues(feedType.String()).Observe(float64(len(candidates)))

	total, err := s.store.CountCandidates(ctx, pred)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "error").Inc()
		return models.FeedPage{}, upstream("count candidates", err)
	}

	items, err := s.enrich(ctx, candidates, viewerID)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feedType.String(), "error").Inc()
		return models.FeedPage{}, err
	}
	return newPage(feedType, items, page, limit, total), nil
}

// enrich builds the wire view for each item concurrently. Result order
// matches input order; the first builder error aborts the page.
func (s *Service) enrich(ctx context.Context, items []models.ContentItem, viewerID string) ([]models.EntityView, error) {
	if len(items) == 0 {
		return []models.EntityView{}, nil
	}

	views := make([]models.EntityView, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item models.ContentItem) {
			defer wg.Done()
			views[i], errs[i] = s.views.BuildViewerResponse(ctx, item, viewerID)
		}(i, item)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, upstream("build viewer response", err)
		}
	}
	return views, nil
}

// viewerContext resolves the social graph for an authenticated viewer.
// Anonymous viewers resolve to nil without touching the graph service.
func (s *Service) viewerContext(ctx context.Context, viewerID string) (*models.ViewerContext, error) {
	if viewerID == "" {
		return nil, nil
	}
	vc, err := s.graph.Context(ctx, viewerID)
	if err != nil {
		return nil, upstream("social graph lookup", err)
	}
	return vc, nil
}

// observe records assembly duration for cache-miss builds.
func (s *Service) observe(feedType models.FeedType, start time.Time) {
	metrics.FeedAssemblyDuration.WithLabelValues(feedType.String()).Observe(time.Since(start).Seconds())
}

// scope is a local alias to keep assembler code terse.
func scope(viewerID string) string {
	return feedcache.Scope(viewerID)
}
