// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package scoring implements the per-feed-type ranking functions.
//
// All functions are pure and side-effect free: they read a content item
// snapshot (plus the viewer's social-graph context where relevant) and return
// a score. The assemblers own candidate selection, sorting, and pagination;
// this package only answers "how good is this item for this feed type".
//
// The combined score is a weighted sum of three sub-scores:
//
//	feed type  | engagement | recency | source
//	-----------+------------+---------+-------
//	trending   |        0.6 |     0.4 |      -
//	home       |        0.5 |     0.3 |    0.2
//
// Trending ignores the viewer entirely so that a single cached trending page
// is valid for every viewer within its TTL.
package scoring

import (
	"math"
	"time"

	"github.com/tomtom215/agora/internal/models"
)

// Weights is the per-feed-type weight vector applied to the sub-scores.
type Weights struct {
	Engagement float64
	Recency    float64
	Source     float64
}

// feedWeights is the single source of truth for the weight table above.
// Weight vectors are feed-type constants, never item-dependent.
var feedWeights = map[models.FeedType]Weights{
	models.FeedTrending: {Engagement: 0.6, Recency: 0.4, Source: 0},
	models.FeedHome:     {Engagement: 0.5, Recency: 0.3, Source: 0.2},
}

// WeightsFor returns the weight vector for a feed type. Unscored feed types
// return the home weights so a caller scoring them anyway gets a sensible
// personalized ranking rather than zeros.
func WeightsFor(feedType models.FeedType) Weights {
	if w, ok := feedWeights[feedType]; ok {
		return w
	}
	return feedWeights[models.FeedHome]
}

// Engagement weight constants for the raw interaction counters. Comments
// signal more effort than likes; reposts amplify reach.
const (
	likeWeight    = 1
	commentWeight = 3
	repostWeight  = 2
)

// EngagementScore combines the raw interaction counters into a score in
// [0, 100]. The weighted total is compressed with min(100, 25*log10(T+1)) so
// a handful of viral posts cannot dominate linearly while higher engagement
// still ranks monotonically higher. Zero counts score exactly 0.
func EngagementScore(item models.ContentItem) float64 {
	total := item.Engagement.Likes*likeWeight +
		item.Engagement.Comments*commentWeight +
		item.Engagement.Reposts*repostWeight
	if total <= 0 {
		return 0
	}

	score := 25 * math.Log10(float64(total)+1)
	if score > 100 {
		return 100
	}
	return score
}

// recencyStep maps an age threshold (closed lower bound) to a score. Ordered
// newest first; the first threshold not exceeding the age wins.
var recencySteps = []struct {
	maxAge time.Duration
	score  int
}{
	{1 * time.Hour, 100},
	{6 * time.Hour, 90},
	{24 * time.Hour, 70},
	{48 * time.Hour, 50},
	{72 * time.Hour, 30},
	{168 * time.Hour, 10},
}

// RecencyScore returns a coarse step-function decay of the item's age:
// <1h=100, <6h=90, <24h=70, <48h=50, <72h=30, <168h=10, older=0.
// Boundaries are closed on the lower end: an item exactly 1h old scores 90.
// The coarse steps are deliberately explainable ("today" vs "this week" vs
// "stale") and cheaper to tune than a continuous exponential.
func RecencyScore(item models.ContentItem, now time.Time) int {
	age := now.Sub(item.CreatedAt)
	if age < 0 {
		// Clock skew between writer and ranker; treat future items as brand new.
		age = 0
	}

	for _, step := range recencySteps {
		if age < step.maxAge {
			return step.score
		}
	}
	return 0
}

// Source sub-score constants.
const (
	sourceBoth          = 100
	sourceFollowedOnly  = 80
	sourceCommunityOnly = 60
	sourceNone          = 0
)

// SourceScore rewards content from the viewer's social graph: 100 when the
// author is followed and the community joined, 80 for a followed author alone,
// 60 for a joined community alone, 0 otherwise. Anonymous viewers always
// score 0. Author and community references are dereferenced through
// models.Ref, so bare ids and populated objects behave identically.
func SourceScore(item models.ContentItem, viewer *models.ViewerContext) int {
	if viewer.Anonymous() {
		return sourceNone
	}

	followed := viewer.Follows(item.Author.ID())
	joined := viewer.Joined(item.Community.ID())

	switch {
	case followed && joined:
		return sourceBoth
	case followed:
		return sourceFollowedOnly
	case joined:
		return sourceCommunityOnly
	default:
		return sourceNone
	}
}

// CombinedScore computes the final ranking score for one item under the given
// feed type's weight vector. Ties in combined score are broken upstream by
// original query order (stable sort), which for createdAt-descending candidate
// sets means newer items win ties.
func CombinedScore(item models.ContentItem, viewer *models.ViewerContext, feedType models.FeedType, now time.Time) float64 {
	w := WeightsFor(feedType)

	score := w.Engagement*EngagementScore(item) +
		w.Recency*float64(RecencyScore(item, now))
	if w.Source > 0 {
		score += w.Source * float64(SourceScore(item, viewer))
	}
	return score
}
