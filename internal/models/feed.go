// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

// FeedType identifies one of the four feed variants served by the assemblers.
type FeedType string

// Feed type constants. Home and trending are scored; following and community
// are reverse-chronological.
const (
	FeedHome      FeedType = "home"
	FeedFollowing FeedType = "following"
	FeedTrending  FeedType = "trending"
	FeedCommunity FeedType = "community"
)

// String implements fmt.Stringer.
func (f FeedType) String() string {
	return string(f)
}

// Valid reports whether f is one of the known feed types.
func (f FeedType) Valid() bool {
	switch f {
	case FeedHome, FeedFollowing, FeedTrending, FeedCommunity:
		return true
	}
	return false
}

// Scored reports whether this feed type ranks candidates with the scoring
// engine. Unscored feeds are served reverse-chronological straight from
// storage.
func (f FeedType) Scored() bool {
	return f == FeedHome || f == FeedTrending
}

// PublicScope is the cache-key scope component for anonymous requests.
const PublicScope = "public"

// Pagination carries page metadata for a feed response. Total is the full
// candidate count for the predicate, independent of how many items were
// fetched for ranking.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// FeedPage is the cacheable unit produced by an assembler. Pages are immutable
// once stored: a refresh replaces the whole page, it never patches items in
// place.
type FeedPage struct {
	FeedType   FeedType     `json:"feed_type"`
	Cached     bool         `json:"cached"`
	Items      []EntityView `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// ViewerContext carries the per-request social-graph snapshot used by the
// scoring engine and the home/following candidate predicates. A nil
// *ViewerContext or empty ViewerID means an anonymous request.
type ViewerContext struct {
	ViewerID           string
	FollowedAuthorIDs  map[string]struct{}
	JoinedCommunityIDs map[string]struct{}
}

// NewViewerContext builds a ViewerContext from social-graph lookup results.
func NewViewerContext(viewerID string, followed, joined []string) *ViewerContext {
	vc := &ViewerContext{
		ViewerID:           viewerID,
		FollowedAuthorIDs:  make(map[string]struct{}, len(followed)),
		JoinedCommunityIDs: make(map[string]struct{}, len(joined)),
	}
	for _, id := range followed {
		vc.FollowedAuthorIDs[id] = struct{}{}
	}
	for _, id := range joined {
		vc.JoinedCommunityIDs[id] = struct{}{}
	}
	return vc
}

// Anonymous reports whether the context belongs to an unauthenticated viewer.
func (v *ViewerContext) Anonymous() bool {
	return v == nil || v.ViewerID == ""
}

// Follows reports whether the viewer follows the given author.
func (v *ViewerContext) Follows(authorID string) bool {
	if v == nil || authorID == "" {
		return false
	}
	_, ok := v.FollowedAuthorIDs[authorID]
	return ok
}

// Joined reports whether the viewer is a member of the given community.
func (v *ViewerContext) Joined(communityID string) bool {
	if v == nil || communityID == "" {
		return false
	}
	_, ok := v.JoinedCommunityIDs[communityID]
	return ok
}

// HasGraph reports whether the viewer follows at least one author or has
// joined at least one community. Home feeds short-circuit to an empty page
// when this is false.
func (v *ViewerContext) HasGraph() bool {
	return v != nil && (len(v.FollowedAuthorIDs) > 0 || len(v.JoinedCommunityIDs) > 0)
}

// FollowedIDs returns the followed author ids as a slice, for predicate
// construction. Order is unspecified.
func (v *ViewerContext) FollowedIDs() []string {
	if v == nil {
		return nil
	}
	ids := make([]string, 0, len(v.FollowedAuthorIDs))
	for id := range v.FollowedAuthorIDs {
		ids = append(ids, id)
	}
	return ids
}

// JoinedIDs returns the joined community ids as a slice.
func (v *ViewerContext) JoinedIDs() []string {
	if v == nil {
		return nil
	}
	ids := make([]string, 0, len(v.JoinedCommunityIDs))
	for id := range v.JoinedCommunityIDs {
		ids = append(ids, id)
	}
	return ids
}
