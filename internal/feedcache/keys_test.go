// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feedcache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/agora/internal/models"
)

func TestPageKeyDeterministic(t *testing.T) {
	k1 := PageKey(models.FeedHome, "u1", 2, 20)
	k2 := PageKey(models.FeedHome, "u1", 2, 20)
	if k1 != k2 {
		t.Errorf("identical inputs must produce identical keys: %q vs %q", k1, k2)
	}
	if k1 != "feed:home:u1:page:2:limit:20" {
		t.Errorf("unexpected key shape: %q", k1)
	}
}

func TestScopeSentinel(t *testing.T) {
	if Scope("") != models.PublicScope {
		t.Errorf("empty viewer should map to public scope")
	}
	if Scope("u1") != "u1" {
		t.Errorf("viewer id should be its own scope")
	}
}

func TestCommunityKeysDifferByScope(t *testing.T) {
	anon := CommunityPageKey("c1", Scope(""), 1, 20)
	authed := CommunityPageKey("c1", Scope("u7"), 1, 20)
	if anon == authed {
		t.Error("anonymous and authenticated pages must cache under different keys")
	}
	if anon != "feed:community:c1:public:page:1:limit:20" {
		t.Errorf("unexpected anonymous key: %q", anon)
	}
}

func TestInvalidateFeed(t *testing.T) {
	s := New()
	inv := NewInvalidator(s, zerolog.Nop())

	s.Set(PageKey(models.FeedHome, "u1", 1, 20), 1, time.Minute)
	s.Set(PageKey(models.FeedHome, "u1", 2, 20), 2, time.Minute)
	s.Set(PageKey(models.FeedHome, "u2", 1, 20), 3, time.Minute)

	if removed := inv.InvalidateFeed("u1", models.FeedHome); removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if _, ok := s.Get(PageKey(models.FeedHome, "u2", 1, 20)); !ok {
		t.Error("other scope must be untouched")
	}
}

func TestInvalidateFeedRejectsCommunityType(t *testing.T) {
	s := New()
	inv := NewInvalidator(s, zerolog.Nop())

	// A community id equal to some viewer's scope would sit exactly where the
	// scope pattern matches; the type guard keeps the two key shapes apart.
	s.Set(CommunityPageKey("u1", "public", 1, 20), 1, time.Minute)
	s.Set(CommunityPageKey("c1", "u1", 1, 20), 2, time.Minute)

	if removed := inv.InvalidateFeed("u1", models.FeedCommunity); removed != 0 {
		t.Errorf("community type must be a no-op here, removed %d", removed)
	}
	if _, ok := s.Get(CommunityPageKey("u1", "public", 1, 20)); !ok {
		t.Error("community u1 pages must survive a scope-based call")
	}
	if _, ok := s.Get(CommunityPageKey("c1", "u1", 1, 20)); !ok {
		t.Error("viewer-scoped community pages must survive a scope-based call")
	}
}

func TestInvalidateFollowerFeeds(t *testing.T) {
	s := New()
	inv := NewInvalidator(s, zerolog.Nop())

	s.Set(PageKey(models.FeedHome, "u1", 1, 20), 1, time.Minute)
	s.Set(PageKey(models.FeedFollowing, "u1", 1, 20), 2, time.Minute)
	s.Set(PageKey(models.FeedTrending, models.PublicScope, 1, 20), 3, time.Minute)

	removed := inv.InvalidateFollowerFeeds([]string{"u1"})
	if removed != 2 {
		t.Errorf("expected home+following removed, got %d", removed)
	}
	if _, ok := s.Get(PageKey(models.FeedTrending, models.PublicScope, 1, 20)); !ok {
		t.Error("trending must be untouched by follower invalidation")
	}

	if removed := inv.InvalidateFollowerFeeds(nil); removed != 0 {
		t.Errorf("empty input must be a no-op, removed %d", removed)
	}
}

func TestInvalidateCommunityFeedAllScopes(t *testing.T) {
	s := New()
	inv := NewInvalidator(s, zerolog.Nop())

	s.Set(CommunityPageKey("c1", "public", 1, 20), 1, time.Minute)
	s.Set(CommunityPageKey("c1", "u9", 1, 20), 2, time.Minute)
	s.Set(CommunityPageKey("c2", "public", 1, 20), 3, time.Minute)

	if removed := inv.InvalidateCommunityFeed("c1"); removed != 2 {
		t.Errorf("expected both scopes of c1 removed, got %d", removed)
	}
	if _, ok := s.Get(CommunityPageKey("c2", "public", 1, 20)); !ok {
		t.Error("other community must be untouched")
	}
}

func TestInvalidateTrendingFeed(t *testing.T) {
	s := New()
	inv := NewInvalidator(s, zerolog.Nop())

	s.Set(PageKey(models.FeedTrending, models.PublicScope, 1, 20), 1, time.Minute)
	s.Set(PageKey(models.FeedTrending, models.PublicScope, 2, 20), 2, time.Minute)
	s.Set(PageKey(models.FeedHome, "u1", 1, 20), 3, time.Minute)

	if removed := inv.InvalidateTrendingFeed(); removed != 2 {
		t.Errorf("expected 2 trending pages removed, got %d", removed)
	}
	if _, ok := s.Get(PageKey(models.FeedHome, "u1", 1, 20)); !ok {
		t.Error("home feed must survive trending invalidation")
	}
}
