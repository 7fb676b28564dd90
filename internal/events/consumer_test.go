// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/storage"
)

func newTestConsumer() (*Consumer, *storage.MemoryStore, *feedcache.Store) {
	store := storage.NewMemoryStore()
	cache := feedcache.New()
	inv := feedcache.NewInvalidator(cache, zerolog.Nop())
	return NewConsumer(store, inv, zerolog.Nop()), store, cache
}

func eventMessage(t *testing.T, payload interface{}) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestHandlePostCreatedStoresAndInvalidates(t *testing.T) {
	consumer, store, cache := newTestConsumer()

	cache.Set(feedcache.PageKey(models.FeedHome, "follower1", 1, 20), 1, time.Minute)
	cache.Set(feedcache.PageKey(models.FeedFollowing, "follower1", 1, 20), 2, time.Minute)
	cache.Set(feedcache.CommunityPageKey("c1", "public", 1, 20), 3, time.Minute)
	cache.Set(feedcache.PageKey(models.FeedTrending, models.PublicScope, 1, 20), 4, time.Minute)

	msg := eventMessage(t, PostEvent{
		PostID:      "p1",
		AuthorID:    "a1",
		CommunityID: "c1",
		Body:        "hello",
		CreatedAt:   time.Now(),
		FollowerIDs: []string{"follower1"},
	})
	if err := consumer.HandlePostCreated(msg); err != nil {
		t.Fatalf("handler must not return errors: %v", err)
	}

	item, err := store.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("post not stored: %v", err)
	}
	if item.Author.ID() != "a1" || item.Community.ID() != "c1" {
		t.Errorf("stored item refs wrong: %+v", item)
	}

	for _, key := range []string{
		feedcache.PageKey(models.FeedHome, "follower1", 1, 20),
		feedcache.PageKey(models.FeedFollowing, "follower1", 1, 20),
		feedcache.CommunityPageKey("c1", "public", 1, 20),
	} {
		if _, ok := cache.Get(key); ok {
			t.Errorf("key %q should have been invalidated", key)
		}
	}
	// Creation does not touch trending; the next TTL refresh picks it up.
	if _, ok := cache.Get(feedcache.PageKey(models.FeedTrending, models.PublicScope, 1, 20)); !ok {
		t.Error("trending pages must survive post creation")
	}
}

func TestHandlePostDeletedDropsTrending(t *testing.T) {
	consumer, store, cache := newTestConsumer()
	ctx := context.Background()

	if err := store.Put(ctx, PostEvent{PostID: "p1", AuthorID: "a1", CreatedAt: time.Now()}.Item()); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	cache.Set(feedcache.PageKey(models.FeedTrending, models.PublicScope, 1, 20), 1, time.Minute)

	msg := eventMessage(t, PostEvent{PostID: "p1", AuthorID: "a1"})
	if err := consumer.HandlePostDeleted(msg); err != nil {
		t.Fatalf("handler must not return errors: %v", err)
	}

	if _, err := store.Get(ctx, "p1"); err == nil {
		t.Error("deleted post must leave the store")
	}
	if _, ok := cache.Get(feedcache.PageKey(models.FeedTrending, models.PublicScope, 1, 20)); ok {
		t.Error("deletion must drop trending pages")
	}
}

func TestHandleFollowCreatedInvalidatesFollowerOnly(t *testing.T) {
	consumer, _, cache := newTestConsumer()

	cache.Set(feedcache.PageKey(models.FeedHome, "u1", 1, 20), 1, time.Minute)
	cache.Set(feedcache.PageKey(models.FeedHome, "u2", 1, 20), 2, time.Minute)

	msg := eventMessage(t, FollowEvent{FollowerID: "u1", FolloweeID: "a1"})
	if err := consumer.HandleFollowCreated(msg); err != nil {
		t.Fatalf("handler must not return errors: %v", err)
	}

	if _, ok := cache.Get(feedcache.PageKey(models.FeedHome, "u1", 1, 20)); ok {
		t.Error("follower's home page must be invalidated")
	}
	if _, ok := cache.Get(feedcache.PageKey(models.FeedHome, "u2", 1, 20)); !ok {
		t.Error("other viewers' pages must survive")
	}
}

// Likes and unlikes publish no event at all: engagement-only changes ride
// out the page TTL instead of fanning out invalidations per interaction.
// Only post create/update/delete and follow events may touch the cache.
func TestLikesRideOutTTLWithoutInvalidation(t *testing.T) {
	_, store, cache := newTestConsumer()
	ctx := context.Background()

	post := PostEvent{
		PostID:      "p1",
		AuthorID:    "a1",
		CommunityID: "c1",
		CreatedAt:   time.Now(),
		Engagement:  models.EngagementCounts{Likes: 5},
	}
	if err := store.Put(ctx, post.Item()); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	keys := []string{
		feedcache.PageKey(models.FeedHome, "follower1", 1, 20),
		feedcache.PageKey(models.FeedFollowing, "follower1", 1, 20),
		feedcache.PageKey(models.FeedTrending, models.PublicScope, 1, 20),
		feedcache.CommunityPageKey("c1", "public", 1, 20),
	}
	for n, key := range keys {
		cache.Set(key, n, time.Minute)
	}

	// The consumer subscribes to no like topic, so a like can only ever reach
	// this service as a counter bump on the stored post.
	for _, topic := range AllTopics() {
		if strings.Contains(topic, "like") {
			t.Errorf("no like topic may be consumed, found %q", topic)
		}
	}

	post.Engagement.Likes = 50
	if err := store.Put(ctx, post.Item()); err != nil {
		t.Fatalf("bump engagement: %v", err)
	}

	for _, key := range keys {
		if _, ok := cache.Get(key); !ok {
			t.Errorf("key %q must survive an engagement-only change", key)
		}
	}
}

func TestMalformedPayloadIsAcked(t *testing.T) {
	consumer, _, cache := newTestConsumer()
	cache.Set(feedcache.PageKey(models.FeedHome, "u1", 1, 20), 1, time.Minute)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	if err := consumer.HandlePostCreated(msg); err != nil {
		t.Fatalf("malformed payload must be acked, got %v", err)
	}
	if err := consumer.HandleFollowCreated(msg); err != nil {
		t.Fatalf("malformed payload must be acked, got %v", err)
	}
	if _, ok := cache.Get(feedcache.PageKey(models.FeedHome, "u1", 1, 20)); !ok {
		t.Error("malformed payload must not invalidate anything")
	}
}

func TestRouterDeliversThroughGoChannel(t *testing.T) {
	consumer, store, _ := newTestConsumer()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	router, err := NewRouter(pubSub, consumer, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("create router: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	msg := eventMessage(t, PostEvent{PostID: "p9", AuthorID: "a1", CreatedAt: time.Now()})
	if err := pubSub.Publish(TopicPostCreated, msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if _, err := store.Get(context.Background(), "p9"); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("event never reached the store")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := router.Close(); err != nil {
		t.Errorf("close router: %v", err)
	}
}
