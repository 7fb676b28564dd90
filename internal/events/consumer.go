// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/metrics"
	"github.com/tomtom215/agora/internal/models"
)

// ContentWriter is the slice of the content store the consumer writes
// through. Satisfied by *storage.BadgerStore and *storage.MemoryStore.
type ContentWriter interface {
	Put(ctx context.Context, item models.ContentItem) error
	Delete(ctx context.Context, id string) error
}

// Consumer maps domain events to content writes and cache invalidations.
type Consumer struct {
	store  ContentWriter
	inv    *feedcache.Invalidator
	logger zerolog.Logger
}

// NewConsumer wires a consumer.
func NewConsumer(store ContentWriter, inv *feedcache.Invalidator, logger zerolog.Logger) *Consumer {
	return &Consumer{
		store:  store,
		inv:    inv,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// NewRouter builds a watermill router with one no-publisher handler per
// topic. Recoverer keeps a panicking handler from taking the process down;
// there is no retry middleware because handlers never return errors — the
// fire-and-forget contract acks everything.
func NewRouter(sub message.Subscriber, consumer *Consumer, wmLogger watermill.LoggerAdapter) (*message.Router, error) {
	if wmLogger == nil {
		wmLogger = watermill.NopLogger{}
	}

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler("post-created-invalidator", TopicPostCreated, sub, consumer.HandlePostCreated)
	router.AddNoPublisherHandler("post-updated-invalidator", TopicPostUpdated, sub, consumer.HandlePostUpdated)
	router.AddNoPublisherHandler("post-deleted-invalidator", TopicPostDeleted, sub, consumer.HandlePostDeleted)
	router.AddNoPublisherHandler("follow-created-invalidator", TopicFollowCreated, sub, consumer.HandleFollowCreated)

	return router, nil
}

// HandlePostCreated stores the new post and drops every cached page it could
// appear on: the author's followers' home/following feeds and, when the post
// belongs to a community, that community's pages.
func (c *Consumer) HandlePostCreated(msg *message.Message) error {
	return c.handlePost(TopicPostCreated, msg, false)
}

// HandlePostUpdated replaces the stored post and invalidates the same set of
// pages as creation.
func (c *Consumer) HandlePostUpdated(msg *message.Message) error {
	return c.handlePost(TopicPostUpdated, msg, false)
}

// HandlePostDeleted removes the post and additionally drops trending pages,
// since a deleted post must not linger in a globally shared ranking.
func (c *Consumer) HandlePostDeleted(msg *message.Message) error {
	return c.handlePost(TopicPostDeleted, msg, true)
}

func (c *Consumer) handlePost(topic string, msg *message.Message, deletion bool) error {
	var event PostEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Warn().Err(err).Str("topic", topic).Str("message_id", msg.UUID).Msg("undecodable event payload")
		metrics.InvalidationEventsTotal.WithLabelValues(topic, "skipped").Inc()
		return nil
	}
	if event.PostID == "" {
		c.logger.Warn().Str("topic", topic).Str("message_id", msg.UUID).Msg("event missing post id")
		metrics.InvalidationEventsTotal.WithLabelValues(topic, "skipped").Inc()
		return nil
	}

	ctx := msg.Context()
	var err error
	if deletion {
		err = c.store.Delete(ctx, event.PostID)
	} else {
		err = c.store.Put(ctx, event.Item())
	}
	if err != nil {
		// Acked anyway: the cache invalidation below still runs, and the
		// document converges on the next event for this post.
		c.logger.Error().Err(err).Str("topic", topic).Str("post_id", event.PostID).Msg("content store write failed")
		metrics.InvalidationEventsTotal.WithLabelValues(topic, "error").Inc()
	} else {
		metrics.InvalidationEventsTotal.WithLabelValues(topic, "ok").Inc()
	}

	removed := c.inv.InvalidateFollowerFeeds(event.FollowerIDs)
	if event.CommunityID != "" {
		removed += c.inv.InvalidateCommunityFeed(event.CommunityID)
	}
	if deletion {
		removed += c.inv.InvalidateTrendingFeed()
	}

	c.logger.Debug().
		Str("topic", topic).
		Str("post_id", event.PostID).
		Int("keys_removed", removed).
		Msg("processed post event")
	return nil
}

// HandleFollowCreated drops the follower's home and following pages so the
// newly followed author shows up on the next request instead of after TTL.
func (c *Consumer) HandleFollowCreated(msg *message.Message) error {
	var event FollowEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Warn().Err(err).Str("topic", TopicFollowCreated).Str("message_id", msg.UUID).Msg("undecodable event payload")
		metrics.InvalidationEventsTotal.WithLabelValues(TopicFollowCreated, "skipped").Inc()
		return nil
	}
	if event.FollowerID == "" {
		metrics.InvalidationEventsTotal.WithLabelValues(TopicFollowCreated, "skipped").Inc()
		return nil
	}

	removed := c.inv.InvalidateFollowerFeeds([]string{event.FollowerID})
	metrics.InvalidationEventsTotal.WithLabelValues(TopicFollowCreated, "ok").Inc()

	c.logger.Debug().
		Str("follower_id", event.FollowerID).
		Int("keys_removed", removed).
		Msg("processed follow event")
	return nil
}
