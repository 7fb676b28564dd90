// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package events

import (
	"time"

	"github.com/tomtom215/agora/internal/models"
)

// Topics consumed from NATS. The "content." and "graph." prefixes match the
// upstream services' stream subjects.
const (
	TopicPostCreated   = "content.post.created"
	TopicPostUpdated   = "content.post.updated"
	TopicPostDeleted   = "content.post.deleted"
	TopicFollowCreated = "graph.follow.created"
)

// AllTopics lists every topic the consumer subscribes to.
func AllTopics() []string {
	return []string{TopicPostCreated, TopicPostUpdated, TopicPostDeleted, TopicFollowCreated}
}

// PostEvent is the payload for post created/updated/deleted events. The
// publishing service resolves the author's followers at publish time, so the
// consumer never needs a reverse graph lookup.
type PostEvent struct {
	PostID      string                  `json:"post_id"`
	AuthorID    string                  `json:"author_id"`
	CommunityID string                  `json:"community_id,omitempty"`
	Body        string                  `json:"body,omitempty"`
	MediaURL    string                  `json:"media_url,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	Engagement  models.EngagementCounts `json:"engagement"`
	FollowerIDs []string                `json:"follower_ids,omitempty"`
}

// Item converts the event payload into the stored content shape.
func (e PostEvent) Item() models.ContentItem {
	return models.ContentItem{
		ID:         e.PostID,
		Author:     models.NewRef(e.AuthorID),
		Community:  models.NewRef(e.CommunityID),
		Body:       e.Body,
		MediaURL:   e.MediaURL,
		CreatedAt:  e.CreatedAt,
		Engagement: e.Engagement,
	}
}

// FollowEvent is the payload for graph.follow.created. Only the follower's
// feeds change shape when a follow happens, so that is the only id needed.
type FollowEvent struct {
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
}
