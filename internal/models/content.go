// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// EntitySummary is the compact author/community representation embedded in
// enriched feed responses.
type EntitySummary struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Ref references an author or community that may arrive from the document
// store either as a bare identifier ("u123") or as a populated object
// ({"id": "u123", "name": "..."}). Scoring and assembly only ever need the
// identifier; the summary is kept when present so the view builder can reuse
// it without another lookup.
type Ref struct {
	id      string
	summary *EntitySummary
}

// NewRef creates a reference from a bare identifier.
func NewRef(id string) Ref {
	return Ref{id: id}
}

// NewPopulatedRef creates a reference carrying a full summary.
func NewPopulatedRef(summary EntitySummary) Ref {
	return Ref{id: summary.ID, summary: &summary}
}

// ID returns the referenced entity's identifier, or "" for an empty reference.
func (r Ref) ID() string {
	return r.id
}

// Summary returns the embedded summary, or nil if the source document carried
// only a bare identifier.
func (r Ref) Summary() *EntitySummary {
	return r.summary
}

// IsZero reports whether the reference is unset. Content items without a
// community have a zero Community reference.
func (r Ref) IsZero() bool {
	return r.id == ""
}

// UnmarshalJSON accepts either a JSON string or an object with an "id" field.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.id = id
		r.summary = nil
		return nil
	}

	var summary EntitySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return err
	}
	r.id = summary.ID
	if summary.ID != "" {
		r.summary = &summary
	}
	return nil
}

// MarshalJSON preserves the original shape: populated references serialize as
// objects, bare references as strings.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.summary != nil {
		return json.Marshal(r.summary)
	}
	return json.Marshal(r.id)
}

// EngagementCounts holds the raw interaction counters for a content item.
// Absent counters unmarshal to zero.
type EngagementCounts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Reposts  int `json:"reposts"`
}

// ContentItem is the rankable unit: a post as read from the document store.
// The scoring engine treats items as immutable snapshots; all mutation happens
// in the content-management services upstream.
type ContentItem struct {
	ID         string           `json:"id"`
	Author     Ref              `json:"author"`
	Community  Ref              `json:"community,omitempty"`
	Body       string           `json:"body,omitempty"`
	MediaURL   string           `json:"media_url,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Engagement EngagementCounts `json:"engagement"`
}

// EntityView is the wire shape for a single feed item after per-viewer
// enrichment by the view builder.
type EntityView struct {
	ID         string           `json:"id"`
	Body       string           `json:"body,omitempty"`
	MediaURL   string           `json:"media_url,omitempty"`
	Author     EntitySummary    `json:"author"`
	Community  *EntitySummary   `json:"community,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Engagement EngagementCounts `json:"engagement"`
	Liked      bool             `json:"liked"`
	Saved      bool             `json:"saved"`
}
