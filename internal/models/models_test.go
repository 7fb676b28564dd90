// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestRefUnmarshalBareID(t *testing.T) {
	var item ContentItem
	data := []byte(`{"id":"p1","author":"u42","created_at":"2026-08-30T10:00:00Z"}`)

	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.Author.ID() != "u42" {
		t.Errorf("expected author id u42, got %q", item.Author.ID())
	}
	if item.Author.Summary() != nil {
		t.Error("expected no summary for bare id reference")
	}
	if !item.Community.IsZero() {
		t.Error("expected zero community reference")
	}
}

func TestRefUnmarshalPopulatedObject(t *testing.T) {
	var item ContentItem
	data := []byte(`{"id":"p2","author":{"id":"u7","name":"Ada"},"community":{"id":"c3","name":"golang"}}`)

	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.Author.ID() != "u7" {
		t.Errorf("expected author id u7, got %q", item.Author.ID())
	}
	if s := item.Author.Summary(); s == nil || s.Name != "Ada" {
		t.Errorf("expected populated author summary, got %+v", s)
	}
	if item.Community.ID() != "c3" {
		t.Errorf("expected community id c3, got %q", item.Community.ID())
	}
}

func TestRefMarshalRoundTrip(t *testing.T) {
	bare := NewRef("u1")
	data, err := json.Marshal(bare)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"u1"` {
		t.Errorf("expected bare id to serialize as string, got %s", data)
	}

	populated := NewPopulatedRef(EntitySummary{ID: "c9", Name: "news"})
	data, err = json.Marshal(populated)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back EntitySummary
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.ID != "c9" || back.Name != "news" {
		t.Errorf("unexpected round trip result: %+v", back)
	}
}

func TestViewerContext(t *testing.T) {
	vc := NewViewerContext("u1", []string{"a1", "a2"}, []string{"c1"})

	if vc.Anonymous() {
		t.Error("expected authenticated context")
	}
	if !vc.Follows("a1") || vc.Follows("a3") {
		t.Error("Follows membership incorrect")
	}
	if !vc.Joined("c1") || vc.Joined("c2") {
		t.Error("Joined membership incorrect")
	}
	if !vc.HasGraph() {
		t.Error("expected HasGraph true")
	}

	empty := NewViewerContext("u2", nil, nil)
	if empty.HasGraph() {
		t.Error("expected HasGraph false for empty graph")
	}

	var nilCtx *ViewerContext
	if !nilCtx.Anonymous() {
		t.Error("nil context should be anonymous")
	}
	if nilCtx.Follows("a1") || nilCtx.Joined("c1") || nilCtx.HasGraph() {
		t.Error("nil context should have no graph")
	}
}

func TestFeedTypeScored(t *testing.T) {
	tests := []struct {
		feedType FeedType
		scored   bool
	}{
		{FeedHome, true},
		{FeedTrending, true},
		{FeedFollowing, false},
		{FeedCommunity, false},
	}
	for _, tt := range tests {
		if got := tt.feedType.Scored(); got != tt.scored {
			t.Errorf("%s.Scored() = %v, want %v", tt.feedType, got, tt.scored)
		}
	}
	if FeedType("unknown").Valid() {
		t.Error("unknown feed type should not be valid")
	}
}
