// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"context"

	"github.com/tomtom215/agora/internal/models"
)

// LocalViewBuilder is the in-process ViewBuilder used when no external
// response-builder service is wired. It projects the stored item into the
// wire shape, carrying over populated author/community summaries and leaving
// the per-viewer liked/saved flags false — those belong to the interaction
// service this builder stands in for.
type LocalViewBuilder struct{}

// NewLocalViewBuilder creates the default builder.
func NewLocalViewBuilder() *LocalViewBuilder {
	return &LocalViewBuilder{}
}

// BuildViewerResponse implements ViewBuilder.
func (b *LocalViewBuilder) BuildViewerResponse(_ context.Context, item models.ContentItem, _ string) (models.EntityView, error) {
	view := models.EntityView{
		ID:         item.ID,
		Body:       item.Body,
		MediaURL:   item.MediaURL,
		CreatedAt:  item.CreatedAt,
		Engagement: item.Engagement,
	}

	if summary := item.Author.Summary(); summary != nil {
		view.Author = *summary
	} else {
		view.Author = models.EntitySummary{ID: item.Author.ID()}
	}
	if id := item.Community.ID(); id != "" {
		if summary := item.Community.Summary(); summary != nil {
			view.Community = summary
		} else {
			view.Community = &models.EntitySummary{ID: id}
		}
	}
	return view, nil
}
