// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"context"
	"time"

	"github.com/tomtom215/agora/internal/models"
)

// QueryOptions controls pagination of a candidate fetch. Results are always
// sorted by creation time descending; Skip/Limit apply after the sort.
type QueryOptions struct {
	Limit int
	Skip  int
}

// ContentStore is the opaque document store the assemblers read candidates
// from. Implementations must return items sorted newest-first and must treat
// the predicate as the complete filter — no implicit visibility rules.
type ContentStore interface {
	// FindCandidates returns items matching the predicate.
	FindCandidates(ctx context.Context, pred Predicate, opts QueryOptions) ([]models.ContentItem, error)

	// CountCandidates returns the total number of items matching the
	// predicate, independent of any fetch limit.
	CountCandidates(ctx context.Context, pred Predicate) (int, error)
}

// SocialGraph resolves a viewer's followed authors and joined communities.
type SocialGraph interface {
	Context(ctx context.Context, viewerID string) (*models.ViewerContext, error)
}

// ViewBuilder converts a raw content item plus per-viewer flags into the wire
// shape. It is an external collaborator boundary: the assemblers treat it as
// a black box.
type ViewBuilder interface {
	BuildViewerResponse(ctx context.Context, item models.ContentItem, viewerID string) (models.EntityView, error)
}

// PageCache is the slice of the cache manager the assemblers need. Satisfied
// by *feedcache.Store; narrowed to an interface so tests can observe cache
// traffic and a shared backing store can be swapped in later.
type PageCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
}
