// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package socialgraph

import (
	"context"
	"sync"

	"github.com/tomtom215/agora/internal/models"
)

// StaticGraph is an in-memory feed.SocialGraph for development and tests.
// Viewers not present resolve to an empty graph, matching Client behavior.
type StaticGraph struct {
	mu     sync.RWMutex
	graphs map[string]*models.ViewerContext
}

// NewStaticGraph creates an empty graph.
func NewStaticGraph() *StaticGraph {
	return &StaticGraph{graphs: make(map[string]*models.ViewerContext)}
}

// SetViewer registers a viewer's follows and memberships.
func (g *StaticGraph) SetViewer(viewerID string, followed, joined []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.graphs[viewerID] = models.NewViewerContext(viewerID, followed, joined)
}

// Context implements feed.SocialGraph.
func (g *StaticGraph) Context(_ context.Context, viewerID string) (*models.ViewerContext, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if vc, ok := g.graphs[viewerID]; ok {
		return vc, nil
	}
	return models.NewViewerContext(viewerID, nil, nil), nil
}
