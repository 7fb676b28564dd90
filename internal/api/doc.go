// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package api exposes the feed service over HTTP: the four feed endpoints,
// cache statistics, health probes, and the Prometheus scrape endpoint. All
// responses use the envelope in models.APIResponse.
package api
