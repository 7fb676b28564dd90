// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package metrics defines the Prometheus collectors exposed at /metrics.
// All collectors are registered via promauto at package init.
package metrics
