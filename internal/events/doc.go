// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package events consumes domain mutation events from NATS JetStream and
// turns them into content-store writes and cache invalidations. Mutation
// endpoints live in other services; this consumer is the only write path
// into the feed system.
//
// Consumption is fire-and-forget: a handler failure is logged, counted, and
// acked. Stale cache entries left behind by a lost event self-heal at TTL
// expiry, which is the contract the short TTLs were chosen for. Notably,
// like/unlike traffic publishes no event consumed here; engagement counters
// drift within a TTL window on purpose.
package events
