// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package feed contains the four feed assemblers (home, following, trending,
// community) and the ports they consume: the content store, the social-graph
// lookup, and the per-item view builder.
//
// Every assembler runs the same pipeline:
//
//	validate pagination → cache check → (hit: respond) |
//	(miss: candidate fetch → [score and rank] → paginate → enrich →
//	 cache store → respond)
//
// No step re-enters an earlier state. A failure after the cache check
// surfaces as a feed-fetch error, never as a partial page. Cache access is
// strictly best-effort: a cache problem degrades to a miss on read and a
// skipped store on write.
package feed
