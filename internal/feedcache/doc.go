// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package feedcache provides the process-local TTL cache for assembled feed
// pages, the cache key schema, and the selective invalidation helpers driven
// by mutation events.
//
// The store is a single process-wide instance shared by all assemblers, but it
// is constructed explicitly and injected (never a package global) so tests can
// run isolated instances and a future multi-instance deployment can swap in a
// shared backing store without touching assembler code.
//
// Key schema:
//
//	feed:<feedType>:<scope>:page:<page>:limit:<limit>
//	feed:community:<communityID>:<scope>:page:<page>:limit:<limit>
//
// where scope is a viewer id or the sentinel "public". Key generation is a
// pure function of its components, which is what makes both lookup and
// pattern-based invalidation work.
package feedcache
