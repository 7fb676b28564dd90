// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package models defines the shared data types for the feed service:
// content items, viewer context, feed pages, and the API response envelope.
//
// Types in this package are plain data carriers with no behavior beyond
// accessors and JSON (de)serialization. They are safe to copy and are never
// mutated by the scoring or assembly layers.
package models
