// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package storage provides the content item store backing the feed
// assemblers. The production implementation is BadgerDB with a
// creation-time index so candidate scans run newest-first without an
// in-memory sort; MemoryStore mirrors the same semantics for tests and
// single-binary development.
package storage
