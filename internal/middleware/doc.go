// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package middleware holds the chi-compatible HTTP middleware: request id
// propagation and Prometheus request instrumentation. Recovery, real-ip, and
// rate limiting come from chi and httprate directly.
package middleware
