// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package socialgraph resolves a viewer's followed authors and joined
// communities from the upstream graph service. The HTTP client is wrapped in
// a circuit breaker so a degraded graph service sheds load fast instead of
// stalling every personalized feed request behind timeouts.
package socialgraph
