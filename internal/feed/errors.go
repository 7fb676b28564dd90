// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package feed

import (
	"errors"
	"fmt"
)

// ErrAuthenticationRequired is returned when a personalized feed is requested
// without a viewer. Detected before any query is issued.
var ErrAuthenticationRequired = errors.New("authentication required")

// ValidationError reports a bad or missing request parameter. Detected before
// any query is issued, so the caller can map it to a 400 without ambiguity.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError wraps a storage or social-graph failure. It aborts the
// current assembly; no partial or stale-cache fallback is attempted.
type UpstreamError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// upstream wraps err as an UpstreamError unless it is nil.
func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}
