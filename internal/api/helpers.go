// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agora/internal/feed"
	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/socialgraph"
	"github.com/tomtom215/agora/internal/validation"
)

// sanitizeLogValue strips control characters so request-supplied strings
// cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes the envelope with content headers and an ETag.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("marshal response failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("write response failed")
	}
}

// generateETag hashes the body with FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError writes the error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("api error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondFeedError maps service errors onto the documented error codes.
// Validation failures were detected before any query, so they are safe to
// echo; everything else collapses into FEED_FETCH_ERROR without leaking
// upstream detail.
func respondFeedError(w http.ResponseWriter, err error) {
	var verr *feed.ValidationError
	var ferr *validation.FieldError

	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(), nil)
	case errors.As(err, &ferr):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, ferr.Error(), nil)
	case errors.Is(err, feed.ErrAuthenticationRequired):
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthenticationRequired, "authentication required for this feed", nil)
	case errors.Is(err, socialgraph.ErrGraphUnavailable):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeFeedFetch, "feed temporarily unavailable", err)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeFeedFetch, "failed to assemble feed", err)
	}
}

// getIntParam reads an integer query parameter, falling back on absence or
// garbage. Range handling happens in the service's clamp step.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
