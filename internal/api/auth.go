// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/agora/internal/logging"
)

type viewerContextKey string

const viewerIDKey viewerContextKey = "viewer_id"

// ViewerExtractor returns middleware that resolves the viewer id from an
// optional Bearer token (HS256, subject claim). Every feed is reachable
// anonymously at the transport layer; a missing or invalid token simply
// yields an empty viewer id and the feed service decides whether that is
// acceptable. Session issuance and refresh live in the auth service.
func ViewerExtractor(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewerID := ""
			if token := bearerToken(r); token != "" && secret != "" {
				id, err := subjectFromToken(token, key)
				if err != nil {
					logger := logging.LoggerFromContext(r.Context())
					logger.Debug().Err(err).Msg("rejected bearer token, treating as anonymous")
				} else {
					viewerID = id
				}
			}

			ctx := context.WithValue(r.Context(), viewerIDKey, viewerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewerID returns the authenticated viewer id, or "" for anonymous.
func ViewerID(ctx context.Context) string {
	if id, ok := ctx.Value(viewerIDKey).(string); ok {
		return id
	}
	return ""
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// subjectFromToken verifies the signature and returns the subject claim.
func subjectFromToken(tokenString string, key []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("read subject claim: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("empty subject claim")
	}
	return subject, nil
}
