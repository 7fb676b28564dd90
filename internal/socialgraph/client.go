// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package socialgraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/agora/internal/metrics"
	"github.com/tomtom215/agora/internal/models"
)

const breakerName = "social-graph"

// ErrGraphUnavailable is returned when the circuit breaker rejects a request
// because the graph service is degraded.
var ErrGraphUnavailable = errors.New("social graph unavailable")

// Config holds the graph service connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// graphResponse is the upstream wire shape for one viewer's graph.
type graphResponse struct {
	Following   []string `json:"following"`
	Communities []string `json:"communities"`
}

// Client fetches viewer graphs over HTTP with circuit breaker protection.
//
// Breaker tuning: opens after a 60% failure rate over at least 10 requests in
// a 1 minute window, waits 30 seconds before probing half-open, and allows 3
// probe requests. The breaker uses real time; tests exercise the HTTP path
// through a stub server rather than mocking the breaker.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[*models.ViewerContext]
	logger  zerolog.Logger
}

// NewClient creates a graph client. A zero Timeout defaults to 5 seconds.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	log := logger.With().Str("component", "socialgraph").Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.ViewerContext](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      cb,
		logger:  log,
	}
}

// Context implements feed.SocialGraph. An unknown viewer id resolves to an
// empty graph, not an error, so a brand-new account still gets a home feed
// response.
func (c *Client) Context(ctx context.Context, viewerID string) (*models.ViewerContext, error) {
	vc, err := c.cb.Execute(func() (*models.ViewerContext, error) {
		return c.fetch(ctx, viewerID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return nil, ErrGraphUnavailable
		}
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return vc, nil
}

// fetch performs one graph lookup without breaker involvement.
func (c *Client) fetch(ctx context.Context, viewerID string) (*models.ViewerContext, error) {
	endpoint := fmt.Sprintf("%s/v1/graph/%s", c.baseURL, url.PathEscape(viewerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build graph request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Decoded below.
	case http.StatusNotFound:
		return models.NewViewerContext(viewerID, nil, nil), nil
	default:
		return nil, fmt.Errorf("graph service returned status %d", resp.StatusCode)
	}

	var body graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode graph response: %w", err)
	}
	return models.NewViewerContext(viewerID, body.Following, body.Communities), nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
