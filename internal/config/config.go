// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package config defines the service configuration and its layered loader.
// Precedence is env vars over an optional YAML file over built-in defaults.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Feed        FeedConfig        `koanf:"feed"`
	Storage     StorageConfig     `koanf:"storage"`
	SocialGraph SocialGraphConfig `koanf:"socialgraph"`
	NATS        NATSConfig        `koanf:"nats"`
	Auth        AuthConfig        `koanf:"auth"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// FeedConfig holds assembler tuning.
type FeedConfig struct {
	DefaultLimit        int           `koanf:"default_limit"`
	MaxLimit            int           `koanf:"max_limit"`
	CandidateMultiplier int           `koanf:"candidate_multiplier"`
	HomeWindow          time.Duration `koanf:"home_window"`
	FollowingWindow     time.Duration `koanf:"following_window"`
	TrendingWindow      time.Duration `koanf:"trending_window"`
	HomeTTL             time.Duration `koanf:"home_ttl"`
	FollowingTTL        time.Duration `koanf:"following_ttl"`
	TrendingTTL         time.Duration `koanf:"trending_ttl"`
	CommunityTTL        time.Duration `koanf:"community_ttl"`
}

// StorageConfig holds the content store location. An empty Path or
// InMemory=true opens Badger without a backing directory, which is the
// development mode.
type StorageConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// SocialGraphConfig holds the upstream graph service settings. An empty URL
// disables the HTTP client and falls back to an empty in-process graph; feeds
// then behave as if every viewer followed nobody.
type SocialGraphConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// NATSConfig holds the event consumer settings.
type NATSConfig struct {
	Enabled    bool          `koanf:"enabled"`
	URL        string        `koanf:"url"`
	Stream     string        `koanf:"stream"`
	Durable    string        `koanf:"durable"`
	QueueGroup string        `koanf:"queue_group"`
	AckWait    time.Duration `koanf:"ack_wait"`
}

// AuthConfig holds viewer-identity settings. The secret verifies inbound
// bearer tokens minted by the authentication service.
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

// LoggingConfig mirrors logging.Config for the loader.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, the lowest precedence layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Feed: FeedConfig{
			DefaultLimit:        20,
			MaxLimit:            100,
			CandidateMultiplier: 3,
			HomeWindow:          168 * time.Hour,
			FollowingWindow:     720 * time.Hour,
			TrendingWindow:      72 * time.Hour,
			HomeTTL:             5 * time.Minute,
			FollowingTTL:        time.Minute,
			TrendingTTL:         5 * time.Minute,
			CommunityTTL:        5 * time.Minute,
		},
		Storage: StorageConfig{
			Path:     "/data/agora",
			InMemory: false,
		},
		SocialGraph: SocialGraphConfig{
			URL:     "",
			Timeout: 5 * time.Second,
		},
		NATS: NATSConfig{
			Enabled:    false,
			URL:        "nats://127.0.0.1:4222",
			Stream:     "AGORA_EVENTS",
			Durable:    "agora-feed",
			QueueGroup: "agora-feed",
			AckWait:    30 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks cross-field consistency after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Feed.DefaultLimit < 1 {
		return fmt.Errorf("feed.default_limit must be at least 1")
	}
	if c.Feed.MaxLimit < c.Feed.DefaultLimit {
		return fmt.Errorf("feed.max_limit %d below feed.default_limit %d", c.Feed.MaxLimit, c.Feed.DefaultLimit)
	}
	if c.Feed.CandidateMultiplier < 1 {
		return fmt.Errorf("feed.candidate_multiplier must be at least 1")
	}
	for name, d := range map[string]time.Duration{
		"feed.home_window":      c.Feed.HomeWindow,
		"feed.following_window": c.Feed.FollowingWindow,
		"feed.trending_window":  c.Feed.TrendingWindow,
		"feed.home_ttl":         c.Feed.HomeTTL,
		"feed.following_ttl":    c.Feed.FollowingTTL,
		"feed.trending_ttl":     c.Feed.TrendingTTL,
		"feed.community_ttl":    c.Feed.CommunityTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path required unless storage.in_memory is set")
	}
	if c.SocialGraph.URL != "" {
		if _, err := url.ParseRequestURI(c.SocialGraph.URL); err != nil {
			return fmt.Errorf("socialgraph.url invalid: %w", err)
		}
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("nats.url required when nats.enabled is set")
	}
	return nil
}
