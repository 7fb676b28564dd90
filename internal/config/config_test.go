// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Feed.DefaultLimit != 20 || cfg.Feed.MaxLimit != 100 {
		t.Errorf("unexpected page size defaults: %d/%d", cfg.Feed.DefaultLimit, cfg.Feed.MaxLimit)
	}
	if cfg.Feed.FollowingTTL != time.Minute {
		t.Errorf("following TTL default should be the shortest: %v", cfg.Feed.FollowingTTL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"max below default limit", func(c *Config) { c.Feed.MaxLimit = 5 }},
		{"zero multiplier", func(c *Config) { c.Feed.CandidateMultiplier = 0 }},
		{"negative ttl", func(c *Config) { c.Feed.HomeTTL = -time.Second }},
		{"missing storage path", func(c *Config) { c.Storage.Path = "" }},
		{"bad graph url", func(c *Config) { c.SocialGraph.URL = "::not-a-url" }},
		{"nats enabled without url", func(c *Config) { c.NATS.Enabled = true; c.NATS.URL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
feed:
  default_limit: 10
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("AGORA_SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Env beats file, file beats defaults.
	if cfg.Server.Port != 9999 {
		t.Errorf("env override lost: port %d", cfg.Server.Port)
	}
	if cfg.Feed.DefaultLimit != 10 {
		t.Errorf("file override lost: default_limit %d", cfg.Feed.DefaultLimit)
	}
	if cfg.Feed.MaxLimit != 100 {
		t.Errorf("default lost: max_limit %d", cfg.Feed.MaxLimit)
	}
}

func TestLoadRejectsInvalidLayeredConfig(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("AGORA_SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation failure for out-of-range port")
	}
}
