// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Command server runs the Agora feed service: the HTTP API, the in-process
// feed cache, and (when enabled) the NATS invalidation consumer, all under
// one supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/agora/internal/api"
	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/events"
	"github.com/tomtom215/agora/internal/feed"
	"github.com/tomtom215/agora/internal/feedcache"
	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/socialgraph"
	"github.com/tomtom215/agora/internal/storage"
	"github.com/tomtom215/agora/internal/supervisor"
	"github.com/tomtom215/agora/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Bool("nats", cfg.NATS.Enabled).
		Msg("starting agora")

	db, err := openBadger(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open content store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("close content store")
		}
	}()

	store := storage.NewBadgerStore(db)
	cache := feedcache.New()
	invalidator := feedcache.NewInvalidator(cache, logging.Logger())

	var graph feed.SocialGraph
	if cfg.SocialGraph.URL != "" {
		graph = socialgraph.NewClient(socialgraph.Config{
			BaseURL: cfg.SocialGraph.URL,
			Timeout: cfg.SocialGraph.Timeout,
		}, logging.Logger())
	} else {
		logging.Warn().Msg("no social graph configured, all viewers resolve to empty graphs")
		graph = socialgraph.NewStaticGraph()
	}

	feeds := feed.NewService(store, graph, feed.NewLocalViewBuilder(), cache, feed.Config{
		DefaultLimit:        cfg.Feed.DefaultLimit,
		MaxLimit:            cfg.Feed.MaxLimit,
		CandidateMultiplier: cfg.Feed.CandidateMultiplier,
		HomeWindow:          cfg.Feed.HomeWindow,
		FollowingWindow:     cfg.Feed.FollowingWindow,
		TrendingWindow:      cfg.Feed.TrendingWindow,
		HomeTTL:             cfg.Feed.HomeTTL,
		FollowingTTL:        cfg.Feed.FollowingTTL,
		TrendingTTL:         cfg.Feed.TrendingTTL,
		CommunityTTL:        cfg.Feed.CommunityTTL,
	}, logging.Logger())

	handler := api.NewHandler(feeds, cache, func() error {
		if db.IsClosed() {
			return errors.New("content store closed")
		}
		return nil
	})
	router := api.NewRouter(handler, cfg.Server, cfg.Auth.JWTSecret)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := api.NewServer(router, cfg.Server, addr)

	slogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(slogger, supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.Timeout))

	if cfg.NATS.Enabled {
		wmLogger := watermill.NewSlogLogger(slogger)
		sub, err := events.NewNATSSubscriber(events.NATSConfig{
			URL:         cfg.NATS.URL,
			StreamName:  cfg.NATS.Stream,
			DurableName: cfg.NATS.Durable,
			QueueGroup:  cfg.NATS.QueueGroup,
			AckWait:     cfg.NATS.AckWait,
		}, wmLogger)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}

		consumer := events.NewConsumer(store, invalidator, logging.Logger())
		eventRouter, err := events.NewRouter(sub, consumer, wmLogger)
		if err != nil {
			return fmt.Errorf("build event router: %w", err)
		}
		tree.AddMessagingService(services.NewEventsService(eventRouter))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", addr).Msg("supervision tree starting")
	errCh := tree.Root().ServeBackground(ctx)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervision tree: %w", err)
		}
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervision tree: %w", err)
		}
	}

	logging.Info().Msg("shutdown complete")
	return nil
}

// openBadger opens the content database, in memory for development or at the
// configured path for production.
func openBadger(cfg config.StorageConfig) (*badger.DB, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger's default logger bypasses zerolog; silence it and rely on our
	// own logging around store operations.
	opts = opts.WithLogger(nil)
	return badger.Open(opts)
}
