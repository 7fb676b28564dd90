// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
)

// NATSConfig holds JetStream subscriber settings.
type NATSConfig struct {
	URL         string
	StreamName  string
	DurableName string
	QueueGroup  string
	AckWait     time.Duration
}

// DefaultNATSConfig returns production defaults against a local broker.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:         natsgo.DefaultURL,
		StreamName:  "AGORA_EVENTS",
		DurableName: "agora-feed",
		QueueGroup:  "agora-feed",
		AckWait:     30 * time.Second,
	}
}

// NewNATSSubscriber creates a durable JetStream subscriber. The queue group
// load-balances invalidation work across replicas so each event is processed
// by exactly one instance.
func NewNATSSubscriber(cfg NATSConfig, wmLogger watermill.LoggerAdapter) (message.Subscriber, error) {
	if wmLogger == nil {
		wmLogger = watermill.NopLogger{}
	}
	if cfg.AckWait <= 0 {
		cfg.AckWait = 30 * time.Second
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				wmLogger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			wmLogger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	subOpts := []natsgo.SubOpt{
		natsgo.AckWait(cfg.AckWait),
		natsgo.DeliverNew(),
	}

	// Bind to the upstream-provisioned stream: subject wildcards cannot name
	// a stream, so auto-provisioning is disabled whenever one is configured.
	autoProvision := true
	if cfg.StreamName != "" {
		subOpts = append(subOpts, natsgo.BindStream(cfg.StreamName))
		autoProvision = false
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		AckWaitTimeout:   cfg.AckWait,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision:    autoProvision,
			SubscribeOptions: subOpts,
			DurablePrefix:    cfg.DurableName,
		},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create nats subscriber: %w", err)
	}
	return sub, nil
}
