// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package services

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventsService runs the watermill invalidation router under supervision.
// Router.Run blocks until the context is canceled, which maps directly onto
// suture's contract; a returned error triggers a supervised restart with the
// durable consumer resuming where it left off.
type EventsService struct {
	router *message.Router
}

// NewEventsService wraps a router.
func NewEventsService(router *message.Router) *EventsService {
	return &EventsService{router: router}
}

// Serve implements suture.Service.
func (s *EventsService) Serve(ctx context.Context) error {
	if err := s.router.Run(ctx); err != nil {
		return err
	}
	return ctx.Err()
}

// String names the service in supervisor logs.
func (s *EventsService) String() string {
	return "events-consumer"
}
