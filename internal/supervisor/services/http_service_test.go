// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type mockServer struct {
	listenErr   error
	listenBlock chan struct{}
	shutdowns   int
}

func (m *mockServer) ListenAndServe() error {
	if m.listenBlock != nil {
		<-m.listenBlock
		return http.ErrServerClosed
	}
	return m.listenErr
}

func (m *mockServer) Shutdown(_ context.Context) error {
	m.shutdowns++
	if m.listenBlock != nil {
		close(m.listenBlock)
	}
	return nil
}

func TestHTTPServicePropagatesListenError(t *testing.T) {
	srv := &mockServer{listenErr: errors.New("port in use")}
	svc := NewHTTPService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || err.Error() != "port in use" {
		t.Fatalf("expected listen error, got %v", err)
	}
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	srv := &mockServer{listenBlock: make(chan struct{})}
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
	if srv.shutdowns != 1 {
		t.Errorf("expected exactly one shutdown call, got %d", srv.shutdowns)
	}
}
