// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	client := NewClient(hub, nil)
	hub.Register <- client

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister <- client
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("RunWithContext() = %v, want context.Canceled", err)
	}
}

func TestHubBroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	client := NewClient(hub, nil)
	hub.Register <- client
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.BroadcastCamerasUpdate(42, []string{"caltrans"})

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeCamerasUpdate {
			t.Errorf("message type = %q, want %q", msg.Type, MessageTypeCamerasUpdate)
		}
		data, ok := msg.Data.(CamerasUpdateData)
		if !ok {
			t.Fatalf("payload type = %T, want CamerasUpdateData", msg.Data)
		}
		if data.Total != 42 {
			t.Errorf("Total = %d, want 42", data.Total)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	client := NewClient(hub, nil)
	hub.Register <- client
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	<-done

	select {
	case _, open := <-client.send:
		if open {
			t.Error("client send channel still delivering after shutdown")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client send channel not closed on shutdown")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after shutdown, want 0", hub.ClientCount())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
