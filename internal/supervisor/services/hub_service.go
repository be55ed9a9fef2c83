// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package services

import (
	"context"

	"github.com/tomtom215/roadwatch/internal/websocket"
)

// HubService runs the websocket hub under supervision.
type HubService struct {
	hub *websocket.Hub
}

// NewHubService wraps a hub for supervision.
func NewHubService(hub *websocket.Hub) *HubService {
	return &HubService{hub: hub}
}

// Serve implements suture.Service.
func (s *HubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String identifies the service in suture logs.
func (s *HubService) String() string {
	return "websocket-hub"
}
