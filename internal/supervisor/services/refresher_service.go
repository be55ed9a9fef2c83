// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/metrics"
	"github.com/tomtom215/roadwatch/internal/models"
	"github.com/tomtom215/roadwatch/internal/provider"
	"github.com/tomtom215/roadwatch/internal/websocket"
)

// RefresherService periodically re-fetches the aggregate camera set so
// the feed caches stay warm, and notifies connected websocket clients
// that a fresh snapshot is available. Skipped entirely while no client
// is connected; the caches then refill lazily on the next API request.
type RefresherService struct {
	registry *provider.Registry
	hub      *websocket.Hub
	interval time.Duration
}

// NewRefresherService builds a refresher. The interval should match the
// shortest provider cache TTL; shorter just burns upstream quota.
func NewRefresherService(registry *provider.Registry, hub *websocket.Hub, interval time.Duration) *RefresherService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RefresherService{
		registry: registry,
		hub:      hub,
		interval: interval,
	}
}

// Serve implements suture.Service.
func (s *RefresherService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.hub.ClientCount() == 0 {
				continue
			}
			s.refresh(ctx)
		}
	}
}

func (s *RefresherService) refresh(ctx context.Context) {
	cameras, err := s.registry.FetchAllCameras(ctx, models.QueryOptions{})
	if err != nil {
		logging.Warn().Err(err).Msg("Snapshot refresh failed")
		return
	}

	sources := make(map[string]bool)
	ordered := []string{}
	for _, cam := range cameras {
		if !sources[cam.Provider] {
			sources[cam.Provider] = true
			ordered = append(ordered, cam.Provider)
		}
	}

	s.hub.BroadcastCamerasUpdate(len(cameras), ordered)
	metrics.StreamMessagesSent.WithLabelValues("websocket", websocket.MessageTypeCamerasUpdate).Inc()
	logging.Debug().
		Int("total", len(cameras)).
		Int("clients", s.hub.ClientCount()).
		Msg("Snapshot refresh broadcast")
}

// String identifies the service in suture logs.
func (s *RefresherService) String() string {
	return "snapshot-refresher"
}
