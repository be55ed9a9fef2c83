// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/roadwatch/internal/api"
	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/provider"
	"github.com/tomtom215/roadwatch/internal/provider/caltrans"
	"github.com/tomtom215/roadwatch/internal/provider/ny511"
	"github.com/tomtom215/roadwatch/internal/provider/wsdot"
	"github.com/tomtom215/roadwatch/internal/supervisor"
	"github.com/tomtom215/roadwatch/internal/supervisor/services"
	"github.com/tomtom215/roadwatch/internal/upstream"
	"github.com/tomtom215/roadwatch/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Roadwatch")

	registry := buildRegistry(cfg)
	if len(registry.Providers()) == 0 {
		logging.Fatal().Msg("No camera providers enabled")
	}
	logging.Info().
		Strs("providers", registry.Slugs()).
		Msg("Camera providers initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	hub := websocket.NewHub()
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddMessagingService(services.NewRefresherService(registry, hub, cfg.Providers.Caltrans.CacheTTL))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(cfg, registry, hub),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped gracefully")
}

// buildRegistry assembles the provider registry from the enabled
// adapters. Each adapter gets its own upstream client so one misbehaving
// agency's circuit breaker or rate limiter never throttles another.
func buildRegistry(cfg *config.Config) *provider.Registry {
	var providers []provider.Provider

	if cfg.Providers.Caltrans.Enabled {
		client := upstream.NewClient("caltrans", cfg.Upstream)
		providers = append(providers, caltrans.New(cfg.Providers.Caltrans, client))
	}
	if cfg.Providers.WSDOT.Enabled {
		client := upstream.NewClient("wsdot", cfg.Upstream)
		providers = append(providers, wsdot.New(cfg.Providers.WSDOT, client))
	}
	if cfg.Providers.NY511.Enabled {
		client := upstream.NewClient("ny511", cfg.Upstream)
		providers = append(providers, ny511.New(cfg.Providers.NY511, client))
	}

	return provider.NewRegistry(providers...)
}
