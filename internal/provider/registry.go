// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package provider

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/models"
)

// Registry fans queries out across a fixed set of providers and merges
// their contributions in registration order.
type Registry struct {
	providers []Provider
}

// NewRegistry builds a registry over the given providers. Order is
// significant: aggregate responses concatenate contributions in this
// order so output stays deterministic across requests.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Slugs returns the slug of every registered provider.
func (r *Registry) Slugs() []string {
	slugs := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		slugs = append(slugs, p.Slug())
	}
	return slugs
}

// FetchAllCameras queries every provider concurrently and flattens the
// results in registration order. Providers absorb upstream failures
// themselves, so an error here is unexpected and fails the whole call.
func (r *Registry) FetchAllCameras(ctx context.Context, opts models.QueryOptions) ([]models.Camera, error) {
	results := make([][]models.Camera, len(r.providers))

	var g errgroup.Group
	for i, p := range r.providers {
		g.Go(func() error {
			cameras, err := p.FetchCameras(ctx, opts)
			if err != nil {
				return err
			}
			results[i] = cameras
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range results {
		total += len(part)
	}
	merged := make([]models.Camera, 0, total)
	for _, part := range results {
		merged = append(merged, part...)
	}
	return merged, nil
}

// FetchCameraByID dispatches an id lookup to the provider whose slug
// prefixes the id. Ids from unknown providers resolve to (nil, nil).
func (r *Registry) FetchCameraByID(ctx context.Context, id string) (*models.Camera, error) {
	for _, p := range r.providers {
		if strings.HasPrefix(id, p.Slug()+"-") {
			return p.FetchCameraByID(ctx, id)
		}
	}
	return nil, nil
}

// Batch is one provider's complete contribution to a streamed response.
type Batch struct {
	Provider string
	Cameras  []models.Camera
}

// StreamCameras queries every provider concurrently and emits each
// provider's batch as soon as it is ready, in completion order. The
// returned channel closes once every provider has reported. A provider
// that fails or panics is logged and omitted; the stream itself never
// errors.
func (r *Registry) StreamCameras(ctx context.Context, opts models.QueryOptions) <-chan Batch {
	out := make(chan Batch)

	go func() {
		defer close(out)

		var wg sync.WaitGroup
		for _, p := range r.providers {
			wg.Add(1)
			go func(p Provider) {
				defer wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						logging.Error().
							Str("provider", p.Slug()).
							Interface("panic", rec).
							Msg("Provider panicked during stream; contribution omitted")
					}
				}()

				cameras, err := p.FetchCameras(ctx, opts)
				if err != nil {
					logging.Error().
						Err(err).
						Str("provider", p.Slug()).
						Msg("Provider failed during stream; contribution omitted")
					return
				}

				select {
				case out <- Batch{Provider: p.Slug(), Cameras: cameras}:
				case <-ctx.Done():
				}
			}(p)
		}
		wg.Wait()
	}()

	return out
}
