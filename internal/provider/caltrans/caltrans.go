// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package caltrans adapts the Caltrans CWWP2 cctvStatus feeds into
// canonical camera records.
//
// Caltrans publishes one feed per administrative district rather than a
// statewide document, so the adapter maps a query box onto the district
// coverage table, fetches only the overlapping districts (concurrently,
// through a per-district TTL cache), and post-filters normalized records
// against the precise query box.
package caltrans

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/roadwatch/internal/cache"
	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/geo"
	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/metrics"
	"github.com/tomtom215/roadwatch/internal/models"
	"github.com/tomtom215/roadwatch/internal/upstream"
)

// Slug namespaces Caltrans camera ids.
const Slug = "caltrans"

// idPattern matches ids minted by this adapter: caltrans-d{district}-{index}.
var idPattern = regexp.MustCompile(`^caltrans-d(\d+)-(.+)$`)

// Adapter implements provider.Provider over the CWWP2 district feeds.
type Adapter struct {
	cfg    config.CaltransConfig
	client *upstream.Client
	cache  *cache.TTLCache
}

// New builds a Caltrans adapter using the given resilient HTTP client.
func New(cfg config.CaltransConfig, client *upstream.Client) *Adapter {
	return &Adapter{
		cfg:    cfg,
		client: client,
		cache:  cache.New("caltrans-feed", cfg.CacheTTL),
	}
}

func (a *Adapter) Slug() string        { return Slug }
func (a *Adapter) DisplayName() string { return "Caltrans" }

// feedURL builds the district feed URL. The path uses the bare district
// number while the filename zero-pads it to two digits.
func (a *Adapter) feedURL(district int) string {
	return fmt.Sprintf("%s/d%d/cctv/cctvStatusD%02d.json", a.cfg.BaseURL, district, district)
}

// FetchCameras returns the cameras visible through opts. Failed district
// fetches degrade to an empty district rather than failing the call.
func (a *Adapter) FetchCameras(ctx context.Context, opts models.QueryOptions) ([]models.Camera, error) {
	districts := districtsForBox(opts.BBox)
	if len(districts) == 0 {
		return []models.Camera{}, nil
	}

	results := make([][]models.Camera, len(districts))
	var g errgroup.Group
	for i, d := range districts {
		g.Go(func() error {
			raws := a.fetchDistrict(ctx, d.Number)
			results[i] = a.normalizeDistrict(raws, d.Number, opts.BBox)
			return nil
		})
	}
	// Per-district errors never surface; Wait only joins the goroutines.
	_ = g.Wait()

	total := 0
	for _, part := range results {
		total += len(part)
	}
	cameras := make([]models.Camera, 0, total)
	for _, part := range results {
		cameras = append(cameras, part...)
	}
	return cameras, nil
}

// FetchCameraByID fetches only the district encoded in the id and scans
// it for the record. Malformed and unmatched ids both resolve to nil.
func (a *Adapter) FetchCameraByID(ctx context.Context, id string) (*models.Camera, error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return nil, nil
	}
	district, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, nil
	}
	if _, ok := districtByNumber(district); !ok {
		return nil, nil
	}

	for _, raw := range a.fetchDistrict(ctx, district) {
		if raw.Index != m[2] {
			continue
		}
		cam, ok := normalize(raw, district)
		if !ok {
			return nil, nil
		}
		return &cam, nil
	}
	return nil, nil
}

// normalizeDistrict converts raw records and applies the precise
// coordinate filter when a query box is present.
func (a *Adapter) normalizeDistrict(raws []rawCCTV, district int, bbox *geo.BoundingBox) []models.Camera {
	cameras := make([]models.Camera, 0, len(raws))
	for _, raw := range raws {
		cam, ok := normalize(raw, district)
		if !ok {
			continue
		}
		if bbox != nil && !geo.Contains(*bbox, cam.Latitude, cam.Longitude) {
			continue
		}
		cameras = append(cameras, cam)
	}
	return cameras
}

// fetchDistrict returns the raw records for one district, served from
// the TTL cache when fresh. Any upstream failure is logged and the
// district treated as empty; the miss is not cached, so the next request
// retries.
func (a *Adapter) fetchDistrict(ctx context.Context, district int) []rawCCTV {
	key := fmt.Sprintf("d%d", district)

	v, err := a.cache.GetOrFill(ctx, key, func(ctx context.Context) (interface{}, error) {
		start := time.Now()

		var resp rawResponse
		if err := a.client.GetJSON(ctx, a.feedURL(district), &resp); err != nil {
			metrics.RecordUpstreamFetch(Slug, key, "error", time.Since(start))
			return nil, err
		}
		metrics.RecordUpstreamFetch(Slug, key, "success", time.Since(start))

		raws := make([]rawCCTV, 0, len(resp.Data))
		for _, entry := range resp.Data {
			raws = append(raws, entry.CCTV)
		}
		return raws, nil
	})
	if err != nil {
		logging.Warn().
			Err(err).
			Int("district", district).
			Msg("District feed unavailable; serving district as empty")
		return nil
	}
	return v.([]rawCCTV)
}
