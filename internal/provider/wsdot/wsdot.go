// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package wsdot adapts the Washington State DOT traveler information
// camera API. Unlike Caltrans, WSDOT publishes one statewide document,
// so the adapter caches a single feed entry and relies entirely on the
// precise per-camera filter for bbox queries.
package wsdot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/roadwatch/internal/cache"
	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/geo"
	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/metrics"
	"github.com/tomtom215/roadwatch/internal/models"
	"github.com/tomtom215/roadwatch/internal/upstream"
)

// Slug namespaces WSDOT camera ids.
const Slug = "wsdot"

// stateBounds is the approximate coverage box for Washington State,
// used only to short-circuit disjoint bbox queries.
var stateBounds = geo.BoundingBox{North: 49.05, South: 45.54, East: -116.91, West: -124.85}

// imageUpdateMinutes is WSDOT's documented refresh cadence; the feed
// itself carries no per-camera frequency.
const imageUpdateMinutes = 2

type rawCamera struct {
	CameraID    int    `json:"CameraID"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Location    struct {
		Latitude    float64 `json:"Latitude"`
		Longitude   float64 `json:"Longitude"`
		Description string  `json:"Description"`
		RoadName    string  `json:"RoadName"`
		Direction   string  `json:"Direction"`
		MilePost    float64 `json:"MilePost"`
		County      string  `json:"County"`
	} `json:"CameraLocation"`
	ImageURL string `json:"ImageURL"`
	IsActive bool   `json:"IsActive"`
}

// Adapter implements provider.Provider over the WSDOT camera API.
type Adapter struct {
	cfg    config.WSDOTConfig
	client *upstream.Client
	cache  *cache.TTLCache
}

func New(cfg config.WSDOTConfig, client *upstream.Client) *Adapter {
	return &Adapter{
		cfg:    cfg,
		client: client,
		cache:  cache.New("wsdot-feed", cfg.CacheTTL),
	}
}

func (a *Adapter) Slug() string        { return Slug }
func (a *Adapter) DisplayName() string { return "WSDOT" }

func (a *Adapter) FetchCameras(ctx context.Context, opts models.QueryOptions) ([]models.Camera, error) {
	if opts.BBox != nil && !geo.Overlaps(stateBounds, *opts.BBox) {
		return []models.Camera{}, nil
	}

	raws := a.fetchFeed(ctx)
	cameras := make([]models.Camera, 0, len(raws))
	for _, raw := range raws {
		cam, ok := normalize(raw)
		if !ok {
			continue
		}
		if opts.BBox != nil && !geo.Contains(*opts.BBox, cam.Latitude, cam.Longitude) {
			continue
		}
		cameras = append(cameras, cam)
	}
	return cameras, nil
}

// FetchCameraByID uses WSDOT's single-camera endpoint rather than
// scanning the statewide feed.
func (a *Adapter) FetchCameraByID(ctx context.Context, id string) (*models.Camera, error) {
	native, ok := strings.CutPrefix(id, Slug+"-")
	if !ok {
		return nil, nil
	}
	if _, err := strconv.Atoi(native); err != nil {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s?CameraID=%s", a.cfg.CameraURL, url.QueryEscape(native))

	var raw rawCamera
	if err := a.client.GetJSON(ctx, reqURL, &raw); err != nil {
		logging.Warn().Err(err).Str("id", id).Msg("WSDOT camera lookup failed")
		return nil, nil
	}
	cam, ok := normalize(raw)
	if !ok {
		return nil, nil
	}
	return &cam, nil
}

func (a *Adapter) fetchFeed(ctx context.Context) []rawCamera {
	v, err := a.cache.GetOrFill(ctx, "feed", func(ctx context.Context) (interface{}, error) {
		start := time.Now()

		var raws []rawCamera
		if err := a.client.GetJSON(ctx, a.cfg.FeedURL, &raws); err != nil {
			metrics.RecordUpstreamFetch(Slug, "feed", "error", time.Since(start))
			return nil, err
		}
		metrics.RecordUpstreamFetch(Slug, "feed", "success", time.Since(start))
		return raws, nil
	})
	if err != nil {
		logging.Warn().Err(err).Msg("WSDOT feed unavailable; serving as empty")
		return nil
	}
	return v.([]rawCamera)
}

// normalize converts one WSDOT record. A zero in either coordinate is the
// feed's missing-location placeholder, so such records are dropped.
func normalize(raw rawCamera) (models.Camera, bool) {
	if raw.Location.Latitude == 0 || raw.Location.Longitude == 0 {
		metrics.CamerasDropped.WithLabelValues(Slug, "bad_coordinates").Inc()
		return models.Camera{}, false
	}

	freq := imageUpdateMinutes
	cam := models.Camera{
		ID:                          fmt.Sprintf("%s-%d", Slug, raw.CameraID),
		Provider:                    Slug,
		Name:                        raw.Title,
		NearbyPlace:                 raw.Location.Description,
		County:                      raw.Location.County,
		Route:                       raw.Location.RoadName,
		Direction:                   raw.Location.Direction,
		District:                    0,
		Latitude:                    raw.Location.Latitude,
		Longitude:                   raw.Location.Longitude,
		InService:                   raw.IsActive,
		ImageURL:                    optionalString(raw.ImageURL),
		ImageUpdateFrequencyMinutes: &freq,
		ImageDescription:            raw.Description,
		ReferenceImages:             nil,
		RecordedAt:                  time.Now().UTC().Format(time.RFC3339),
		Categories:                  inferCategories(raw),
	}
	metrics.CamerasNormalized.WithLabelValues(Slug).Inc()
	return cam, true
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func inferCategories(raw rawCamera) []models.Category {
	text := strings.ToLower(raw.Title + " " + raw.Description + " " + raw.Location.Description)

	var out []models.Category
	if strings.Contains(text, "weather") || strings.Contains(text, "snow") ||
		strings.Contains(text, "fog") || strings.Contains(text, "pass") {
		out = append(out, models.CategoryWeather)
	}
	if strings.Contains(text, "construction") || strings.Contains(text, "work zone") {
		out = append(out, models.CategoryConstruction)
	}
	return out
}
