// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package ny511 adapts the 511NY traveler information camera feed. Like
// WSDOT it is a single statewide document; unlike WSDOT there is no
// single-camera endpoint, so id lookups scan the cached feed.
package ny511

import (
	"context"
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

// Slug namespaces 511NY camera ids.
const Slug = "ny511"

// stateBounds is the approximate coverage box for New York State.
var stateBounds = geo.BoundingBox{North: 45.02, South: 40.50, East: -71.78, West: -79.76}

const imageUpdateMinutes = 2

type rawCamera struct {
	ID                string  `json:"ID"`
	Name              string  `json:"Name"`
	URL               string  `json:"Url"`
	VideoURL          *string `json:"VideoUrl"`
	Latitude          float64 `json:"Latitude"`
	Longitude         float64 `json:"Longitude"`
	DirectionOfTravel string  `json:"DirectionOfTravel"`
	RoadwayName       string  `json:"RoadwayName"`
	Disabled          bool    `json:"Disabled"`
	Blocked           bool    `json:"Blocked"`
}

// Adapter implements provider.Provider over the 511NY feed.
type Adapter struct {
	cfg    config.NY511Config
	client *upstream.Client
	cache  *cache.TTLCache
}

func New(cfg config.NY511Config, client *upstream.Client) *Adapter {
	return &Adapter{
		cfg:    cfg,
		client: client,
		cache:  cache.New("ny511-feed", cfg.CacheTTL),
	}
}

func (a *Adapter) Slug() string        { return Slug }
func (a *Adapter) DisplayName() string { return "511 NY" }

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

// FetchCameraByID scans the cached statewide feed; there is no upstream
// single-camera endpoint.
func (a *Adapter) FetchCameraByID(ctx context.Context, id string) (*models.Camera, error) {
	native, ok := strings.CutPrefix(id, Slug+"-")
	if !ok || native == "" {
		return nil, nil
	}

	for _, raw := range a.fetchFeed(ctx) {
		if raw.ID != native {
			continue
		}
		cam, ok := normalize(raw)
		if !ok {
			return nil, nil
		}
		return &cam, nil
	}
	return nil, nil
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
		logging.Warn().Err(err).Msg("511NY feed unavailable; serving as empty")
		return nil
	}
	return v.([]rawCamera)
}

// normalize converts one 511NY record. A camera counts as in service
// only when it is neither disabled nor blocked. Records with a zero
// coordinate are dropped.
func normalize(raw rawCamera) (models.Camera, bool) {
	if raw.Latitude == 0 || raw.Longitude == 0 {
		metrics.CamerasDropped.WithLabelValues(Slug, "bad_coordinates").Inc()
		return models.Camera{}, false
	}

	freq := imageUpdateMinutes
	cam := models.Camera{
		ID:                          Slug + "-" + raw.ID,
		Provider:                    Slug,
		Name:                        raw.Name,
		Route:                       raw.RoadwayName,
		Direction:                   raw.DirectionOfTravel,
		District:                    0,
		Latitude:                    raw.Latitude,
		Longitude:                   raw.Longitude,
		InService:                   !raw.Disabled && !raw.Blocked,
		ImageURL:                    optionalString(raw.URL),
		ImageUpdateFrequencyMinutes: &freq,
		ImageDescription:            raw.Name,
		StreamingVideoURL:           raw.VideoURL,
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
	text := strings.ToLower(raw.Name + " " + raw.RoadwayName)

	var out []models.Category
	if strings.Contains(text, "weather") || strings.Contains(text, "snow") || strings.Contains(text, "fog") {
		out = append(out, models.CategoryWeather)
	}
	if strings.Contains(text, "construction") || strings.Contains(text, "work zone") {
		out = append(out, models.CategoryConstruction)
	}
	return out
}
