// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package provider defines the camera provider contract and the registry
// that aggregates across every enabled provider.
//
// A provider adapts one upstream agency's raw feed into canonical
// models.Camera records. The set of providers is closed and known at build
// time; the registry holds a fixed slice assembled at startup, never a
// dynamic plugin mechanism.
package provider

import (
	"context"

	"github.com/tomtom215/roadwatch/internal/models"
)

// Provider is the capability set every adapter implements.
//
// FetchCameras converts upstream failures into an empty contribution
// internally (partial data beats total failure); a returned error is
// reserved for genuinely unexpected conditions and fails the aggregate
// request.
type Provider interface {
	// Slug is the stable provider identifier that namespaces camera ids,
	// e.g. "caltrans".
	Slug() string

	// DisplayName is the human-readable provider name.
	DisplayName() string

	// FetchCameras returns every camera matching the options. With a bbox
	// the adapter selects the minimal upstream region subset via coarse
	// box overlap, then post-filters each normalized record precisely.
	FetchCameras(ctx context.Context, opts models.QueryOptions) ([]models.Camera, error)

	// FetchCameraByID resolves one camera by its namespaced id. A
	// malformed id or an absent record yields (nil, nil), never an error.
	FetchCameraByID(ctx context.Context, id string) (*models.Camera, error)
}
