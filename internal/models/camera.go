// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package models defines the canonical camera record shared by every
// provider adapter and the HTTP layer.
package models

import "github.com/tomtom215/roadwatch/internal/geo"

// Category is a semantic tag inferred heuristically from a camera's
// descriptive text. The enumeration is fixed; absence of a category is
// meaningful (a general-purpose camera, not a miscategorized one).
type Category string

const (
	CategoryAccidents    Category = "accidents"
	CategoryCongestion   Category = "congestion"
	CategoryConstruction Category = "construction"
	CategoryWeather      Category = "weather"
)

// AllCategories lists every valid category tag.
var AllCategories = []Category{
	CategoryAccidents,
	CategoryCongestion,
	CategoryConstruction,
	CategoryWeather,
}

// Camera is the provider-agnostic camera record. Adapters construct it
// fresh from the raw upstream payload on every fetch; it is never mutated
// afterwards and never persisted.
//
// Text fields are empty strings (never null) when the source has no value.
// Nullable numeric and URL fields are pointers; a nil pointer means the
// upstream reported an "unknown" sentinel.
type Camera struct {
	// ID is globally unique and namespaced by provider slug,
	// e.g. "caltrans-d4-17". Stable within a data snapshot only; upstream
	// index renumbering can change it across days.
	ID       string `json:"id"`
	Provider string `json:"provider"`

	Name        string `json:"name"`
	NearbyPlace string `json:"nearbyPlace"`
	County      string `json:"county"`
	Route       string `json:"route"`
	Direction   string `json:"direction"`

	// District is the upstream region identifier, 0 when the provider has
	// no regional concept.
	District int `json:"district"`

	// Latitude and Longitude are always finite; records whose coordinates
	// fail to parse are dropped before they reach the registry.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Elevation in feet, nil when not reported.
	Elevation *int `json:"elevation"`

	InService bool `json:"inService"`

	ImageURL                    *string  `json:"imageUrl"`
	ImageUpdateFrequencyMinutes *int     `json:"imageUpdateFrequencyMinutes"`
	ImageDescription            string   `json:"imageDescription"`
	StreamingVideoURL           *string  `json:"streamingVideoUrl"`
	ReferenceImages             []string `json:"referenceImages"`

	// RecordedAt is an ISO-8601 timestamp of when the source last recorded
	// the image.
	RecordedAt string `json:"recordedAt"`

	Categories []Category `json:"categories"`
}

// QueryOptions is the sole query shape passed into every adapter.
// A nil BBox means "every region".
type QueryOptions struct {
	BBox *geo.BoundingBox
}
