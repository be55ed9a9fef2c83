// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package geo provides bounding-box geometry for spatial camera filtering.
//
// Coordinates are WGS84 degrees. Boxes crossing the ±180° meridian are not
// supported; all upstream feeds are confined to the continental United States.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for spherical approximations.
const EarthRadiusKm = 6371.0

// BoundingBox is a latitude/longitude axis-aligned box in degrees.
// Invariant: North > South and East > West for any valid box.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Valid reports whether the box satisfies the North > South, East > West
// invariant and all edges are finite coordinates.
func (b BoundingBox) Valid() bool {
	for _, v := range []float64{b.North, b.South, b.East, b.West} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.North > b.South && b.East > b.West
}

// Overlaps reports whether a and b intersect with open-interval semantics:
// boxes that merely touch at an edge do NOT overlap. Region selection uses
// this as a coarse pre-filter, so under-selecting at exact boundaries is
// acceptable; the precise Contains check runs on every record afterward.
func Overlaps(a, b BoundingBox) bool {
	return a.West < b.East && a.East > b.West && a.South < b.North && a.North > b.South
}

// Contains reports whether the point (lat, lon) lies inside the box using
// closed-interval semantics: boundary points are included. This is
// deliberately asymmetric with Overlaps — the final per-record filter must
// never exclude a camera sitting exactly on the query edge.
func Contains(b BoundingBox, lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

// FromCenterAndRadius returns a box approximating a circle of radiusKm
// around (lat, lon). The longitude delta is inflated by 1/cos(lat) to
// account for meridian convergence. Near the poles cos(lat) is clamped so
// the result degrades to an oversized box instead of dividing by zero.
func FromCenterAndRadius(lat, lon, radiusKm float64) BoundingBox {
	latDelta := (radiusKm / EarthRadiusKm) * (180 / math.Pi)

	cosLat := math.Cos(toRadians(lat))
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	lonDelta := latDelta / cosLat

	return BoundingBox{
		North: lat + latDelta,
		South: lat - latDelta,
		East:  lon + lonDelta,
		West:  lon - lonDelta,
	}
}

// HaversineDistanceKm returns the great-circle distance between two points.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// ParseBBox parses the query-string form "north,south,east,west". Only
// wrong arity and non-numeric components are rejected. An inverted box
// (north below south, or east below west) parses fine: Overlaps and
// Contains are both vacuously false for it, so an inverted query yields an
// empty result rather than an error.
func ParseBBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bbox must have 4 components, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return BoundingBox{}, fmt.Errorf("bbox component %d is not a finite number: %q", i+1, p)
		}
		vals[i] = v
	}

	return BoundingBox{North: vals[0], South: vals[1], East: vals[2], West: vals[3]}, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
