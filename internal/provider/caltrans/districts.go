// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package caltrans

import "github.com/tomtom215/roadwatch/internal/geo"

// District is one Caltrans administrative district with its approximate
// coverage box. The boxes are deliberately generous and may overlap;
// they only gate which per-district feeds a query has to touch, the
// precise per-camera filter runs afterwards on real coordinates.
type District struct {
	Number int
	Name   string
	Bounds geo.BoundingBox
}

// Districts covers all twelve Caltrans districts.
var Districts = []District{
	{Number: 1, Name: "Eureka", Bounds: geo.BoundingBox{North: 42.01, South: 39.00, East: -122.50, West: -124.50}},
	{Number: 2, Name: "Redding", Bounds: geo.BoundingBox{North: 42.01, South: 39.30, East: -119.99, West: -123.07}},
	{Number: 3, Name: "Marysville", Bounds: geo.BoundingBox{North: 39.80, South: 38.30, East: -119.88, West: -122.41}},
	{Number: 4, Name: "Bay Area", Bounds: geo.BoundingBox{North: 38.90, South: 36.90, East: -121.20, West: -123.60}},
	{Number: 5, Name: "San Luis Obispo", Bounds: geo.BoundingBox{North: 37.20, South: 34.40, East: -119.90, West: -122.10}},
	{Number: 6, Name: "Fresno", Bounds: geo.BoundingBox{North: 38.00, South: 34.80, East: -117.98, West: -120.90}},
	{Number: 7, Name: "Los Angeles", Bounds: geo.BoundingBox{North: 34.90, South: 33.60, East: -117.60, West: -119.00}},
	{Number: 8, Name: "San Bernardino", Bounds: geo.BoundingBox{North: 35.80, South: 33.40, East: -114.13, West: -118.00}},
	{Number: 9, Name: "Bishop", Bounds: geo.BoundingBox{North: 38.70, South: 35.80, East: -117.00, West: -119.50}},
	{Number: 10, Name: "Stockton", Bounds: geo.BoundingBox{North: 38.70, South: 37.10, East: -118.00, West: -121.60}},
	{Number: 11, Name: "San Diego", Bounds: geo.BoundingBox{North: 33.50, South: 32.53, East: -114.46, West: -117.60}},
	{Number: 12, Name: "Orange County", Bounds: geo.BoundingBox{North: 33.90, South: 33.40, East: -117.40, West: -118.00}},
}

// districtsForBox returns the districts whose coverage box overlaps the
// query box. A nil box selects every district.
func districtsForBox(bbox *geo.BoundingBox) []District {
	if bbox == nil {
		return Districts
	}
	var out []District
	for _, d := range Districts {
		if geo.Overlaps(d.Bounds, *bbox) {
			out = append(out, d)
		}
	}
	return out
}

// districtByNumber returns the district with the given number, or false
// when the number is outside the known set.
func districtByNumber(n int) (District, bool) {
	for _, d := range Districts {
		if d.Number == n {
			return d, true
		}
	}
	return District{}, false
}
