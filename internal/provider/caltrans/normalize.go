// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package caltrans

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/roadwatch/internal/metrics"
	"github.com/tomtom215/roadwatch/internal/models"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// isSentinel reports whether an upstream value means "no data". The feed
// uses all three spellings interchangeably across fields.
func isSentinel(s string) bool {
	return s == "" || s == "Not Reported" || s == "N/A"
}

// cleanString maps sentinel values to the empty string and trims the rest.
func cleanString(s string) string {
	if isSentinel(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// optionalString maps sentinel values to nil so they serialize as JSON
// null rather than an empty string.
func optionalString(s string) *string {
	if isSentinel(s) {
		return nil
	}
	v := strings.TrimSpace(s)
	return &v
}

// optionalInt parses an upstream numeric string, mapping sentinels and
// unparseable values to nil.
func optionalInt(s string) *int {
	if isSentinel(s) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// Keyword tables for category inference. Matching is substring-based
// against the lowercased location name and image description, which is
// as much signal as the feed offers: it carries no structured category
// field, so weather and construction are inferred and the remaining
// categories stay empty.
var (
	passKeywords = []string{
		"pass", "summit", "grade", "ridge", "peak", "canyon",
		"mt ", "mtn", "sierra", "tahoe", "donner", "cajon",
		"tejon", "grapevine", "pacheco", "altamont", "gaviota", "cuesta",
	}

	weatherKeywords = []string{
		"weather", "snow", "fog", "wind", "chain", "ice", "frost", "elevation",
	}

	constructionKeywords = []string{
		"construction", "work zone", "roadwork", "project",
	}
)

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// inferCategories derives camera categories from free-text fields. Pass
// and summit cameras count as weather cameras: they exist to show chain
// control and road conditions at altitude.
func inferCategories(parts ...string) []models.Category {
	text := strings.ToLower(strings.Join(parts, " "))

	var out []models.Category
	if containsAny(text, passKeywords) || containsAny(text, weatherKeywords) {
		out = append(out, models.CategoryWeather)
	}
	if containsAny(text, constructionKeywords) {
		out = append(out, models.CategoryConstruction)
	}
	return out
}

// cameraID builds the namespaced id for a camera in a district.
func cameraID(district int, index string) string {
	return fmt.Sprintf("caltrans-d%d-%s", district, index)
}

// normalize converts one raw feed record into a canonical camera. It
// returns false when the record has no usable coordinates, which is the
// only condition that drops a record entirely.
func normalize(raw rawCCTV, district int) (models.Camera, bool) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(raw.Location.Latitude), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(raw.Location.Longitude), 64)
	// ParseFloat accepts "NaN" and "Inf" spellings without error, so the
	// finiteness check has to be explicit.
	if latErr != nil || lonErr != nil || !isFinite(lat) || !isFinite(lon) {
		metrics.CamerasDropped.WithLabelValues(Slug, "bad_coordinates").Inc()
		return models.Camera{}, false
	}

	name := cleanString(raw.Location.LocationName)
	nearbyPlace := cleanString(raw.Location.NearbyPlace)
	county := cleanString(raw.Location.County)
	description := cleanString(raw.ImageData.ImageDescription)

	recordedAt := ""
	if !isSentinel(raw.RecordTimestamp.RecordDate) && !isSentinel(raw.RecordTimestamp.RecordTime) {
		recordedAt = raw.RecordTimestamp.RecordDate + "T" + raw.RecordTimestamp.RecordTime
	}

	cam := models.Camera{
		ID:                          cameraID(district, raw.Index),
		Provider:                    Slug,
		Name:                        name,
		NearbyPlace:                 nearbyPlace,
		County:                      county,
		Route:                       cleanString(raw.Location.Route),
		Direction:                   cleanString(raw.Location.Direction),
		District:                    district,
		Latitude:                    lat,
		Longitude:                   lon,
		Elevation:                   optionalInt(raw.Location.Elevation),
		InService:                   raw.InService == "true",
		ImageURL:                    optionalString(raw.ImageData.Static.CurrentImageURL),
		ImageUpdateFrequencyMinutes: optionalInt(raw.ImageData.Static.CurrentImageUpdateFrequency),
		ImageDescription:            description,
		StreamingVideoURL:           optionalString(raw.ImageData.StreamingVideoURL),
		ReferenceImages:             raw.ImageData.Static.referenceImages(),
		RecordedAt:                  recordedAt,
		Categories:                  inferCategories(description, name, nearbyPlace, county),
	}
	metrics.CamerasNormalized.WithLabelValues(Slug).Inc()
	return cam, true
}
