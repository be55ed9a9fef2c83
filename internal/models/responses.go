// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package models

// CamerasResponse is the document returned by GET /api/v1/cameras.
type CamerasResponse struct {
	Cameras []Camera `json:"cameras"`
	Total   int      `json:"total"`
	HasMore bool     `json:"hasMore"`
	Offset  int      `json:"offset"`
	// Sources lists the distinct provider slugs present in the full
	// (pre-paging) result set.
	Sources []string `json:"sources"`
}

// CameraResponse wraps a single camera for GET /api/v1/cameras/{id}.
type CameraResponse struct {
	Camera Camera `json:"camera"`
}

// ErrorResponse is the error envelope for every 4xx/5xx response.
// Code values are stable so clients can branch on them.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Stable error codes surfaced by the API.
const (
	ErrCodeInvalidBBox = "INVALID_BBOX"
	ErrCodeMissingID   = "MISSING_ID"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeFetchError  = "FETCH_ERROR"
)

// Stream message types for the newline-delimited streaming endpoint.
const (
	StreamTypeCameras = "cameras"
	StreamTypeDone    = "done"
)

// StreamMessage is a single line of the NDJSON camera stream. Per-provider
// batches carry Type "cameras"; the terminal line carries Type "done" with
// the aggregate count.
type StreamMessage struct {
	Type     string   `json:"type"`
	Provider string   `json:"provider,omitempty"`
	Cameras  []Camera `json:"cameras,omitempty"`
	Total    *int     `json:"total,omitempty"`
}
