// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/geo"
	"github.com/tomtom215/roadwatch/internal/models"
)

// camerasRequest is the parsed query for camera list and stream routes.
// Limit and Offset are lenient on parse: bad values fall back to defaults
// instead of erroring, so by construction both are within range here.
type camerasRequest struct {
	BBox   *geo.BoundingBox
	Limit  int
	Offset int
}

// parseCamerasRequest translates query-string parameters into query
// options. A malformed bbox is the only hard parse failure; bad paging
// values silently fall back, matching lenient-by-default query handling.
func parseCamerasRequest(r *http.Request, cfg config.APIConfig) (camerasRequest, *models.ErrorResponse) {
	req := camerasRequest{
		Limit:  cfg.DefaultPageSize,
		Offset: 0,
	}

	if raw := r.URL.Query().Get("bbox"); raw != "" {
		bbox, err := geo.ParseBBox(raw)
		if err != nil {
			return req, &models.ErrorResponse{
				Error: "Invalid bbox parameter. Expected: north,south,east,west",
				Code:  models.ErrCodeInvalidBBox,
			}
		}
		req.BBox = &bbox
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			req.Limit = n
		}
	}
	if req.Limit > cfg.MaxPageSize {
		req.Limit = cfg.MaxPageSize
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			req.Offset = n
		}
	}

	return req, nil
}

// queryOptions converts the request into the adapter-facing options.
func (req camerasRequest) queryOptions() models.QueryOptions {
	return models.QueryOptions{BBox: req.BBox}
}
