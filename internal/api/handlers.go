// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package api provides the HTTP boundary: routing via chi, request
// parsing, and serialization of aggregated camera data.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/models"
	"github.com/tomtom215/roadwatch/internal/provider"
	"github.com/tomtom215/roadwatch/internal/websocket"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	cfg      *config.Config
	registry *provider.Registry
	hub      *websocket.Hub
	start    time.Time
}

// NewHandler builds the route handler set. hub may be nil when the live
// update channel is disabled; the ws route then responds 404.
func NewHandler(cfg *config.Config, registry *provider.Registry, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:      cfg,
		registry: registry,
		hub:      hub,
		start:    time.Now(),
	}
}

// ListCameras handles GET /api/v1/cameras. Paging applies after the
// aggregate fetch: total and sources always describe the full result
// set, not the returned page.
func (h *Handler) ListCameras(w http.ResponseWriter, r *http.Request) {
	req, errResp := parseCamerasRequest(r, h.cfg.API)
	if errResp != nil {
		respondJSON(w, http.StatusBadRequest, errResp)
		return
	}

	cameras, err := h.registry.FetchAllCameras(r.Context(), req.queryOptions())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeFetchError,
			"Failed to fetch camera data", err)
		return
	}

	page := pageOf(cameras, req.Offset, req.Limit)

	respondJSON(w, http.StatusOK, models.CamerasResponse{
		Cameras: page,
		Total:   len(cameras),
		HasMore: req.Offset+req.Limit < len(cameras),
		Offset:  req.Offset,
		Sources: distinctProviders(cameras),
	})
}

// GetCamera handles GET /api/v1/cameras/{id}.
func (h *Handler) GetCamera(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeMissingID,
			"Missing camera ID", nil)
		return
	}

	camera, err := h.registry.FetchCameraByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeFetchError,
			"Failed to fetch camera data", err)
		return
	}
	if camera == nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound,
			"Camera not found", nil)
		return
	}

	logging.Ctx(r.Context()).Debug().Str("camera_id", id).Msg("Camera lookup")
	respondJSON(w, http.StatusOK, models.CameraResponse{Camera: *camera})
}

// pageOf slices cameras to one page, tolerating out-of-range offsets.
func pageOf(cameras []models.Camera, offset, limit int) []models.Camera {
	if offset >= len(cameras) {
		return []models.Camera{}
	}
	end := offset + limit
	if end > len(cameras) {
		end = len(cameras)
	}
	return cameras[offset:end]
}

// distinctProviders lists the provider slugs present in cameras,
// first-seen order.
func distinctProviders(cameras []models.Camera) []string {
	seen := make(map[string]bool)
	sources := []string{}
	for _, cam := range cameras {
		if !seen[cam.Provider] {
			seen[cam.Provider] = true
			sources = append(sources, cam.Provider)
		}
	}
	return sources
}
