// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package api

import (
	"net/http"

	"github.com/goccy/go-json"
	gorillaws "github.com/gorilla/websocket"

	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/metrics"
	"github.com/tomtom215/roadwatch/internal/models"
	"github.com/tomtom215/roadwatch/internal/websocket"
)

// StreamCameras handles the NDJSON variant of the camera list. Each
// provider's batch is emitted as its own line the moment that provider
// resolves; a terminal done line carries the aggregate count. The stream
// itself never fails: a broken provider is logged and omitted upstream.
func (h *Handler) StreamCameras(w http.ResponseWriter, r *http.Request) {
	req, errResp := parseCamerasRequest(r, h.cfg.API)
	if errResp != nil {
		respondJSON(w, http.StatusBadRequest, errResp)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, models.ErrCodeFetchError,
			"Streaming unsupported by connection", nil)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	total := 0

	for batch := range h.registry.StreamCameras(r.Context(), req.queryOptions()) {
		msg := models.StreamMessage{
			Type:     models.StreamTypeCameras,
			Provider: batch.Provider,
			Cameras:  batch.Cameras,
		}
		if err := enc.Encode(msg); err != nil {
			// Client went away; stop writing, context cancellation winds
			// down the producers.
			logging.Debug().Err(err).Msg("Stream write failed, client likely disconnected")
			return
		}
		flusher.Flush()
		metrics.StreamMessagesSent.WithLabelValues("ndjson", models.StreamTypeCameras).Inc()
		total += len(batch.Cameras)
	}

	done := models.StreamMessage{Type: models.StreamTypeDone, Total: &total}
	if err := enc.Encode(done); err != nil {
		logging.Debug().Err(err).Msg("Stream terminal write failed")
		return
	}
	flusher.Flush()
	metrics.StreamMessagesSent.WithLabelValues("ndjson", models.StreamTypeDone).Inc()
}

// WebSocket upgrades the connection and attaches it to the live update
// hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		http.NotFound(w, r)
		return
	}

	upgrader := gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}

// checkOrigin mirrors the CORS origin policy for websocket upgrades.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
