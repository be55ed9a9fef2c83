// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package api

import (
	"net/http"
	"time"
)

type healthProvider struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
}

type healthResponse struct {
	Status        string           `json:"status"`
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Providers     []healthProvider `json:"providers"`
	WSClients     *int             `json:"wsClients,omitempty"`
}

// Health handles GET /api/v1/health with provider inventory and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	providers := make([]healthProvider, 0, len(h.registry.Providers()))
	for _, p := range h.registry.Providers() {
		providers = append(providers, healthProvider{
			Slug:        p.Slug(),
			DisplayName: p.DisplayName(),
		})
	}

	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.start).Seconds()),
		Providers:     providers,
	}
	if h.hub != nil {
		clients := h.hub.ClientCount()
		resp.WSClients = &clients
	}
	respondJSON(w, http.StatusOK, resp)
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady is the readiness probe. The service holds no connections
// or local state to warm up, so ready tracks liveness apart from
// requiring at least one configured provider.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if len(h.registry.Providers()) == 0 {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no providers enabled"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
