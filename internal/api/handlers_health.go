// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/garderobe/garderobe/internal/models"
)

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, models.Success(HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}))
}
