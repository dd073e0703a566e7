// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/garderobe/garderobe/internal/models"
)

// Backup handles GET /api/v1/admin/backup. It streams a full store
// backup in Badger's backup format; the since query parameter selects
// an incremental backup from that version watermark.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "since must be a non-negative integer", nil)
			return
		}
		since = parsed
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=garderobe-"+time.Now().UTC().Format("20060102T150405Z")+".backup")

	version, err := h.store.Backup(w, since)
	if err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.Error().Err(err).Msg("backup stream failed")
		return
	}
	h.logger.Info().Uint64("version", version).Msg("backup streamed")
}

// Restore handles POST /api/v1/admin/restore. The request body is a
// backup stream produced by the backup endpoint. The item pool cache is
// cleared afterwards since restored data may touch any user.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Restore(r.Body); err != nil {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid backup stream", err)
		return
	}
	h.pool.Clear()

	h.respondJSON(w, http.StatusOK, models.Success(map[string]string{"restored": "ok"}))
}
