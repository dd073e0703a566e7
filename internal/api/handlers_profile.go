// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package api

import (
	"errors"
	"net/http"

	"github.com/garderobe/garderobe/internal/models"
	"github.com/garderobe/garderobe/internal/store"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// GetProfile handles GET /api/v1/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "NOT_FOUND", "no profile saved", nil)
			return
		}
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to load profile", err)
		return
	}
	h.respondJSON(w, http.StatusOK, models.Success(profile))
}

// PutProfile handles PUT /api/v1/profile.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	var profile wardrobe.Profile
	if !h.decodeJSON(w, r, &profile) {
		return
	}
	if profile.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required", nil)
		return
	}

	if err := h.store.PutProfile(r.Context(), &profile); err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to save profile", err)
		return
	}
	h.respondJSON(w, http.StatusOK, models.Success(&profile))
}
