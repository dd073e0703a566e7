// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/garderobe/garderobe/internal/metrics"
	"github.com/garderobe/garderobe/internal/models"
	"github.com/garderobe/garderobe/internal/outfit"
	"github.com/garderobe/garderobe/internal/store"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// ComposeRequest is the body of POST /api/v1/outfits/compose.
type ComposeRequest struct {
	UserID       string            `json:"user_id"`
	Occasion     string            `json:"occasion"`
	TemperatureC float64           `json:"temperature_c"`
	TimeOfDay    outfit.TimeOfDay  `json:"time_of_day"`
	Season       outfit.Season     `json:"season"`
	Profile      *wardrobe.Profile `json:"profile,omitempty"`
	MaxResults   int               `json:"max_results"`
}

// ComposeOutfits handles POST /api/v1/outfits/compose. Candidates are
// transient; nothing is persisted and no usage counters move until a
// candidate is saved.
func (h *Handler) ComposeOutfits(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required", nil)
		return
	}

	items, err := h.itemPool(r.Context(), req.UserID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list items", err)
		return
	}

	// The request profile wins; otherwise fall back to the stored one.
	profile := req.Profile
	if profile == nil {
		if stored, err := h.store.GetProfile(r.Context(), req.UserID); err == nil {
			profile = stored
		}
	}

	start := time.Now()
	candidates, err := h.composer.Compose(items, outfit.Context{
		Occasion:     wardrobe.ParseOccasion(req.Occasion),
		TemperatureC: req.TemperatureC,
		TimeOfDay:    req.TimeOfDay,
		Season:       req.Season,
		Profile:      profile,
	}, req.MaxResults)
	if err != nil {
		h.respondInfeasible(w, err)
		return
	}
	metrics.RecordCompose(time.Since(start), len(candidates))

	h.respondJSON(w, http.StatusOK, models.Success(candidates))
}

// respondInfeasible maps composition failures to structured 422
// responses so clients can explain what is missing.
func (h *Handler) respondInfeasible(w http.ResponseWriter, err error) {
	var insufficient *outfit.InsufficientItemsError
	if errors.As(err, &insufficient) {
		metrics.RecordComposeInfeasible("insufficient_items")
		resp := models.Failure("INFEASIBLE", insufficient.Error())
		resp.Error.Details = map[string]interface{}{"missing_categories": insufficient.Missing}
		h.respondJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	var infeasible *outfit.InfeasibleError
	if errors.As(err, &infeasible) {
		metrics.RecordComposeInfeasible(infeasible.Condition)
		resp := models.Failure("INFEASIBLE", infeasible.Error())
		resp.Error.Details = map[string]interface{}{"condition": infeasible.Condition}
		h.respondJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	h.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "composition failed", err)
}

// SaveOutfitRequest is the body of POST /api/v1/outfits.
type SaveOutfitRequest struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	ItemIDs  []string `json:"item_ids"`
	Occasion string   `json:"occasion"`
}

// SaveOutfit handles POST /api/v1/outfits. Saving is the moment usage
// counters advance: each member item is incremented through the clamped
// ledger, so items already at their ceiling stay put.
func (h *Handler) SaveOutfit(w http.ResponseWriter, r *http.Request) {
	var req SaveOutfitRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Name == "" || len(req.ItemIDs) == 0 {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id, name and item_ids are required", nil)
		return
	}

	// An outfit is a set: a repeated ID must not double-charge the
	// item's usage counter.
	itemIDs := dedupeIDs(req.ItemIDs)

	// Verify every member exists before touching any counter.
	for _, itemID := range itemIDs {
		if _, err := h.store.GetItem(r.Context(), req.UserID, itemID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				h.respondError(w, http.StatusNotFound, "NOT_FOUND", "item "+itemID+" not found", nil)
				return
			}
			h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to load item", err)
			return
		}
	}

	saved := &wardrobe.Outfit{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Name:      req.Name,
		ItemIDs:   itemIDs,
		Occasion:  wardrobe.ParseOccasion(req.Occasion),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.PutOutfit(r.Context(), saved); err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to save outfit", err)
		return
	}

	for _, itemID := range itemIDs {
		if _, err := h.store.IncrementUsage(r.Context(), req.UserID, itemID); err != nil {
			h.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to increment usage for saved outfit")
		}
	}
	metrics.OutfitsSaved.Inc()
	h.invalidatePool(req.UserID)

	h.respondJSON(w, http.StatusCreated, models.Success(saved))
}

// dedupeIDs drops repeated IDs, keeping first-seen order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ListOutfits handles GET /api/v1/outfits.
func (h *Handler) ListOutfits(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	outfits, err := h.store.ListOutfits(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list outfits", err)
		return
	}
	if outfits == nil {
		outfits = []wardrobe.Outfit{}
	}
	h.respondJSON(w, http.StatusOK, models.Success(outfits))
}
