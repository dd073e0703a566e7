// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/garderobe/garderobe/internal/dedup"
	"github.com/garderobe/garderobe/internal/ingest"
	"github.com/garderobe/garderobe/internal/metrics"
	"github.com/garderobe/garderobe/internal/models"
	"github.com/garderobe/garderobe/internal/store"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// IngestItem handles POST /api/v1/items. A duplicate upload is answered
// with 409 and the full verdict, so clients can show what matched.
func (h *Handler) IngestItem(w http.ResponseWriter, r *http.Request) {
	var req ingest.Request
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.ingest.Ingest(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to catalogue item", err)
		return
	}
	h.invalidatePool(req.UserID)

	if result.Duplicate != nil {
		resp := models.Failure("DUPLICATE_ITEM", result.Duplicate.Reason)
		resp.Data = result
		h.respondJSON(w, http.StatusConflict, resp)
		return
	}
	h.respondJSON(w, http.StatusCreated, models.Success(result))
}

// IngestBatch handles POST /api/v1/items/batch. The response is
// index-aligned with the request entries; duplicates are reported inline
// rather than failing the batch.
func (h *Handler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []ingest.Request `json:"items"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "items must not be empty", nil)
		return
	}

	results, err := h.ingest.IngestBatch(r.Context(), req.Items)
	if err != nil {
		if isValidationError(err) {
			h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to catalogue batch", err)
		return
	}
	h.invalidatePool(req.Items[0].UserID)
	h.respondJSON(w, http.StatusOK, models.Success(results))
}

// ListItems handles GET /api/v1/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.itemPool(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list items", err)
		return
	}
	if items == nil {
		items = []wardrobe.Item{}
	}
	h.respondJSON(w, http.StatusOK, models.Success(items))
}

// DeleteItem handles DELETE /api/v1/items/{itemID}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := h.store.DeleteItem(r.Context(), userID, itemID); err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to delete item", err)
		return
	}
	h.invalidatePool(userID)
	h.respondJSON(w, http.StatusOK, models.Success(map[string]string{"deleted": itemID}))
}

// CheckDuplicate handles POST /api/v1/items/duplicate-check. It runs the
// full pipeline up to resolution but persists nothing, so clients can
// warn before committing an upload.
func (h *Handler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"user_id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		Color       string `json:"color"`
		Filename    string `json:"filename"`
		Fingerprint string `json:"fingerprint"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required", nil)
		return
	}

	pool, err := h.itemPool(r.Context(), req.UserID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list items", err)
		return
	}

	category, _ := wardrobe.ParseCategory(req.Category)
	verdict := h.ingest.Resolve(dedup.Probe{
		Fingerprint: req.Fingerprint,
		Name:        req.Name,
		Category:    category,
		Color:       req.Color,
		Filename:    req.Filename,
	}, pool)
	metrics.RecordDedup(len(pool), string(verdict.Strategy))

	h.respondJSON(w, http.StatusOK, models.Success(verdict))
}

// ResetUsage handles POST /api/v1/items/{itemID}/usage/reset.
func (h *Handler) ResetUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	usage, err := h.store.ResetUsage(r.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "NOT_FOUND", "item not found", nil)
			return
		}
		h.respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to reset usage", err)
		return
	}
	metrics.UsageResets.Inc()
	h.invalidatePool(userID)

	h.respondJSON(w, http.StatusOK, models.Success(usage))
}

// isValidationError distinguishes input rejections from infrastructure
// failures so they map to 400 instead of 500.
func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ingest.ErrMixedUsers) || strings.Contains(err.Error(), "validation failed")
}
