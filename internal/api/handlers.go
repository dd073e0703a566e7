// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package api provides the HTTP surface using the Chi router. Handlers
// are split by resource:
//   - handlers.go: Handler struct, constructor, shared helpers
//   - handlers_items.go: item ingestion, listing, usage, duplicate check
//   - handlers_outfits.go: composition, saving, listing
//   - handlers_profile.go: style profile
//   - handlers_health.go: health endpoint
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/garderobe/garderobe/internal/cache"
	"github.com/garderobe/garderobe/internal/ingest"
	"github.com/garderobe/garderobe/internal/models"
	"github.com/garderobe/garderobe/internal/outfit"
	"github.com/garderobe/garderobe/internal/store"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// maxRequestBody caps request bodies at 8 MiB; image payloads arrive
// base64-encoded inside JSON.
const maxRequestBody = 8 << 20

// poolCacheTTL bounds staleness of the per-user item pool cache. Writes
// invalidate eagerly; the TTL only covers out-of-band store changes.
const poolCacheTTL = 30 * time.Second

// Handler holds the dependencies for all API handlers.
type Handler struct {
	store     *store.Store
	ingest    *ingest.Service
	composer  *outfit.Composer
	pool      *cache.Cache
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, ing *ingest.Service, composer *outfit.Composer, logger zerolog.Logger) (*Handler, error) {
	if st == nil || ing == nil || composer == nil {
		return nil, fmt.Errorf("api: store, ingest service and composer are required")
	}
	return &Handler{
		store:     st,
		ingest:    ing,
		composer:  composer,
		pool:      cache.New(poolCacheTTL),
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now().UTC(),
	}, nil
}

// itemPool returns the user's items, served from the pool cache when
// fresh.
func (h *Handler) itemPool(ctx context.Context, userID string) ([]wardrobe.Item, error) {
	if cached, ok := h.pool.Get(userID); ok {
		if items, ok := cached.([]wardrobe.Item); ok {
			return items, nil
		}
	}

	items, err := h.store.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	h.pool.Set(userID, items)
	return items, nil
}

// invalidatePool drops the cached pool after any write touching the
// user's items.
func (h *Handler) invalidatePool(userID string) {
	h.pool.Delete(userID)
}

// respondJSON sends a JSON envelope with proper headers.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondError sends an error envelope.
func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		h.logger.Error().Str("code", code).Err(err).Msg("api error")
	}
	h.respondJSON(w, status, models.Failure(code, message))
}

// decodeJSON decodes a request body with a size cap. A false return means
// the error response has already been written.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", err)
		return false
	}
	return true
}

// userID extracts the required user_id query parameter. A false return
// means the error response has already been written.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("user_id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id query parameter is required", nil)
		return "", false
	}
	return id, true
}
