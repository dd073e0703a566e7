// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package ingest runs the cataloguing pipeline for new uploads: validate,
// refine the raw classification, fingerprint the image, resolve
// duplicates against the user's existing items, derive scoring
// attributes, and persist. Duplicates are reported, never silently
// persisted; the caller decides whether to keep the existing entry.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/garderobe/garderobe/internal/classify"
	"github.com/garderobe/garderobe/internal/dedup"
	"github.com/garderobe/garderobe/internal/imagehash"
	"github.com/garderobe/garderobe/internal/metrics"
	"github.com/garderobe/garderobe/internal/validation"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// ErrMixedUsers is returned when a batch mixes uploads from different
// users. Duplicate pools are per-user, so a batch must be too.
var ErrMixedUsers = errors.New("ingest: batch entries must share one user")

// ItemStore is the persistence surface the pipeline needs. *store.Store
// satisfies it.
type ItemStore interface {
	ListItems(ctx context.Context, userID string) ([]wardrobe.Item, error)
	PutItem(ctx context.Context, item *wardrobe.Item) error
}

// Request describes one upload entering the pipeline. RawCategory is the
// classifier's free-text output; it is narrowed and refined, never
// trusted.
type Request struct {
	UserID      string `json:"user_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=200"`
	RawCategory string `json:"category"`
	Color       string `json:"color"`
	Material    string `json:"material"`
	Pattern     string `json:"pattern"`
	Occasion    string `json:"occasion" validate:"occasion"`
	Filename    string `json:"filename"`
	Image       []byte `json:"image,omitempty"`

	// TemperatureC, when non-nil, is the current temperature and enables
	// the cold-weather refinement override.
	TemperatureC *float64 `json:"temperature_c,omitempty"`
}

// Result is the pipeline outcome for one upload. Exactly one of Item and
// Duplicate is populated.
type Result struct {
	// Item is the catalogued entry, nil when flagged as a duplicate.
	Item *wardrobe.Item `json:"item,omitempty"`

	// Duplicate is the resolution verdict, non-nil only when a duplicate
	// was detected.
	Duplicate *dedup.Verdict `json:"duplicate,omitempty"`

	// Refinement is the classification refinement outcome, populated on
	// every non-duplicate result.
	Refinement classify.Result `json:"refinement"`

	// Confirmation is a suggested user prompt for ambiguous garments.
	// Advisory; empty when the classification is unambiguous.
	Confirmation string `json:"confirmation,omitempty"`
}

// Service is the ingestion pipeline. Safe for concurrent use.
type Service struct {
	store          ItemStore
	resolver       *dedup.Resolver
	maxUses        int
	coldThresholdC float64
	logger         zerolog.Logger
	now            func() time.Time
}

// NewService creates an ingestion service. maxUses is the usage ceiling
// stamped on new items; non-positive values fall back to the default.
// coldThresholdC feeds the refiner's cold-weather override; a zero value
// falls back to the default threshold.
func NewService(store ItemStore, resolver *dedup.Resolver, maxUses int, coldThresholdC float64, logger zerolog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("ingest: store is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("ingest: resolver is required")
	}
	if maxUses <= 0 {
		maxUses = wardrobe.DefaultMaxUses
	}
	if coldThresholdC == 0 {
		coldThresholdC = wardrobe.ColdThresholdC
	}

	return &Service{
		store:          store,
		resolver:       resolver,
		maxUses:        maxUses,
		coldThresholdC: coldThresholdC,
		logger:         logger.With().Str("component", "ingest").Logger(),
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// Ingest runs the pipeline for a single upload. A duplicate verdict is a
// successful outcome, not an error: the item is simply not persisted.
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	start := s.now()

	if err := validation.Struct(&req); err != nil {
		metrics.RecordIngestValidationError()
		return nil, err
	}

	pool, err := s.store.ListItems(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("list existing items: %w", err)
	}

	item, refinement := s.buildItem(req)

	verdict := s.resolver.Resolve(probeFor(item, req.Filename), pool)
	metrics.RecordDedup(len(pool), string(verdict.Strategy))
	if verdict.IsDuplicate {
		s.logger.Info().
			Str("user_id", req.UserID).
			Str("strategy", string(verdict.Strategy)).
			Str("matched_item", verdict.Matched.ID).
			Msg("upload rejected as duplicate")
		return &Result{Duplicate: &verdict, Refinement: refinement}, nil
	}

	if err := s.store.PutItem(ctx, item); err != nil {
		metrics.RecordIngest(string(item.Category), 0, err)
		return nil, fmt.Errorf("persist item: %w", err)
	}
	metrics.RecordIngest(string(item.Category), s.now().Sub(start), nil)

	result := &Result{Item: item, Refinement: refinement}
	if prompt, ok := classify.NeedsConfirmation(item.Category, item.Name); ok {
		result.Confirmation = prompt
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("item_id", item.ID).
		Str("category", string(item.Category)).
		Int("confidence", refinement.Confidence).
		Msg("item catalogued")
	return result, nil
}

// IngestBatch runs the pipeline for a set of uploads. Entries are
// deduplicated against the existing pool and against earlier entries in
// the same batch; the returned slice is index-aligned with reqs. The
// batch is not atomic: a persistence failure aborts with entries before
// it already stored.
func (s *Service) IngestBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	for i := range reqs {
		if err := validation.Struct(&reqs[i]); err != nil {
			metrics.RecordIngestValidationError()
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if reqs[i].UserID != reqs[0].UserID {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMixedUsers)
		}
	}

	pool, err := s.store.ListItems(ctx, reqs[0].UserID)
	if err != nil {
		return nil, fmt.Errorf("list existing items: %w", err)
	}

	items := make([]wardrobe.Item, len(reqs))
	refinements := make([]classify.Result, len(reqs))
	filenames := make([]string, len(reqs))
	for i := range reqs {
		item, refinement := s.buildItem(reqs[i])
		items[i] = *item
		refinements[i] = refinement
		filenames[i] = reqs[i].Filename
	}

	verdicts := s.resolver.ResolveBatch(items, filenames, pool)

	results := make([]Result, len(reqs))
	for i := range reqs {
		metrics.RecordDedup(len(pool), string(verdicts[i].Strategy))
		if verdicts[i].IsDuplicate {
			results[i] = Result{Duplicate: &verdicts[i], Refinement: refinements[i]}
			continue
		}

		if err := s.store.PutItem(ctx, &items[i]); err != nil {
			metrics.RecordIngest(string(items[i].Category), 0, err)
			return nil, fmt.Errorf("persist entry %d: %w", i, err)
		}
		metrics.RecordIngest(string(items[i].Category), 0, nil)

		results[i] = Result{Item: &items[i], Refinement: refinements[i]}
		if prompt, ok := classify.NeedsConfirmation(items[i].Category, items[i].Name); ok {
			results[i].Confirmation = prompt
		}
	}

	s.logger.Info().
		Str("user_id", reqs[0].UserID).
		Int("total", len(reqs)).
		Int("catalogued", countCatalogued(results)).
		Msg("batch ingested")
	return results, nil
}

// Resolve runs duplicate resolution against the given pool without
// persisting anything. Used by the advisory duplicate-check endpoint.
func (s *Service) Resolve(probe dedup.Probe, pool []wardrobe.Item) dedup.Verdict {
	return s.resolver.Resolve(probe, pool)
}

// buildItem assembles the provisional item: narrowed category, refined
// classification, perceptual fingerprint and derived attributes. The
// item carries a fresh ID but is not yet persisted.
func (s *Service) buildItem(req Request) (*wardrobe.Item, classify.Result) {
	refinement := classify.Refine(req.RawCategory, req.Name, req.Color, req.TemperatureC, s.coldThresholdC)
	occasion := wardrobe.ParseOccasion(req.Occasion)

	fingerprint := imagehash.Hash(req.Image)
	if len(req.Image) > 0 && !imagehash.Comparable(fingerprint) {
		s.logger.Warn().
			Str("item_name", req.Name).
			Str("filename", req.Filename).
			Msg("image undecodable, fingerprint degraded to raw digest")
	}

	return &wardrobe.Item{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		Name:           req.Name,
		Category:       refinement.Category,
		Subcategory:    refinement.Subcategory,
		Color:          req.Color,
		Material:       req.Material,
		Pattern:        req.Pattern,
		Occasion:       occasion,
		Attributes:     wardrobe.DeriveAttributes(req.Name, req.Color, req.Material, occasion),
		Fingerprint:    fingerprint,
		SourceFilename: req.Filename,
		Usage:          wardrobe.NewUsageCounter(s.maxUses),
		CreatedAt:      s.now(),
	}, refinement
}

func probeFor(item *wardrobe.Item, filename string) dedup.Probe {
	return dedup.Probe{
		Fingerprint: item.Fingerprint,
		Name:        item.Name,
		Category:    item.Category,
		Color:       item.Color,
		Filename:    filename,
	}
}

func countCatalogued(results []Result) int {
	n := 0
	for i := range results {
		if results[i].Item != nil {
			n++
		}
	}
	return n
}
