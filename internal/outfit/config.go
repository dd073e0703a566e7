// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package outfit

import (
	"fmt"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// Config contains all tunables for the composition engine.
type Config struct {
	// MaxPerCategory caps how many items per category enter enumeration,
	// keeping the combination count tractable.
	MaxPerCategory int `json:"max_per_category" koanf:"max_per_category"`

	// ColdThresholdC is the temperature below which an outerwear layer
	// becomes a hard constraint. Mirrors the wardrobe-level setting;
	// plumbed in at wiring time rather than loaded separately.
	ColdThresholdC float64 `json:"cold_threshold_c"`

	// MaxCandidates bounds how many combinations are drawn from the
	// enumerator before scoring. The enumerator is lazy; combinations
	// past this budget are never materialized.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// MinOutfitSize is the minimum number of distinct items per
	// candidate. Undersized combinations are padded with an unused
	// accessory before being discarded.
	MinOutfitSize int `json:"min_outfit_size" koanf:"min_outfit_size"`

	// DefaultMaxResults applies when a request passes maxResults <= 0.
	DefaultMaxResults int `json:"default_max_results" koanf:"default_max_results"`

	// Weights tunes the additive scoring heuristic.
	Weights ScoreWeights `json:"weights" koanf:"weights"`
}

// ScoreWeights are the bonus and penalty magnitudes applied on top of the
// base score.
type ScoreWeights struct {
	// Base is the starting score for every candidate.
	Base float64 `json:"base" koanf:"base"`

	// OccasionMatch is the per-item bonus when item formality suits the
	// requested occasion.
	OccasionMatch float64 `json:"occasion_match" koanf:"occasion_match"`

	// OccasionMismatch is the per-item penalty when item formality
	// clashes with the requested occasion.
	OccasionMismatch float64 `json:"occasion_mismatch" koanf:"occasion_mismatch"`

	// ColorCohesionMax is the maximum palette-cohesion bonus, awarded in
	// full to single-family outfits and tapering off per extra family.
	ColorCohesionMax float64 `json:"color_cohesion_max" koanf:"color_cohesion_max"`

	// WeatherMatch is the bonus for an outerwear layer in cold weather,
	// doubled for insulating construction.
	WeatherMatch float64 `json:"weather_match" koanf:"weather_match"`

	// AffinityPerMatch is the per-match profile affinity bonus.
	AffinityPerMatch float64 `json:"affinity_per_match" koanf:"affinity_per_match"`

	// AffinityMax caps the total affinity bonus per candidate.
	AffinityMax float64 `json:"affinity_max" koanf:"affinity_max"`
}

// DefaultConfig returns the standard composition tunables.
func DefaultConfig() *Config {
	return &Config{
		MaxPerCategory:    5,
		ColdThresholdC:    wardrobe.ColdThresholdC,
		MaxCandidates:     256,
		MinOutfitSize:     3,
		DefaultMaxResults: 5,
		Weights: ScoreWeights{
			Base:             100,
			OccasionMatch:    8,
			OccasionMismatch: 6,
			ColorCohesionMax: 15,
			WeatherMatch:     10,
			AffinityPerMatch: 3,
			AffinityMax:      9,
		},
	}
}

// Validate checks tunable sanity.
func (c *Config) Validate() error {
	if c.MaxPerCategory < 1 {
		return fmt.Errorf("max_per_category must be at least 1, got %d", c.MaxPerCategory)
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be at least 1, got %d", c.MaxCandidates)
	}
	if c.MinOutfitSize < 2 {
		return fmt.Errorf("min_outfit_size must be at least 2, got %d", c.MinOutfitSize)
	}
	if c.DefaultMaxResults < 1 {
		return fmt.Errorf("default_max_results must be at least 1, got %d", c.DefaultMaxResults)
	}
	if c.Weights.Base <= 0 {
		return fmt.Errorf("weights.base must be positive, got %v", c.Weights.Base)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
