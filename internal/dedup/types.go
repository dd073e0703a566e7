// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package dedup

import (
	"fmt"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// StrategyName identifies a detection strategy.
type StrategyName string

const (
	// StrategyExactFingerprint matches byte-identical image content.
	StrategyExactFingerprint StrategyName = "exact_fingerprint"

	// StrategyNearFingerprint matches perceptually similar images.
	StrategyNearFingerprint StrategyName = "near_fingerprint"

	// StrategyExactMetadata matches identical name, category and color.
	StrategyExactMetadata StrategyName = "exact_metadata"

	// StrategyFilename matches near-identical upload filenames within a
	// category.
	StrategyFilename StrategyName = "filename"

	// StrategySemanticOverlap matches same category and color with
	// overlapping significant name words.
	StrategySemanticOverlap StrategyName = "semantic_overlap"
)

// Probe describes a new upload being checked against existing entries.
type Probe struct {
	// Fingerprint is the perceptual fingerprint of the uploaded image.
	Fingerprint string `json:"fingerprint"`

	// Name is the descriptive item name.
	Name string `json:"name"`

	// Category is the canonical category after refinement.
	Category wardrobe.Category `json:"category"`

	// Color is the dominant color.
	Color string `json:"color"`

	// Filename is the original upload filename. Optional; enables the
	// filename strategy when present.
	Filename string `json:"filename,omitempty"`
}

// Verdict is the outcome of duplicate resolution. It is a pure computed
// value, never stored.
type Verdict struct {
	// IsDuplicate reports whether any strategy flagged a match.
	IsDuplicate bool `json:"is_duplicate"`

	// Matched is the flagged existing item, nil when distinct.
	Matched *wardrobe.Item `json:"matched,omitempty"`

	// Similarity scores the match 0..100.
	Similarity float64 `json:"similarity"`

	// Strategy names the strategy that fired, empty when distinct.
	Strategy StrategyName `json:"strategy,omitempty"`

	// Reason is the human-readable explanation.
	Reason string `json:"reason,omitempty"`
}

// Config holds the resolution thresholds.
type Config struct {
	// NearFingerprintThreshold is the minimum perceptual similarity
	// (0..100) for the near-fingerprint strategy.
	NearFingerprintThreshold float64 `json:"near_fingerprint_threshold" koanf:"near_fingerprint_threshold"`

	// FilenameThreshold is the minimum normalized filename similarity
	// (0..100) for the filename strategy.
	FilenameThreshold float64 `json:"filename_threshold" koanf:"filename_threshold"`

	// MinSharedWords is the minimum count of shared significant name
	// words for the semantic-overlap strategy.
	MinSharedWords int `json:"min_shared_words" koanf:"min_shared_words"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() *Config {
	return &Config{
		NearFingerprintThreshold: 95,
		FilenameThreshold:        85,
		MinSharedWords:           2,
	}
}

// Validate checks threshold sanity.
func (c *Config) Validate() error {
	if c.NearFingerprintThreshold <= 0 || c.NearFingerprintThreshold > 100 {
		return fmt.Errorf("near_fingerprint_threshold must be in (0, 100], got %v", c.NearFingerprintThreshold)
	}
	if c.FilenameThreshold <= 0 || c.FilenameThreshold > 100 {
		return fmt.Errorf("filename_threshold must be in (0, 100], got %v", c.FilenameThreshold)
	}
	if c.MinSharedWords < 1 {
		return fmt.Errorf("min_shared_words must be at least 1, got %d", c.MinSharedWords)
	}
	return nil
}
