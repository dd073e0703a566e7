// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package dedup decides whether a newly uploaded item duplicates an
// existing wardrobe entry. Resolution runs an ordered chain of detection
// strategies, highest confidence first; the first strategy that matches
// any candidate wins. Every outcome is a structured Verdict value -
// resolution has no failure mode.
package dedup

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// Resolver runs the strategy chain against a candidate pool. It is a pure
// function of its inputs and safe for concurrent use.
type Resolver struct {
	config     *Config
	logger     zerolog.Logger
	strategies []strategy
}

// NewResolver creates a resolver with the given thresholds. A nil config
// uses defaults.
func NewResolver(cfg *Config, logger zerolog.Logger) (*Resolver, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Resolver{
		config: cfg,
		logger: logger.With().Str("component", "dedup").Logger(),
		strategies: []strategy{
			exactFingerprint{},
			nearFingerprint{threshold: cfg.NearFingerprintThreshold},
			exactMetadata{},
			filenameSimilarity{threshold: cfg.FilenameThreshold},
			semanticOverlap{minShared: cfg.MinSharedWords},
		},
	}, nil
}

// Resolve checks a probe against the candidate pool. Strategies run in
// confidence order; within a strategy, candidates are scanned in pool
// order and the first match wins.
func (r *Resolver) Resolve(probe Probe, pool []wardrobe.Item) Verdict {
	for _, s := range r.strategies {
		for i := range pool {
			score, reason, matched := s.Check(probe, &pool[i])
			if !matched {
				continue
			}

			r.logger.Debug().
				Str("strategy", string(s.Name())).
				Str("matched_item", pool[i].ID).
				Float64("similarity", score).
				Msg("duplicate detected")

			return Verdict{
				IsDuplicate: true,
				Matched:     &pool[i],
				Similarity:  score,
				Strategy:    s.Name(),
				Reason:      reason,
			}
		}
	}

	return Verdict{IsDuplicate: false}
}

// ResolveBatch checks a set of new uploads against the pool and against
// each other: two uploads in the same batch can duplicate one another
// before either is persisted. Each entry is checked against the pool plus
// all earlier entries that were not themselves flagged as duplicates.
// The returned slice is index-aligned with items.
func (r *Resolver) ResolveBatch(items []wardrobe.Item, filenames []string, pool []wardrobe.Item) []Verdict {
	verdicts := make([]Verdict, len(items))

	// accepted holds earlier batch entries that survived resolution.
	accepted := make([]wardrobe.Item, 0, len(items))

	for i := range items {
		probe := Probe{
			Fingerprint: items[i].Fingerprint,
			Name:        items[i].Name,
			Category:    items[i].Category,
			Color:       items[i].Color,
		}
		if i < len(filenames) {
			probe.Filename = filenames[i]
		}

		candidates := make([]wardrobe.Item, 0, len(pool)+len(accepted))
		candidates = append(candidates, accepted...)
		candidates = append(candidates, pool...)

		verdicts[i] = r.Resolve(probe, candidates)
		if !verdicts[i].IsDuplicate {
			accepted = append(accepted, items[i])
		}
	}

	return verdicts
}
