// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package outfit is the combinatorial composition engine. It partitions
// available items by category, enumerates a bounded Cartesian product
// under hard constraints, scores each combination with an additive
// heuristic, deduplicates by item-set identity, and returns a ranked
// top-N of transient candidates.
//
// Composition is a pure function of its inputs: the engine holds no
// wardrobe state and mutates nothing, so concurrent requests for the same
// user cannot race. Usage counters are only advanced later, when a user
// explicitly saves a candidate.
package outfit

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// Composer generates ranked outfit candidates. Safe for concurrent use.
type Composer struct {
	config *Config
	logger zerolog.Logger
}

// NewComposer creates a composer. A nil config uses defaults.
func NewComposer(cfg *Config, logger zerolog.Logger) (*Composer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ColdThresholdC == 0 {
		cfg.ColdThresholdC = wardrobe.ColdThresholdC
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Composer{
		config: cfg,
		logger: logger.With().Str("component", "outfit").Logger(),
	}, nil
}

// Compose proposes up to maxResults outfits from the given items for the
// given context, ordered by score descending and deduplicated by
// item-id-set. maxResults <= 0 falls back to the configured default.
//
// Hard-constraint failures return typed errors rather than empty lists:
// *InsufficientItemsError when no available top or bottom exists, and
// *InfeasibleError when cold weather is requested against a pool with no
// outerwear at all.
func (c *Composer) Compose(items []wardrobe.Item, reqCtx Context, maxResults int) ([]Candidate, error) {
	if maxResults <= 0 {
		maxResults = c.config.DefaultMaxResults
	}

	available := filterAvailable(items)
	byCategory := partition(available)

	if err := c.checkHardConstraints(byCategory, reqCtx); err != nil {
		return nil, err
	}

	candidates := c.enumerate(byCategory, reqCtx)
	if len(candidates) == 0 {
		return nil, &InfeasibleError{
			Condition: ConditionNoViableCombination,
			Detail:    fmt.Sprintf("%d available items produced no outfit of %d or more pieces", len(available), c.config.MinOutfitSize),
		}
	}

	for i := range candidates {
		c.score(&candidates[i], reqCtx)
	}

	// Stable rank: score descending, set key as deterministic tie-break.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Key() < candidates[j].Key()
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	c.logger.Debug().
		Int("available", len(available)).
		Int("returned", len(candidates)).
		Str("occasion", string(reqCtx.Occasion)).
		Float64("temperature_c", reqCtx.TemperatureC).
		Msg("composition complete")

	return candidates, nil
}

// filterAvailable drops items whose usage counter is at its ceiling.
// At-limit items are invisible to composition until reset.
func filterAvailable(items []wardrobe.Item) []wardrobe.Item {
	available := make([]wardrobe.Item, 0, len(items))
	for _, it := range items {
		if it.Usage.CanUse() {
			available = append(available, it)
		}
	}
	return available
}

// partition splits items by category, each bucket sorted least-used
// first (newest breaking ties) so fresher items get enumeration slots.
func partition(items []wardrobe.Item) map[wardrobe.Category][]wardrobe.Item {
	byCategory := make(map[wardrobe.Category][]wardrobe.Item)
	for _, it := range items {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}
	for _, bucket := range byCategory {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].Usage.Current != bucket[j].Usage.Current {
				return bucket[i].Usage.Current < bucket[j].Usage.Current
			}
			return bucket[i].CreatedAt.After(bucket[j].CreatedAt)
		})
	}
	return byCategory
}

// checkHardConstraints fails fast on constraints no enumeration can fix.
func (c *Composer) checkHardConstraints(byCategory map[wardrobe.Category][]wardrobe.Item, reqCtx Context) error {
	var missing []wardrobe.Category
	if len(byCategory[wardrobe.CategoryTop]) == 0 {
		missing = append(missing, wardrobe.CategoryTop)
	}
	if len(byCategory[wardrobe.CategoryBottom]) == 0 {
		missing = append(missing, wardrobe.CategoryBottom)
	}
	if len(missing) > 0 {
		return &InsufficientItemsError{Missing: missing}
	}

	// Cold weather makes outerwear mandatory in every candidate. With
	// zero outerwear available the request is infeasible outright; a
	// jacket-less outfit is never silently produced instead.
	if reqCtx.Cold(c.config.ColdThresholdC) && len(byCategory[wardrobe.CategoryOuterwear]) == 0 {
		return &InfeasibleError{
			Condition: ConditionColdWithoutOuterwear,
			Detail:    fmt.Sprintf("%.0f°C requested with no available outerwear", reqCtx.TemperatureC),
		}
	}

	return nil
}

// enumerate draws combinations from the bounded Cartesian product,
// deduplicates by item-set identity, enforces the minimum size rule, and
// stops once the candidate budget is reached.
func (c *Composer) enumerate(byCategory map[wardrobe.Category][]wardrobe.Item, reqCtx Context) []Candidate {
	limit := c.config.MaxPerCategory
	tops := truncateBucket(byCategory[wardrobe.CategoryTop], limit)
	bottoms := truncateBucket(byCategory[wardrobe.CategoryBottom], limit)
	shoes := truncateBucket(byCategory[wardrobe.CategoryShoes], limit)
	outer := truncateBucket(byCategory[wardrobe.CategoryOuterwear], limit)
	accessories := truncateBucket(byCategory[wardrobe.CategoryAccessory], limit)

	dims := [][]wardrobe.Item{tops, bottoms, shoes}
	if reqCtx.Cold(c.config.ColdThresholdC) {
		dims = append(dims, outer)
	}
	if reqCtx.Occasion == wardrobe.OccasionFormal || reqCtx.Occasion == wardrobe.OccasionBusiness {
		dims = append(dims, accessories)
	}

	seen := make(map[string]struct{})
	var candidates []Candidate

	e := newEnumerator(dims...)
	for len(candidates) < c.config.MaxCandidates {
		combo, ok := e.next()
		if !ok {
			break
		}

		cand, ok := c.buildCandidate(combo, accessories, reqCtx)
		if !ok {
			continue
		}

		key := cand.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, cand)
	}

	return candidates
}

// buildCandidate assembles a combination into a candidate, dropping
// duplicate item IDs and enforcing the minimum size rule. An undersized
// combination is padded with the first unused accessory before being
// rejected.
func (c *Composer) buildCandidate(combo []wardrobe.Item, accessories []wardrobe.Item, reqCtx Context) (Candidate, bool) {
	used := make(map[string]struct{}, len(combo))
	members := make([]wardrobe.Item, 0, len(combo)+1)
	for _, it := range combo {
		if _, dup := used[it.ID]; dup {
			continue
		}
		used[it.ID] = struct{}{}
		members = append(members, it)
	}

	if len(members) < c.config.MinOutfitSize {
		for _, acc := range accessories {
			if _, dup := used[acc.ID]; dup {
				continue
			}
			members = append(members, acc)
			break
		}
	}
	if len(members) < c.config.MinOutfitSize {
		return Candidate{}, false
	}

	return Candidate{
		Items:        members,
		Occasion:     reqCtx.Occasion,
		TemperatureC: reqCtx.TemperatureC,
		TimeOfDay:    reqCtx.TimeOfDay,
	}, true
}

func truncateBucket(bucket []wardrobe.Item, max int) []wardrobe.Item {
	if len(bucket) > max {
		return bucket[:max]
	}
	return bucket
}
