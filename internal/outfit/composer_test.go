// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package outfit

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return c
}

func testItem(id string, category wardrobe.Category, color string) wardrobe.Item {
	return wardrobe.Item{
		ID:       id,
		Name:     id,
		Category: category,
		Color:    color,
		Attributes: wardrobe.Attributes{
			Formality:   wardrobe.FormalityCasual,
			ColorFamily: wardrobe.DeriveColorFamily(color),
		},
		Usage:     wardrobe.NewUsageCounter(wardrobe.DefaultMaxUses),
		CreatedAt: time.Now(),
	}
}

func basicPool() []wardrobe.Item {
	return []wardrobe.Item{
		testItem("top-a", wardrobe.CategoryTop, "white"),
		testItem("top-b", wardrobe.CategoryTop, "black"),
		testItem("bottom-c", wardrobe.CategoryBottom, "black"),
		testItem("shoes-d", wardrobe.CategoryShoes, "white"),
	}
}

func mildContext() Context {
	return Context{Occasion: wardrobe.OccasionCasual, TemperatureC: 20, TimeOfDay: TimeAfternoon, Season: SeasonSpring}
}

func TestComposeReturnsRankedCandidates(t *testing.T) {
	c := newTestComposer(t)

	candidates, err := c.Compose(basicPool(), mildContext(), 3)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if len(candidates) == 0 || len(candidates) > 3 {
		t.Fatalf("got %d candidates, want 1..3", len(candidates))
	}

	for i, cand := range candidates {
		if len(cand.Items) < 3 {
			t.Errorf("candidate %d has %d items, want >= 3", i, len(cand.Items))
		}
		tops, bottoms := 0, 0
		for _, it := range cand.Items {
			switch it.Category {
			case wardrobe.CategoryTop:
				tops++
			case wardrobe.CategoryBottom:
				bottoms++
			}
		}
		if tops != 1 || bottoms != 1 {
			t.Errorf("candidate %d has %d tops and %d bottoms, want exactly one of each", i, tops, bottoms)
		}
		if i > 0 && candidates[i-1].Score < cand.Score {
			t.Errorf("candidates not sorted by score: %v before %v", candidates[i-1].Score, cand.Score)
		}
	}
}

func TestComposeDeduplicatesByItemSet(t *testing.T) {
	c := newTestComposer(t)

	candidates, err := c.Compose(basicPool(), mildContext(), 10)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	seen := make(map[string]struct{})
	for _, cand := range candidates {
		key := cand.Key()
		if _, dup := seen[key]; dup {
			t.Errorf("duplicate item set returned: %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestComposeMissingCategories(t *testing.T) {
	c := newTestComposer(t)

	pool := []wardrobe.Item{
		testItem("shoes-d", wardrobe.CategoryShoes, "white"),
	}

	_, err := c.Compose(pool, mildContext(), 3)
	var insufficient *InsufficientItemsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientItemsError", err)
	}
	if len(insufficient.Missing) != 2 {
		t.Errorf("missing = %v, want top and bottom", insufficient.Missing)
	}
}

func TestComposeColdWithoutOuterwearIsInfeasible(t *testing.T) {
	c := newTestComposer(t)

	// Valid tops/bottoms/shoes but zero outerwear at 5°C: the request
	// must fail with the blocking condition, never produce a jacket-less
	// outfit.
	reqCtx := mildContext()
	reqCtx.TemperatureC = 5

	_, err := c.Compose(basicPool(), reqCtx, 3)
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("err = %v, want InfeasibleError", err)
	}
	if infeasible.Condition != ConditionColdWithoutOuterwear {
		t.Errorf("condition = %q, want %q", infeasible.Condition, ConditionColdWithoutOuterwear)
	}
}

func TestComposeHonorsConfiguredColdThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColdThresholdC = 15
	c, err := NewComposer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}

	// 12°C is mild under the default threshold but cold under the raised
	// one, so a pool with no outerwear must now be infeasible.
	reqCtx := mildContext()
	reqCtx.TemperatureC = 12

	_, err = c.Compose(basicPool(), reqCtx, 3)
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("err = %v, want InfeasibleError at raised threshold", err)
	}
}

func TestComposeColdIncludesOuterwearInEveryCandidate(t *testing.T) {
	c := newTestComposer(t)

	pool := append(basicPool(),
		testItem("coat-e", wardrobe.CategoryOuterwear, "navy"),
	)
	reqCtx := mildContext()
	reqCtx.TemperatureC = 5

	candidates, err := c.Compose(pool, reqCtx, 10)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected candidates with outerwear available")
	}

	for i, cand := range candidates {
		hasOuter := false
		for _, it := range cand.Items {
			if it.Category == wardrobe.CategoryOuterwear {
				hasOuter = true
			}
		}
		if !hasOuter {
			t.Errorf("candidate %d lacks outerwear in cold weather", i)
		}
	}
}

func TestComposeExcludesAtLimitItems(t *testing.T) {
	c := newTestComposer(t)

	pool := basicPool()
	// Exhaust the only bottom.
	pool[2].Usage = wardrobe.UsageCounter{Current: 3, Maximum: 3}

	_, err := c.Compose(pool, mildContext(), 3)
	var insufficient *InsufficientItemsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientItemsError for exhausted bottom", err)
	}
	if len(insufficient.Missing) != 1 || insufficient.Missing[0] != wardrobe.CategoryBottom {
		t.Errorf("missing = %v, want [bottom]", insufficient.Missing)
	}
}

func TestComposeMaxResultsCap(t *testing.T) {
	c := newTestComposer(t)

	// {top A, top B, bottom C, shoes D}: two feasible combinations.
	candidates, err := c.Compose(basicPool(), mildContext(), 3)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("got %d candidates, want min(3, feasible) = 2", len(candidates))
	}
}

func TestComposePadsWithAccessory(t *testing.T) {
	c := newTestComposer(t)

	// No shoes: top+bottom is undersized and must be padded with the
	// accessory to reach three pieces.
	pool := []wardrobe.Item{
		testItem("top-a", wardrobe.CategoryTop, "white"),
		testItem("bottom-c", wardrobe.CategoryBottom, "black"),
		testItem("belt-e", wardrobe.CategoryAccessory, "brown"),
	}

	candidates, err := c.Compose(pool, mildContext(), 3)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if len(candidates[0].Items) != 3 {
		t.Errorf("padded candidate has %d items, want 3", len(candidates[0].Items))
	}
}

func TestComposeUndersizedWithoutAccessoryIsInfeasible(t *testing.T) {
	c := newTestComposer(t)

	pool := []wardrobe.Item{
		testItem("top-a", wardrobe.CategoryTop, "white"),
		testItem("bottom-c", wardrobe.CategoryBottom, "black"),
	}

	_, err := c.Compose(pool, mildContext(), 3)
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("err = %v, want InfeasibleError", err)
	}
	if infeasible.Condition != ConditionNoViableCombination {
		t.Errorf("condition = %q, want %q", infeasible.Condition, ConditionNoViableCombination)
	}
}

func TestComposeDefaultMaxResults(t *testing.T) {
	c := newTestComposer(t)

	pool := basicPool()
	for i := 0; i < 4; i++ {
		pool = append(pool, testItem(fmt.Sprintf("extra-top-%d", i), wardrobe.CategoryTop, "gray"))
	}

	candidates, err := c.Compose(pool, mildContext(), 0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(candidates) > DefaultConfig().DefaultMaxResults {
		t.Errorf("got %d candidates, want <= default cap %d", len(candidates), DefaultConfig().DefaultMaxResults)
	}
}

func TestComposeBoundsEnumeration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCandidates = 4
	c, err := NewComposer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}

	pool := []wardrobe.Item{}
	for i := 0; i < 10; i++ {
		pool = append(pool,
			testItem(fmt.Sprintf("top-%d", i), wardrobe.CategoryTop, "white"),
			testItem(fmt.Sprintf("bottom-%d", i), wardrobe.CategoryBottom, "black"),
			testItem(fmt.Sprintf("shoes-%d", i), wardrobe.CategoryShoes, "brown"),
		)
	}

	candidates, err := c.Compose(pool, mildContext(), 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(candidates) > 4 {
		t.Errorf("got %d candidates, enumeration budget is 4", len(candidates))
	}
}

func TestComposeCandidatesCarryReasons(t *testing.T) {
	c := newTestComposer(t)

	pool := append(basicPool(), testItem("coat-e", wardrobe.CategoryOuterwear, "navy"))
	reqCtx := mildContext()
	reqCtx.TemperatureC = 5

	candidates, err := c.Compose(pool, reqCtx, 1)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(candidates[0].Reasons) == 0 {
		t.Error("candidate should carry human-readable reasons")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"zero per-category cap", func(c *Config) { c.MaxPerCategory = 0 }, true},
		{"zero candidate budget", func(c *Config) { c.MaxCandidates = 0 }, true},
		{"min size below two", func(c *Config) { c.MinOutfitSize = 1 }, true},
		{"non-positive base", func(c *Config) { c.Weights.Base = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
