// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package dedup

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func poolItem(id, name string, category wardrobe.Category, color, fingerprint, filename string) wardrobe.Item {
	return wardrobe.Item{
		ID:             id,
		Name:           name,
		Category:       category,
		Color:          color,
		Fingerprint:    fingerprint,
		SourceFilename: filename,
	}
}

func TestResolveExactFingerprint(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("a", "White Tee", wardrobe.CategoryTop, "white", "dh:0123456789abcdef", ""),
	}

	v := r.Resolve(Probe{Fingerprint: "dh:0123456789abcdef", Name: "Something Else", Category: wardrobe.CategoryBottom}, pool)
	if !v.IsDuplicate {
		t.Fatal("identical fingerprint should be a duplicate")
	}
	if v.Similarity != 100 || v.Strategy != StrategyExactFingerprint {
		t.Errorf("verdict = %+v, want similarity 100 via exact_fingerprint", v)
	}
	if v.Reason != "identical image" {
		t.Errorf("reason = %q, want %q", v.Reason, "identical image")
	}
	if v.Matched == nil || v.Matched.ID != "a" {
		t.Errorf("matched = %+v, want item a", v.Matched)
	}
}

func TestResolveNearFingerprint(t *testing.T) {
	r := newTestResolver(t)
	// One flipped bit out of 64: similarity 98.4375, above the 95
	// threshold.
	pool := []wardrobe.Item{
		poolItem("a", "Navy Blue Blazer", wardrobe.CategoryOuterwear, "navy blue", "dh:0000000000000000", ""),
	}

	v := r.Resolve(Probe{
		Fingerprint: "dh:0000000000000001",
		Name:        "  navy blue BLAZER ", // user-typed casing and whitespace
		Category:    wardrobe.CategoryOuterwear,
		Color:       "navy blue",
	}, pool)

	if !v.IsDuplicate || v.Strategy != StrategyNearFingerprint {
		t.Fatalf("verdict = %+v, want near_fingerprint duplicate", v)
	}
	if v.Similarity < 95 || v.Similarity >= 100 {
		t.Errorf("similarity = %v, want in [95, 100)", v.Similarity)
	}
	if v.Reason != "very similar image" {
		t.Errorf("reason = %q, want %q", v.Reason, "very similar image")
	}
}

func TestResolveExactMetadata(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("a", "Navy Blue Blazer", wardrobe.CategoryOuterwear, "Navy Blue", "dh:0000000000000000", ""),
	}

	// Distant fingerprint, but identical details up to case and padding.
	v := r.Resolve(Probe{
		Fingerprint: "dh:ffffffffffffffff",
		Name:        "navy blue blazer ",
		Category:    wardrobe.CategoryOuterwear,
		Color:       " NAVY BLUE",
	}, pool)

	if !v.IsDuplicate || v.Strategy != StrategyExactMetadata {
		t.Fatalf("verdict = %+v, want exact_metadata duplicate", v)
	}
	if v.Similarity != 90 || v.Reason != "identical item details" {
		t.Errorf("verdict = %+v, want similarity 90, identical item details", v)
	}
}

func TestResolveFilenameSimilarity(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("a", "Blazer", wardrobe.CategoryOuterwear, "navy", "dh:0000000000000000", "IMG_2041.jpg"),
	}

	v := r.Resolve(Probe{
		Fingerprint: "dh:ffffffffffffffff",
		Name:        "Jacket Thing",
		Category:    wardrobe.CategoryOuterwear,
		Color:       "blue",
		Filename:    "img_2041 (1).JPG",
	}, pool)

	if !v.IsDuplicate || v.Strategy != StrategyFilename {
		t.Fatalf("verdict = %+v, want filename duplicate", v)
	}
	if v.Similarity < 85 {
		t.Errorf("similarity = %v, want >= 85", v.Similarity)
	}

	// Same filename in a different category must not fire.
	v = r.Resolve(Probe{
		Fingerprint: "dh:ffffffffffffffff",
		Name:        "Jacket Thing",
		Category:    wardrobe.CategoryShoes,
		Color:       "blue",
		Filename:    "img_2041.jpg",
	}, pool)
	if v.IsDuplicate {
		t.Errorf("category mismatch should suppress filename strategy, got %+v", v)
	}
}

func TestResolveSemanticOverlap(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("a", "Striped Linen Summer Shirt", wardrobe.CategoryTop, "white", "dh:0000000000000000", ""),
	}

	v := r.Resolve(Probe{
		Fingerprint: "dh:ffffffffffffffff",
		Name:        "Linen Shirt With Stripes",
		Category:    wardrobe.CategoryTop,
		Color:       "white",
	}, pool)

	if !v.IsDuplicate || v.Strategy != StrategySemanticOverlap {
		t.Fatalf("verdict = %+v, want semantic_overlap duplicate", v)
	}
	if v.Similarity != 80 || v.Reason != "similar item, matching type/color" {
		t.Errorf("verdict = %+v, want similarity 80", v)
	}
}

func TestResolveDistinct(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("a", "Black Jeans", wardrobe.CategoryBottom, "black", "dh:0000000000000000", "jeans.png"),
	}

	v := r.Resolve(Probe{
		Fingerprint: "dh:ffffffffffffffff",
		Name:        "Red Silk Scarf",
		Category:    wardrobe.CategoryAccessory,
		Color:       "red",
		Filename:    "scarf.png",
	}, pool)

	if v.IsDuplicate {
		t.Errorf("distinct item flagged as duplicate: %+v", v)
	}
	if v.Matched != nil || v.Strategy != "" {
		t.Errorf("distinct verdict should carry no match, got %+v", v)
	}
}

func TestResolveNonComparableFingerprintNeverMatches(t *testing.T) {
	r := newTestResolver(t)
	// Two failed decodes of the same upload carry salted fallback
	// fingerprints; even stored verbatim they must not fingerprint-match.
	pool := []wardrobe.Item{
		poolItem("a", "Mystery One", wardrobe.CategoryOther, "green", "raw:deadbeef-42", ""),
	}

	v := r.Resolve(Probe{
		Fingerprint: "raw:deadbeef-42",
		Name:        "Mystery Two",
		Category:    wardrobe.CategoryOther,
		Color:       "blue",
	}, pool)

	if v.IsDuplicate {
		t.Errorf("non-comparable fingerprints must never match, got %+v", v)
	}
}

func TestStrategyOrderPrefersFingerprintOverMetadata(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("meta", "Same Name Shirt", wardrobe.CategoryTop, "white", "dh:ffffffffffffffff", ""),
		poolItem("image", "Different Name", wardrobe.CategoryTop, "red", "dh:0000000000000000", ""),
	}

	v := r.Resolve(Probe{
		Fingerprint: "dh:0000000000000000",
		Name:        "Same Name Shirt",
		Category:    wardrobe.CategoryTop,
		Color:       "white",
	}, pool)

	if v.Strategy != StrategyExactFingerprint || v.Matched == nil || v.Matched.ID != "image" {
		t.Errorf("exact fingerprint must win over metadata, got %+v", v)
	}
}

func TestResolveBatchPairwise(t *testing.T) {
	r := newTestResolver(t)

	items := []wardrobe.Item{
		poolItem("n1", "Navy Blue Blazer", wardrobe.CategoryOuterwear, "navy blue", "dh:0000000000000000", ""),
		poolItem("n2", "navy blue blazer", wardrobe.CategoryOuterwear, "Navy Blue", "dh:0000000000000001", ""),
		poolItem("n3", "Green Raincoat", wardrobe.CategoryOuterwear, "green", "dh:00000000ffffffff", ""),
	}

	verdicts := r.ResolveBatch(items, nil, nil)
	if len(verdicts) != 3 {
		t.Fatalf("got %d verdicts, want 3", len(verdicts))
	}
	if verdicts[0].IsDuplicate {
		t.Errorf("first upload should be accepted, got %+v", verdicts[0])
	}
	if !verdicts[1].IsDuplicate {
		t.Error("second upload duplicates the first within the batch")
	}
	if verdicts[1].Matched == nil || verdicts[1].Matched.ID != "n1" {
		t.Errorf("second verdict matched = %+v, want n1", verdicts[1].Matched)
	}
	if verdicts[2].IsDuplicate {
		t.Errorf("third upload is distinct, got %+v", verdicts[2])
	}
}

func TestResolveBatchChecksPoolToo(t *testing.T) {
	r := newTestResolver(t)
	pool := []wardrobe.Item{
		poolItem("existing", "Black Jeans", wardrobe.CategoryBottom, "black", "dh:1111111111111111", ""),
	}
	items := []wardrobe.Item{
		poolItem("new", "Other Jeans", wardrobe.CategoryBottom, "blue", "dh:1111111111111111", ""),
	}

	verdicts := r.ResolveBatch(items, nil, pool)
	if !verdicts[0].IsDuplicate || verdicts[0].Matched == nil || verdicts[0].Matched.ID != "existing" {
		t.Errorf("batch entry should match persisted pool, got %+v", verdicts[0])
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero near threshold", func(c *Config) { c.NearFingerprintThreshold = 0 }, true},
		{"over-100 filename threshold", func(c *Config) { c.FilenameThreshold = 150 }, true},
		{"zero shared words", func(c *Config) { c.MinSharedWords = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
