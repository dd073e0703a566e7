// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package classify refines raw classifier output into a canonical category
// and subcategory. The external vision service is good at "this is a
// cardigan" and bad at "a chunky wool cardigan worn at 5°C is outerwear";
// the ordered rule list here closes that gap.
package classify

import (
	"fmt"
	"strings"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// Subcategory values produced by refinement rules.
const (
	SubcategoryOptionalOuterwear = "optional_outerwear"
	SubcategoryWinter            = "winter"
	SubcategoryLight             = "light"
)

// Confidence levels for refinement outcomes.
const (
	// ConfidenceRule is assigned when a keyword rule matched.
	ConfidenceRule = 85

	// ConfidenceOverride is assigned when the weather override fired.
	ConfidenceOverride = 95

	// ConfidenceFallback signals no rule matched; callers may want to
	// prompt the user to confirm the raw category.
	ConfidenceFallback = 70
)

// Result is the outcome of refining a raw classification.
type Result struct {
	// Category is the canonical category after refinement.
	Category wardrobe.Category `json:"category"`

	// Subcategory is an optional refinement hint.
	Subcategory string `json:"subcategory,omitempty"`

	// Confidence grades the result 0..100. ConfidenceFallback and below
	// is advisory: ingestion proceeds, the caller may flag for review.
	Confidence int `json:"confidence"`
}

// rule is a keyword-triggered reclassification. Rules are evaluated in
// order; the first whose keyword appears in the item name and whose
// condition (if any) holds wins.
type rule struct {
	keyword     string
	category    wardrobe.Category
	subcategory string
	// confidence overrides ConfidenceRule when non-zero. Heavy-fabric
	// rules carry ConfidenceOverride: the fabric cue is decisive.
	confidence int
	// condition, when non-nil, must hold for the rule to apply.
	condition func(name, color string) bool
}

// heavyFabric reports whether the name suggests heavy, warm construction.
func heavyFabric(name, _ string) bool {
	lower := strings.ToLower(name)
	for _, k := range []string{"wool", "heavy", "chunky", "fleece", "quilted", "padded"} {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func lightFabric(name, color string) bool {
	return !heavyFabric(name, color)
}

// rules is the ordered reclassification table. Heavier, more specific
// cues come before their lighter fallbacks for the same keyword.
var rules = []rule{
	{keyword: "cardigan", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryWinter, confidence: ConfidenceOverride, condition: heavyFabric},
	{keyword: "cardigan", category: wardrobe.CategoryTop, subcategory: SubcategoryOptionalOuterwear, condition: lightFabric},
	{keyword: "hoodie", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryWinter, confidence: ConfidenceOverride, condition: heavyFabric},
	{keyword: "hoodie", category: wardrobe.CategoryTop, subcategory: SubcategoryOptionalOuterwear, condition: lightFabric},
	{keyword: "vest", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryWinter, confidence: ConfidenceOverride, condition: heavyFabric},
	{keyword: "vest", category: wardrobe.CategoryTop, subcategory: SubcategoryOptionalOuterwear, condition: lightFabric},
	{keyword: "blazer", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryLight},
	{keyword: "parka", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryWinter},
	{keyword: "coat", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryWinter},
	{keyword: "jacket", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryLight},
	{keyword: "windbreaker", category: wardrobe.CategoryOuterwear, subcategory: SubcategoryLight},
}

// ambiguousKeywords are inherently two-faced garments worth a user
// confirmation prompt regardless of how a rule resolved them.
var ambiguousKeywords = []string{"cardigan", "vest", "hoodie", "blazer"}

// Refine applies the rule table to a raw classification. The raw category
// is narrowed to the closed enum first, so free-text classifier output
// never escapes this boundary. temperatureC, when non-nil, enables the
// cold-weather override: below coldThresholdC an optional-outerwear match
// is promoted to outerwear/winter at override confidence.
//
// When no rule matches, the narrowed raw category is returned at fallback
// confidence. Refine never fails.
func Refine(rawCategory, name, color string, temperatureC *float64, coldThresholdC float64) Result {
	base, _ := wardrobe.ParseCategory(rawCategory)

	for _, r := range rules {
		if !strings.Contains(strings.ToLower(name), r.keyword) {
			continue
		}
		if r.condition != nil && !r.condition(name, color) {
			continue
		}

		confidence := r.confidence
		if confidence == 0 {
			confidence = ConfidenceRule
		}

		res := Result{Category: r.category, Subcategory: r.subcategory, Confidence: confidence}
		if temperatureC != nil && *temperatureC < coldThresholdC && res.Subcategory == SubcategoryOptionalOuterwear {
			res = Result{
				Category:    wardrobe.CategoryOuterwear,
				Subcategory: SubcategoryWinter,
				Confidence:  ConfidenceOverride,
			}
		}
		return res
	}

	return Result{Category: base, Confidence: ConfidenceFallback}
}

// NeedsConfirmation flags inherently ambiguous garment names and suggests
// a confirmation prompt. Advisory only: it never blocks ingestion.
func NeedsConfirmation(category wardrobe.Category, name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, k := range ambiguousKeywords {
		if strings.Contains(lower, k) {
			prompt := fmt.Sprintf("%q can be worn as a top or as outerwear. Keep it filed under %q?", name, category)
			return prompt, true
		}
	}
	return "", false
}
