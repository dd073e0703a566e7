// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package wardrobe

import "strings"

// Formality grades an item's dressiness. Derived once at ingestion so the
// composer scores structured attributes instead of re-parsing names.
type Formality string

const (
	FormalityCasual Formality = "casual"
	FormalitySmart  Formality = "smart"
	FormalityFormal Formality = "formal"
	FormalitySport  Formality = "sport"
)

// ColorFamily groups free-text colors into a small palette used for
// cohesion scoring.
type ColorFamily string

const (
	ColorFamilyNeutral ColorFamily = "neutral"
	ColorFamilyWarm    ColorFamily = "warm"
	ColorFamilyCool    ColorFamily = "cool"
	ColorFamilyEarth   ColorFamily = "earth"
	ColorFamilyBright  ColorFamily = "bright"
	ColorFamilyUnknown ColorFamily = "unknown"
)

// Attributes is the structured tag set computed at the ingestion boundary.
// Everything the composer's soft scoring consumes lives here.
type Attributes struct {
	// Formality is the derived dressiness grade.
	Formality Formality `json:"formality"`

	// ColorFamily is the palette group of the dominant color.
	ColorFamily ColorFamily `json:"color_family"`

	// Insulating marks heavy or warm construction (wool coats, padded
	// jackets). Drives cold-weather appropriateness.
	Insulating bool `json:"insulating,omitempty"`

	// Keywords are the significant lowercased name tokens (length > 3),
	// kept for semantic-overlap duplicate checks and affinity bonuses.
	Keywords []string `json:"keywords,omitempty"`
}

// formalKeywords and sportKeywords trigger formality grading when they
// appear in names, materials or occasion tags.
var (
	formalKeywords = []string{"suit", "blazer", "oxford", "dress", "gown", "tuxedo", "loafer", "heel", "tie", "silk"}
	smartKeywords  = []string{"chino", "polo", "cardigan", "blouse", "shirt", "derby"}
	sportKeywords  = []string{"running", "gym", "track", "sport", "training", "jersey", "sneaker"}
	warmMaterials  = []string{"wool", "fleece", "down", "cashmere", "shearling"}
	heavyKeywords  = []string{"heavy", "chunky", "padded", "quilted", "winter", "thermal", "parka"}
)

// DeriveAttributes computes the structured attribute set for an item from
// its descriptive fields. Called exactly once, at ingestion.
func DeriveAttributes(name, color, material string, occasion Occasion) Attributes {
	return Attributes{
		Formality:   deriveFormality(name, material, occasion),
		ColorFamily: DeriveColorFamily(color),
		Insulating:  deriveInsulating(name, material),
		Keywords:    SignificantWords(name),
	}
}

func deriveFormality(name, material string, occasion Occasion) Formality {
	switch occasion {
	case OccasionFormal, OccasionBusiness:
		return FormalityFormal
	case OccasionSport:
		return FormalitySport
	}

	text := strings.ToLower(name + " " + material)
	if containsAny(text, formalKeywords) {
		return FormalityFormal
	}
	if containsAny(text, sportKeywords) {
		return FormalitySport
	}
	if containsAny(text, smartKeywords) {
		return FormalitySmart
	}
	return FormalityCasual
}

func deriveInsulating(name, material string) bool {
	text := strings.ToLower(name + " " + material)
	return containsAny(text, warmMaterials) || containsAny(text, heavyKeywords)
}

// colorFamilies maps canonical color words to their palette family.
var colorFamilies = map[string]ColorFamily{
	"black": ColorFamilyNeutral, "white": ColorFamilyNeutral, "gray": ColorFamilyNeutral,
	"grey": ColorFamilyNeutral, "navy": ColorFamilyNeutral, "charcoal": ColorFamilyNeutral,
	"cream": ColorFamilyNeutral, "ivory": ColorFamilyNeutral,
	"red": ColorFamilyWarm, "orange": ColorFamilyWarm, "burgundy": ColorFamilyWarm,
	"maroon": ColorFamilyWarm, "coral": ColorFamilyWarm, "pink": ColorFamilyWarm,
	"blue": ColorFamilyCool, "teal": ColorFamilyCool, "turquoise": ColorFamilyCool,
	"purple": ColorFamilyCool, "lavender": ColorFamilyCool, "mint": ColorFamilyCool,
	"brown": ColorFamilyEarth, "tan": ColorFamilyEarth, "beige": ColorFamilyEarth,
	"khaki": ColorFamilyEarth, "olive": ColorFamilyEarth, "camel": ColorFamilyEarth,
	"green": ColorFamilyEarth,
	"yellow": ColorFamilyBright, "lime": ColorFamilyBright, "magenta": ColorFamilyBright,
	"cyan": ColorFamilyBright, "gold": ColorFamilyBright,
}

// DeriveColorFamily groups a free-text color into a palette family. The
// last matching word wins so "navy blue" resolves through its head noun.
func DeriveColorFamily(color string) ColorFamily {
	family := ColorFamilyUnknown
	for _, word := range strings.Fields(strings.ToLower(color)) {
		if f, ok := colorFamilies[word]; ok {
			family = f
		}
	}
	return family
}

// SignificantWords returns the lowercased tokens of a name longer than
// three characters, in order of appearance without duplicates.
func SignificantWords(name string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		w = strings.Trim(w, ".,;:!?'\"()")
		if len(w) <= 3 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
