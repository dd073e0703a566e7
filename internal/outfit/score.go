// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package outfit

import (
	"fmt"
	"strings"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// score applies the additive heuristic to a candidate in place. All
// bonuses read the structured attributes derived at ingestion; nothing
// here re-parses item names.
func (c *Composer) score(cand *Candidate, reqCtx Context) {
	w := c.config.Weights
	cand.Score = w.Base

	c.scoreOccasion(cand, reqCtx)
	c.scoreColorCohesion(cand)
	c.scoreWeather(cand, reqCtx)
	c.scoreAffinity(cand, reqCtx)
}

// scoreOccasion rewards items whose formality suits the requested
// occasion and penalizes clashes.
func (c *Composer) scoreOccasion(cand *Candidate, reqCtx Context) {
	w := c.config.Weights
	matches, clashes := 0, 0

	for _, it := range cand.Items {
		switch reqCtx.Occasion {
		case wardrobe.OccasionFormal, wardrobe.OccasionBusiness:
			switch it.Attributes.Formality {
			case wardrobe.FormalityFormal:
				matches++
			case wardrobe.FormalitySmart:
				// Acceptable, no bonus.
			default:
				clashes++
			}
		case wardrobe.OccasionSport:
			if it.Attributes.Formality == wardrobe.FormalitySport {
				matches++
			} else if it.Attributes.Formality == wardrobe.FormalityFormal {
				clashes++
			}
		case wardrobe.OccasionCasual:
			if it.Attributes.Formality == wardrobe.FormalityCasual || it.Attributes.Formality == wardrobe.FormalitySmart {
				matches++
			}
		}
	}

	if matches > 0 {
		cand.Score += float64(matches) * w.OccasionMatch
		cand.Reasons = append(cand.Reasons, fmt.Sprintf("%d piece(s) suit a %s occasion", matches, reqCtx.Occasion))
	}
	if clashes > 0 {
		cand.Score -= float64(clashes) * w.OccasionMismatch
		cand.Reasons = append(cand.Reasons, fmt.Sprintf("%d piece(s) clash with a %s occasion", clashes, reqCtx.Occasion))
	}
}

// scoreColorCohesion awards the full cohesion bonus to single-family
// palettes, tapering off per extra family up to zero.
func (c *Composer) scoreColorCohesion(cand *Candidate) {
	families := make(map[wardrobe.ColorFamily]struct{})
	for _, it := range cand.Items {
		if f := it.Attributes.ColorFamily; f != wardrobe.ColorFamilyUnknown {
			families[f] = struct{}{}
		}
	}
	if len(families) == 0 {
		return
	}

	full := c.config.Weights.ColorCohesionMax
	bonus := full - float64(len(families)-1)*(full/3)
	if bonus <= 0 {
		return
	}

	cand.Score += bonus
	if len(families) == 1 {
		cand.Reasons = append(cand.Reasons, "cohesive color palette")
	} else {
		cand.Reasons = append(cand.Reasons, fmt.Sprintf("palette spans %d color families", len(families)))
	}
}

// scoreWeather rewards a warm layer in cold weather and penalizes
// insulating layers in heat.
func (c *Composer) scoreWeather(cand *Candidate, reqCtx Context) {
	w := c.config.Weights

	var outerPresent, outerInsulating, anyInsulating bool
	for _, it := range cand.Items {
		if it.Attributes.Insulating {
			anyInsulating = true
		}
		if it.Category == wardrobe.CategoryOuterwear {
			outerPresent = true
			if it.Attributes.Insulating {
				outerInsulating = true
			}
		}
	}

	switch {
	case reqCtx.Cold(c.config.ColdThresholdC) && outerInsulating:
		cand.Score += 2 * w.WeatherMatch
		cand.Reasons = append(cand.Reasons, fmt.Sprintf("insulating layer for %.0f°C", reqCtx.TemperatureC))
	case reqCtx.Cold(c.config.ColdThresholdC) && outerPresent:
		cand.Score += w.WeatherMatch
		cand.Reasons = append(cand.Reasons, fmt.Sprintf("outer layer for %.0f°C", reqCtx.TemperatureC))
	case reqCtx.TemperatureC > 25 && anyInsulating:
		cand.Score -= w.WeatherMatch
		cand.Reasons = append(cand.Reasons, "warm piece in hot weather")
	}
}

// scoreAffinity applies coarse profile-keyword bonuses: profile traits
// matched against item keywords and color families. A soft preference,
// never a hard rule.
func (c *Composer) scoreAffinity(cand *Candidate, reqCtx Context) {
	if reqCtx.Profile == nil {
		return
	}
	w := c.config.Weights

	traits := make([]string, 0, 3)
	for _, t := range []string{reqCtx.Profile.AgeGroup, reqCtx.Profile.BodyType, reqCtx.Profile.SkinTone} {
		if t != "" {
			traits = append(traits, strings.ToLower(t))
		}
	}
	if len(traits) == 0 {
		return
	}

	bonus := 0.0
	for _, it := range cand.Items {
		for _, trait := range traits {
			if itemMatchesTrait(it, trait) {
				bonus += w.AffinityPerMatch
			}
		}
	}
	if bonus > w.AffinityMax {
		bonus = w.AffinityMax
	}
	if bonus > 0 {
		cand.Score += bonus
		cand.Reasons = append(cand.Reasons, "matches your style profile")
	}
}

// warmSkinFamilies and coolSkinFamilies map skin-tone traits to
// flattering palette families.
var (
	warmSkinFamilies = map[wardrobe.ColorFamily]struct{}{wardrobe.ColorFamilyWarm: {}, wardrobe.ColorFamilyEarth: {}}
	coolSkinFamilies = map[wardrobe.ColorFamily]struct{}{wardrobe.ColorFamilyCool: {}, wardrobe.ColorFamilyNeutral: {}}
)

func itemMatchesTrait(it wardrobe.Item, trait string) bool {
	switch trait {
	case "warm":
		_, ok := warmSkinFamilies[it.Attributes.ColorFamily]
		return ok
	case "cool":
		_, ok := coolSkinFamilies[it.Attributes.ColorFamily]
		return ok
	}

	for _, kw := range it.Attributes.Keywords {
		if kw == trait {
			return true
		}
	}
	return false
}
