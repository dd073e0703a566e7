// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package dedup

import (
	"strings"
	"unicode"

	"github.com/garderobe/garderobe/internal/imagehash"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// strategy checks one probe against one candidate. score and reason are
// meaningful only when matched is true.
type strategy interface {
	Name() StrategyName
	Check(probe Probe, candidate *wardrobe.Item) (score float64, reason string, matched bool)
}

// exactFingerprint fires on identical comparable fingerprints.
// Non-comparable (decode-fallback) fingerprints never match: their whole
// point is to suppress false positives on undecodable uploads.
type exactFingerprint struct{}

func (exactFingerprint) Name() StrategyName { return StrategyExactFingerprint }

func (exactFingerprint) Check(probe Probe, candidate *wardrobe.Item) (float64, string, bool) {
	if !imagehash.Comparable(probe.Fingerprint) || probe.Fingerprint != candidate.Fingerprint {
		return 0, "", false
	}
	return 100, "identical image", true
}

// nearFingerprint fires when perceptual similarity reaches the
// configured threshold. Similarity degrades to string comparison on
// malformed hashes, so this strategy never errors.
type nearFingerprint struct {
	threshold float64
}

func (nearFingerprint) Name() StrategyName { return StrategyNearFingerprint }

func (s nearFingerprint) Check(probe Probe, candidate *wardrobe.Item) (float64, string, bool) {
	score := imagehash.Similarity(probe.Fingerprint, candidate.Fingerprint)
	if score < s.threshold || score >= 100 {
		return 0, "", false
	}
	return score, "very similar image", true
}

// exactMetadata fires on case-insensitive equality of name, category and
// color.
type exactMetadata struct{}

func (exactMetadata) Name() StrategyName { return StrategyExactMetadata }

func (exactMetadata) Check(probe Probe, candidate *wardrobe.Item) (float64, string, bool) {
	if !strings.EqualFold(strings.TrimSpace(probe.Name), strings.TrimSpace(candidate.Name)) {
		return 0, "", false
	}
	if probe.Category != candidate.Category {
		return 0, "", false
	}
	if !strings.EqualFold(strings.TrimSpace(probe.Color), strings.TrimSpace(candidate.Color)) {
		return 0, "", false
	}
	return 90, "identical item details", true
}

// filenameSimilarity fires when normalized upload filenames are nearly
// identical and the categories agree. Skipped when either side lacks a
// filename.
type filenameSimilarity struct {
	threshold float64
}

func (filenameSimilarity) Name() StrategyName { return StrategyFilename }

func (s filenameSimilarity) Check(probe Probe, candidate *wardrobe.Item) (float64, string, bool) {
	if probe.Filename == "" || candidate.SourceFilename == "" {
		return 0, "", false
	}
	if probe.Category != candidate.Category {
		return 0, "", false
	}

	a := normalizeFilename(probe.Filename)
	b := normalizeFilename(candidate.SourceFilename)
	if a == "" || b == "" {
		return 0, "", false
	}

	score := imagehash.StringSimilarity(a, b)
	if score < s.threshold {
		return 0, "", false
	}
	return score, "matching upload filename", true
}

// semanticOverlap fires on same category and color with enough shared
// significant name words.
type semanticOverlap struct {
	minShared int
}

func (semanticOverlap) Name() StrategyName { return StrategySemanticOverlap }

func (s semanticOverlap) Check(probe Probe, candidate *wardrobe.Item) (float64, string, bool) {
	if probe.Category != candidate.Category {
		return 0, "", false
	}
	if !strings.EqualFold(strings.TrimSpace(probe.Color), strings.TrimSpace(candidate.Color)) {
		return 0, "", false
	}

	shared := sharedWords(wardrobe.SignificantWords(probe.Name), wardrobe.SignificantWords(candidate.Name))
	if shared < s.minShared {
		return 0, "", false
	}
	return 80, "similar item, matching type/color", true
}

// normalizeFilename lowercases and strips everything non-alphanumeric,
// including the extension separator, so "IMG_1234 (1).JPG" and
// "img_1234.jpg" compare on their shared core.
func normalizeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sharedWords(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}
	shared := 0
	for _, w := range b {
		if _, ok := set[w]; ok {
			shared++
		}
	}
	return shared
}
