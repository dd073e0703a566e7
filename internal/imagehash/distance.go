// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package imagehash

import (
	"math/bits"
	"strconv"
	"strings"
)

// Similarity scores two fingerprints on a 0..100 scale, 100 meaning
// identical. Non-comparable fingerprints score zero against everything,
// including themselves. Malformed hex payloads degrade to a normalized
// edit-distance comparison rather than erroring, so a corrupted stored
// fingerprint can never break ingestion.
func Similarity(a, b string) float64 {
	if !Comparable(a) || !Comparable(b) {
		return 0
	}
	if a == b {
		return 100
	}

	av, aerr := parseBits(a)
	bv, berr := parseBits(b)
	if aerr != nil || berr != nil {
		return StringSimilarity(a, b)
	}

	d := bits.OnesCount64(av ^ bv)
	return (1 - float64(d)/float64(BitLength)) * 100
}

// Distance returns the Hamming distance between two comparable
// fingerprints. ok is false when either side is non-comparable or
// malformed.
func Distance(a, b string) (int, bool) {
	if !Comparable(a) || !Comparable(b) {
		return 0, false
	}
	av, aerr := parseBits(a)
	bv, berr := parseBits(b)
	if aerr != nil || berr != nil {
		return 0, false
	}
	return bits.OnesCount64(av ^ bv), true
}

func parseBits(fingerprint string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(fingerprint, ComparablePrefix), 16, 64)
}

// StringSimilarity scores two strings 0..100 by edit distance normalized
// over the longer length. Used as the malformed-fingerprint fallback and
// for filename comparison during duplicate resolution.
func StringSimilarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}
	return (1 - float64(editDistance(a, b))/float64(longest)) * 100
}

// editDistance computes the Levenshtein distance with a rolling row.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
