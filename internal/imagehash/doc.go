// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package imagehash derives fixed-length perceptual fingerprints from
// uploaded clothing photos for near-duplicate detection.
//
// The fingerprint is a 64-bit difference hash: the image is normalized to
// a 9x8 grayscale grid, removing size and format noise, and each bit
// records whether a pixel is brighter than its right neighbor. Visually
// similar images therefore produce fingerprints with a small Hamming
// distance, while Hash remains deterministic for identical bytes.
//
// Decoding failures never surface as errors. The hasher falls back to a
// salted digest of the raw bytes, marked non-comparable: such a
// fingerprint matches nothing, trading a possible missed duplicate for
// zero false positives on undecodable uploads.
package imagehash
