// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package imagehash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"strings"
	"time"

	// Registered for image.Decode format sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// hashWidth and hashHeight define the normalized grid. 9x8 yields 8
	// horizontal comparisons per row, 64 bits total.
	hashWidth  = 9
	hashHeight = 8

	// ComparablePrefix marks fingerprints derived from decoded pixels.
	ComparablePrefix = "dh:"

	// fallbackPrefix marks non-comparable fingerprints from undecodable
	// uploads.
	fallbackPrefix = "raw:"

	// BitLength is the number of bits in a comparable fingerprint: one
	// comparison per horizontal neighbor pair.
	BitLength = (hashWidth - 1) * hashHeight
)

// Hash derives a fingerprint from raw image bytes. It never returns an
// error: undecodable input yields a non-comparable fallback fingerprint
// salted with the current time so that repeated failures do not collide
// into spurious duplicates.
func Hash(imageBytes []byte) string {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return fallbackFingerprint(imageBytes)
	}
	return ComparablePrefix + formatBits(differenceBits(img))
}

// Comparable reports whether a fingerprint carries perceptual content.
// Non-comparable fingerprints never match anything.
func Comparable(fingerprint string) bool {
	return strings.HasPrefix(fingerprint, ComparablePrefix)
}

// differenceBits normalizes the image to a grayscale grid and emits one
// bit per horizontal neighbor pair.
func differenceBits(img image.Image) uint64 {
	gray := image.NewGray(image.Rect(0, 0, hashWidth, hashHeight))
	draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	var bits uint64
	for y := 0; y < hashHeight; y++ {
		for x := 0; x < hashWidth-1; x++ {
			bits <<= 1
			if gray.GrayAt(x, y).Y > gray.GrayAt(x+1, y).Y {
				bits |= 1
			}
		}
	}
	return bits
}

// formatBits renders the 64 hash bits as a fixed-length hex string.
func formatBits(bits uint64) string {
	return fmt.Sprintf("%016x", bits)
}

// fallbackFingerprint digests the raw bytes with a timestamp salt. The
// salt guarantees two failed decodes of the same bytes stay distinct,
// which is what makes the fallback safe against false positives.
func fallbackFingerprint(imageBytes []byte) string {
	sum := sha256.Sum256(imageBytes)
	return fmt.Sprintf("%s%s-%d", fallbackPrefix, hex.EncodeToString(sum[:8]), time.Now().UnixNano())
}
