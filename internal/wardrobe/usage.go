// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package wardrobe

// DefaultMaxUses is the default per-item usage ceiling. An item at the
// ceiling is unavailable to newly composed outfits until reset.
const DefaultMaxUses = 3

// ColdThresholdC is the temperature in °C below which weather is treated
// as cold: refinement forces optional outerwear into outerwear, and the
// composer requires an outerwear layer in every candidate.
const ColdThresholdC = 10.0

// UsageCounter is a bounded usage counter with value semantics. Every
// construction and mutation clamps Current into [0, Maximum], so the
// invariant holds regardless of what callers persist or how concurrent
// save-outfit writes interleave.
type UsageCounter struct {
	Current int `json:"current"`
	Maximum int `json:"maximum"`
}

// NewUsageCounter returns a zeroed counter with the given ceiling.
// A non-positive maximum falls back to DefaultMaxUses.
func NewUsageCounter(maximum int) UsageCounter {
	if maximum <= 0 {
		maximum = DefaultMaxUses
	}
	return UsageCounter{Current: 0, Maximum: maximum}
}

// Clamp returns a copy with Current forced into [0, Maximum].
func (c UsageCounter) Clamp() UsageCounter {
	if c.Maximum <= 0 {
		c.Maximum = DefaultMaxUses
	}
	if c.Current < 0 {
		c.Current = 0
	}
	if c.Current > c.Maximum {
		c.Current = c.Maximum
	}
	return c
}

// IsAtLimit reports whether the counter has reached its ceiling.
func (c UsageCounter) IsAtLimit() bool {
	c = c.Clamp()
	return c.Current >= c.Maximum
}

// CanUse reports whether the item may join a newly composed outfit.
func (c UsageCounter) CanUse() bool {
	return !c.IsAtLimit()
}

// Increment returns a copy advanced by one use. Incrementing a counter
// already at its limit is a no-op returning an identical counter; the
// result never exceeds Maximum.
func (c UsageCounter) Increment() UsageCounter {
	c = c.Clamp()
	if c.Current >= c.Maximum {
		return c
	}
	c.Current++
	return c
}

// Reset returns a copy with Current back at zero.
func (c UsageCounter) Reset() UsageCounter {
	c = c.Clamp()
	c.Current = 0
	return c
}
