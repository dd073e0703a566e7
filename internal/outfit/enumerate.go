// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package outfit

import "github.com/garderobe/garderobe/internal/wardrobe"

// enumerator lazily walks the bounded Cartesian product of the category
// dimensions. Combinations are produced one at a time in odometer order,
// so a caller that stops early never materializes the full product.
type enumerator struct {
	dims    [][]wardrobe.Item
	indices []int
	done    bool
}

// newEnumerator builds an enumerator over the given dimensions. Empty
// dimensions are skipped entirely; an enumerator with zero dimensions is
// immediately exhausted.
func newEnumerator(dims ...[]wardrobe.Item) *enumerator {
	kept := make([][]wardrobe.Item, 0, len(dims))
	for _, d := range dims {
		if len(d) > 0 {
			kept = append(kept, d)
		}
	}
	return &enumerator{
		dims:    kept,
		indices: make([]int, len(kept)),
		done:    len(kept) == 0,
	}
}

// next returns the next combination, one item per dimension. ok is false
// once the product is exhausted.
func (e *enumerator) next() ([]wardrobe.Item, bool) {
	if e.done {
		return nil, false
	}

	combo := make([]wardrobe.Item, len(e.dims))
	for i, d := range e.dims {
		combo[i] = d[e.indices[i]]
	}

	// Advance the odometer, rightmost dimension fastest.
	for i := len(e.indices) - 1; i >= 0; i-- {
		e.indices[i]++
		if e.indices[i] < len(e.dims[i]) {
			return combo, true
		}
		e.indices[i] = 0
	}
	e.done = true
	return combo, true
}
