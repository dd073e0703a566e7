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

// InsufficientItemsError reports that the available pool lacks a required
// category. Missing names the absent categories so callers can tell the
// user what to add.
type InsufficientItemsError struct {
	Missing []wardrobe.Category
}

func (e *InsufficientItemsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("insufficient wardrobe variety: no available %s", strings.Join(names, ", "))
}

// Infeasibility conditions carried by InfeasibleError.
const (
	// ConditionColdWithoutOuterwear: cold weather requested but the pool
	// holds no available outerwear, so no compliant outfit exists.
	ConditionColdWithoutOuterwear = "cold_weather_without_outerwear"

	// ConditionNoViableCombination: enumeration produced candidates but
	// all were discarded (undersized with no accessory to pad).
	ConditionNoViableCombination = "no_viable_combination"
)

// InfeasibleError reports that the hard constraints cannot be jointly
// satisfied. Condition names the specific blocking condition; it is never
// a silent empty result.
type InfeasibleError struct {
	Condition string
	Detail    string
}

func (e *InfeasibleError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("outfit infeasible: %s", e.Condition)
	}
	return fmt.Sprintf("outfit infeasible: %s (%s)", e.Condition, e.Detail)
}
