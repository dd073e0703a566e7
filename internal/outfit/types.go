// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package outfit

import (
	"sort"
	"strings"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// TimeOfDay is the requested wear window.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// Season tags the request with the calendar season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Context carries the request parameters for one composition run.
type Context struct {
	// Occasion is the social context to dress for.
	Occasion wardrobe.Occasion `json:"occasion"`

	// TemperatureC is the expected temperature in °C. Below the cold
	// threshold an outerwear layer becomes a hard constraint.
	TemperatureC float64 `json:"temperature_c"`

	// TimeOfDay is the wear window.
	TimeOfDay TimeOfDay `json:"time_of_day"`

	// Season tags the request season.
	Season Season `json:"season"`

	// Profile optionally carries user traits for affinity bonuses.
	Profile *wardrobe.Profile `json:"profile,omitempty"`
}

// Cold reports whether the context temperature is below thresholdC.
func (c Context) Cold(thresholdC float64) bool {
	return c.TemperatureC < thresholdC
}

// Candidate is a transient proposed outfit. It is only persisted if the
// user explicitly saves it as a wardrobe.Outfit.
type Candidate struct {
	// Items are the member items. No item ID appears twice.
	Items []wardrobe.Item `json:"items"`

	// Occasion echoes the request occasion.
	Occasion wardrobe.Occasion `json:"occasion"`

	// TemperatureC echoes the request temperature.
	TemperatureC float64 `json:"temperature_c"`

	// TimeOfDay echoes the request wear window.
	TimeOfDay TimeOfDay `json:"time_of_day"`

	// Score is the additive heuristic score; higher is better.
	Score float64 `json:"score"`

	// Reasons summarizes, in human-readable form, why the candidate was
	// boosted or penalized.
	Reasons []string `json:"reasons"`
}

// Key returns the candidate's item-id-set identity: sorted IDs joined, so
// two candidates with the same members compare equal regardless of
// enumeration order.
func (c Candidate) Key() string {
	ids := make([]string, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// ItemIDs returns the member IDs in item order.
func (c Candidate) ItemIDs() []string {
	ids := make([]string, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ID
	}
	return ids
}
