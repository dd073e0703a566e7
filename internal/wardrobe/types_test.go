// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package wardrobe

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Category
		wantOK bool
	}{
		{"exact", "top", CategoryTop, true},
		{"uppercase", "OUTERWEAR", CategoryOuterwear, true},
		{"padded", "  shoes ", CategoryShoes, true},
		{"unknown narrows to other", "swimwear", CategoryOther, false},
		{"empty narrows to other", "", CategoryOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("Categories() member %q should be valid", c)
		}
	}
	if Category("jacket").Valid() {
		t.Error("non-enum category should be invalid")
	}
}

func TestParseOccasion(t *testing.T) {
	tests := []struct {
		raw  string
		want Occasion
	}{
		{"formal", OccasionFormal},
		{"Business", OccasionBusiness},
		{"casual", OccasionCasual},
		{"sport", OccasionSport},
		{"garden party", OccasionAny},
		{"", OccasionAny},
	}

	for _, tt := range tests {
		if got := ParseOccasion(tt.raw); got != tt.want {
			t.Errorf("ParseOccasion(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
