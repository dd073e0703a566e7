// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package wardrobe

import (
	"strings"
	"time"
)

// Category is the closed set of wardrobe categories. Raw classifier output
// is narrowed to this enum at the ingestion boundary; free-text categories
// never propagate past it.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuterwear Category = "outerwear"
	CategoryShoes     Category = "shoes"
	CategoryAccessory Category = "accessory"
	CategoryOther     Category = "other"
)

// Categories lists all valid categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryTop,
		CategoryBottom,
		CategoryOuterwear,
		CategoryShoes,
		CategoryAccessory,
		CategoryOther,
	}
}

// ParseCategory narrows a raw category string to the closed enum.
// Unknown or empty values map to CategoryOther rather than failing, so a
// misbehaving classifier degrades ingestion instead of blocking it.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryTop:
		return CategoryTop, true
	case CategoryBottom:
		return CategoryBottom, true
	case CategoryOuterwear:
		return CategoryOuterwear, true
	case CategoryShoes:
		return CategoryShoes, true
	case CategoryAccessory:
		return CategoryAccessory, true
	case CategoryOther:
		return CategoryOther, true
	default:
		return CategoryOther, false
	}
}

// Valid reports whether c is a member of the closed enum.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok && Category(strings.ToLower(string(c))) == c
}

// Occasion classifies an item or request by social context.
type Occasion string

const (
	OccasionCasual   Occasion = "casual"
	OccasionFormal   Occasion = "formal"
	OccasionBusiness Occasion = "business"
	OccasionSport    Occasion = "sport"
	OccasionAny      Occasion = "any"
)

// ParseOccasion narrows a raw occasion string, defaulting to OccasionAny.
func ParseOccasion(raw string) Occasion {
	switch Occasion(strings.ToLower(strings.TrimSpace(raw))) {
	case OccasionCasual:
		return OccasionCasual
	case OccasionFormal:
		return OccasionFormal
	case OccasionBusiness:
		return OccasionBusiness
	case OccasionSport:
		return OccasionSport
	default:
		return OccasionAny
	}
}

// Item is a catalogued wardrobe entry. The fingerprint is immutable after
// creation; category, name and usage are mutable.
type Item struct {
	// ID is the opaque item identifier (UUID assigned at ingestion).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Name is the descriptive, user-visible name.
	Name string `json:"name"`

	// Category is the canonical category after refinement.
	Category Category `json:"category"`

	// Subcategory is an optional refinement hint (e.g. "winter").
	Subcategory string `json:"subcategory,omitempty"`

	// Color is the dominant color as reported by the classifier.
	Color string `json:"color"`

	// Material is the fabric or material, if known.
	Material string `json:"material,omitempty"`

	// Pattern is the visual pattern (solid, striped, ...), if known.
	Pattern string `json:"pattern,omitempty"`

	// Occasion tags the item's social context.
	Occasion Occasion `json:"occasion"`

	// Attributes holds the structured tags derived once at ingestion.
	// Scoring operates on these, never on raw name text.
	Attributes Attributes `json:"attributes"`

	// Fingerprint is the perceptual image fingerprint. Immutable.
	Fingerprint string `json:"fingerprint"`

	// SourceFilename is the original upload filename, kept for
	// filename-based duplicate checks.
	SourceFilename string `json:"source_filename,omitempty"`

	// Usage is the bounded per-item usage counter.
	Usage UsageCounter `json:"usage"`

	// CreatedAt is the ingestion timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Outfit is a durable, user-saved outfit. Candidates are transient until
// the user explicitly saves one.
type Outfit struct {
	// ID is the opaque outfit identifier.
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Name is the user-chosen outfit name.
	Name string `json:"name"`

	// ItemIDs is the set of member item IDs.
	ItemIDs []string `json:"item_ids"`

	// Occasion is the context the outfit was composed for.
	Occasion Occasion `json:"occasion"`

	// CreatedAt is the save timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds optional user traits consumed by the composer's affinity
// bonuses. All fields are free-form and may be empty.
type Profile struct {
	UserID   string `json:"user_id"`
	AgeGroup string `json:"age_group,omitempty"`
	BodyType string `json:"body_type,omitempty"`
	SkinTone string `json:"skin_tone,omitempty"`
}
