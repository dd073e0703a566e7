// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package wardrobe defines the core domain types shared across the
// application: catalogued items, the closed category enum, usage counters,
// saved outfits, and the structured attributes derived at ingestion time.
//
// Types here are plain data records with value semantics. They carry no
// behavior beyond invariant enforcement (category narrowing, usage counter
// clamping) so that the compute packages (dedup, classify, outfit) stay
// pure functions of their inputs.
package wardrobe
