// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordIngest(t *testing.T) {
	before := testutil.ToFloat64(ItemsIngested.WithLabelValues("top"))

	RecordIngest("top", 5*time.Millisecond, nil)

	after := testutil.ToFloat64(ItemsIngested.WithLabelValues("top"))
	if after != before+1 {
		t.Errorf("ItemsIngested = %v, want %v", after, before+1)
	}
}

func TestRecordIngestError(t *testing.T) {
	before := testutil.ToFloat64(IngestErrors.WithLabelValues("storage"))
	itemsBefore := testutil.ToFloat64(ItemsIngested.WithLabelValues("bottom"))

	RecordIngest("bottom", time.Millisecond, errTest)

	if got := testutil.ToFloat64(IngestErrors.WithLabelValues("storage")); got != before+1 {
		t.Errorf("IngestErrors = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(ItemsIngested.WithLabelValues("bottom")); got != itemsBefore {
		t.Errorf("ItemsIngested moved on error: %v, want %v", got, itemsBefore)
	}
}

func TestRecordDedup(t *testing.T) {
	checksBefore := testutil.ToFloat64(DedupChecks)
	dupBefore := testutil.ToFloat64(DuplicatesDetected.WithLabelValues("exact_fingerprint"))

	RecordDedup(10, "exact_fingerprint")
	RecordDedup(10, "")

	if got := testutil.ToFloat64(DedupChecks); got != checksBefore+2 {
		t.Errorf("DedupChecks = %v, want %v", got, checksBefore+2)
	}
	if got := testutil.ToFloat64(DuplicatesDetected.WithLabelValues("exact_fingerprint")); got != dupBefore+1 {
		t.Errorf("DuplicatesDetected = %v, want %v", got, dupBefore+1)
	}
}

func TestRecordComposeInfeasible(t *testing.T) {
	before := testutil.ToFloat64(ComposeInfeasible.WithLabelValues("cold_weather_without_outerwear"))

	RecordComposeInfeasible("cold_weather_without_outerwear")

	if got := testutil.ToFloat64(ComposeInfeasible.WithLabelValues("cold_weather_without_outerwear")); got != before+1 {
		t.Errorf("ComposeInfeasible = %v, want %v", got, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/items", "201"))

	RecordAPIRequest("POST", "/api/v1/items", 201, 12*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/items", "201")); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

type testError struct{}

func (testError) Error() string { return "test error" }

var errTest = testError{}
