// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package metrics exposes Prometheus instrumentation for ingestion,
// duplicate detection, outfit composition and the HTTP API. All
// collectors are registered on the default registry via promauto and
// served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics
	ItemsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_items_ingested_total",
			Help: "Total number of items successfully catalogued",
		},
		[]string{"category"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "garderobe_ingest_duration_seconds",
			Help:    "Duration of single-item ingestion in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	IngestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_ingest_errors_total",
			Help: "Total number of ingestion failures",
		},
		[]string{"error_type"}, // "validation", "storage"
	)

	// Duplicate detection metrics
	DuplicatesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_duplicates_detected_total",
			Help: "Total number of uploads flagged as duplicates",
		},
		[]string{"strategy"},
	)

	DedupChecks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "garderobe_dedup_checks_total",
			Help: "Total number of duplicate resolution runs",
		},
	)

	DedupPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "garderobe_dedup_pool_size",
			Help:    "Number of existing items compared against per resolution",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Composer metrics
	ComposeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "garderobe_compose_duration_seconds",
			Help:    "Duration of outfit composition in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ComposeCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "garderobe_compose_candidates",
			Help:    "Number of scored candidates per composition",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	ComposeInfeasible = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_compose_infeasible_total",
			Help: "Total number of compositions rejected as infeasible",
		},
		[]string{"condition"}, // "cold_weather_without_outerwear", "no_viable_combination", "insufficient_items"
	)

	OutfitsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "garderobe_outfits_saved_total",
			Help: "Total number of outfits saved by users",
		},
	)

	UsageResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "garderobe_usage_resets_total",
			Help: "Total number of item usage counter resets",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garderobe_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordIngest records one completed ingestion attempt.
func RecordIngest(category string, duration time.Duration, err error) {
	if err != nil {
		IngestErrors.WithLabelValues("storage").Inc()
		return
	}
	ItemsIngested.WithLabelValues(category).Inc()
	IngestDuration.Observe(duration.Seconds())
}

// RecordIngestValidationError records an ingestion rejected before
// persistence.
func RecordIngestValidationError() {
	IngestErrors.WithLabelValues("validation").Inc()
}

// RecordDedup records one duplicate resolution run. strategy is empty
// when no duplicate was found.
func RecordDedup(poolSize int, strategy string) {
	DedupChecks.Inc()
	DedupPoolSize.Observe(float64(poolSize))
	if strategy != "" {
		DuplicatesDetected.WithLabelValues(strategy).Inc()
	}
}

// RecordCompose records one successful composition.
func RecordCompose(duration time.Duration, candidates int) {
	ComposeDuration.Observe(duration.Seconds())
	ComposeCandidates.Observe(float64(candidates))
}

// RecordComposeInfeasible records a composition that could not produce
// any candidate.
func RecordComposeInfeasible(condition string) {
	ComposeInfeasible.WithLabelValues(condition).Inc()
}

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
