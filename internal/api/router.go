// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garderobe/garderobe/internal/metrics"
)

const (
	// rateLimitRequests per client IP per rateLimitWindow. Generous
	// enough that batch ingestion bursts stay under it.
	rateLimitRequests = 100
	rateLimitWindow   = time.Minute

	// corsMaxAge is how long browsers may cache preflight results.
	corsMaxAge = 86400 // 24 hours
)

// Router wires the HTTP surface.
type Router struct {
	handler     *Handler
	corsOrigins []string
}

// NewRouter creates a router around the handler set.
func NewRouter(handler *Handler, corsOrigins []string) *Router {
	return &Router{handler: handler, corsOrigins: corsOrigins}
}

// Setup configures all routes and the global middleware stack.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         corsMaxAge,
	}))
	r.Use(httprate.LimitByIP(rateLimitRequests, rateLimitWindow))

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/v1/health", router.handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(prometheusMiddleware)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", router.handler.IngestItem)
			r.Post("/batch", router.handler.IngestBatch)
			r.Post("/duplicate-check", router.handler.CheckDuplicate)
			r.Get("/", router.handler.ListItems)
			r.Delete("/{itemID}", router.handler.DeleteItem)
			r.Post("/{itemID}/usage/reset", router.handler.ResetUsage)
		})

		r.Route("/outfits", func(r chi.Router) {
			r.Post("/compose", router.handler.ComposeOutfits)
			r.Post("/", router.handler.SaveOutfit)
			r.Get("/", router.handler.ListOutfits)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", router.handler.GetProfile)
			r.Put("/", router.handler.PutProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/backup", router.handler.Backup)
			r.Post("/restore", router.handler.Restore)
		})
	})

	return r
}

// prometheusMiddleware records request counts and latency per route
// pattern. Patterns, not raw paths, keep label cardinality bounded.
func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.RecordAPIRequest(r.Method, pattern, ww.Status(), time.Since(start))
	})
}
