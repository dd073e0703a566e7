// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package main is the entry point for the Garderobe server.
//
// Garderobe catalogues wardrobe items from classifier output and image
// uploads, detects perceptual and metadata duplicates, and composes
// scored outfit recommendations under occasion and weather constraints.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 loading (defaults, YAML, env)
//  2. Logging: zerolog, JSON or console format
//  3. Store: BadgerDB-backed wardrobe persistence
//  4. Duplicate resolver: ordered strategy chain over the item pool
//  5. Ingestion pipeline: refine, fingerprint, dedup, persist
//  6. Outfit composer: constraint-checked enumeration and scoring
//  7. HTTP server: Chi-routed REST API with Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. See internal/config for the full key set.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, waits up to 10s for in-flight requests, then
// closes the store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garderobe/garderobe/internal/api"
	"github.com/garderobe/garderobe/internal/config"
	"github.com/garderobe/garderobe/internal/dedup"
	"github.com/garderobe/garderobe/internal/ingest"
	"github.com/garderobe/garderobe/internal/logging"
	"github.com/garderobe/garderobe/internal/outfit"
	"github.com/garderobe/garderobe/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("in_memory", cfg.Database.InMemory).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	dbPath := cfg.Database.Path
	if cfg.Database.InMemory {
		dbPath = ""
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store initialized successfully")

	resolver, err := dedup.NewResolver(&cfg.Dedup, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create duplicate resolver")
	}

	ingestSvc, err := ingest.NewService(st, resolver, cfg.Wardrobe.MaxUses, cfg.Wardrobe.ColdThresholdC, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create ingestion service")
	}

	composer, err := outfit.NewComposer(&cfg.Composer, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create outfit composer")
	}

	handler, err := api.NewHandler(st, ingestSvc, composer, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	router := api.NewRouter(handler, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
		_ = server.Close()
	}

	logging.Info().Msg("Application stopped gracefully")
}
