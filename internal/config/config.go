// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package config provides layered application configuration. Values come
// from built-in defaults, an optional YAML file and environment variable
// overrides, in ascending precedence.
package config

import (
	"fmt"
	"time"

	"github.com/garderobe/garderobe/internal/dedup"
	"github.com/garderobe/garderobe/internal/outfit"
	"github.com/garderobe/garderobe/internal/wardrobe"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
	Wardrobe WardrobeConfig `koanf:"wardrobe"`
	Dedup    dedup.Config   `koanf:"dedup"`
	Composer outfit.Config  `koanf:"composer"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	CORSOrigins []string      `koanf:"cors_origins"`
}

// DatabaseConfig holds BadgerDB settings. An empty path selects an
// in-memory store.
type DatabaseConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// WardrobeConfig holds catalogue-level settings.
type WardrobeConfig struct {
	// MaxUses is the per-item usage ceiling applied to newly ingested
	// items.
	MaxUses int `koanf:"max_uses"`

	// ColdThresholdC is the temperature below which weather is cold.
	ColdThresholdC float64 `koanf:"cold_threshold_c"`
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and
// env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8480,
			Timeout:     30 * time.Second,
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Path:     "/data/garderobe",
			InMemory: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Wardrobe: WardrobeConfig{
			MaxUses:        wardrobe.DefaultMaxUses,
			ColdThresholdC: wardrobe.ColdThresholdC,
		},
		Dedup:    *dedup.DefaultConfig(),
		Composer: *outfit.DefaultConfig(),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level %q is not a valid zerolog level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Wardrobe.MaxUses < 1 {
		return fmt.Errorf("wardrobe.max_uses must be at least 1, got %d", c.Wardrobe.MaxUses)
	}

	if err := c.Dedup.Validate(); err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	if err := c.Composer.Validate(); err != nil {
		return fmt.Errorf("composer: %w", err)
	}
	return nil
}
