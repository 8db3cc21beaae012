// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config defines the service configuration and its layered loading:
// struct defaults, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// CatalogConfig holds catalog source settings.
type CatalogConfig struct {
	// MoviesPath and CreditsPath locate the TMDB-format CSV files.
	MoviesPath  string `koanf:"movies_path"`
	CreditsPath string `koanf:"credits_path"`

	// StoreEnabled persists imported movies in BadgerDB at StorePath so
	// restarts rebuild the index without re-parsing the CSVs.
	StoreEnabled bool   `koanf:"store_enabled"`
	StorePath    string `koanf:"store_path"`
}

// RecommendConfig wraps the pipeline configuration with service-level
// rebuild scheduling.
type RecommendConfig struct {
	Pipeline recommend.Config `koanf:"pipeline"`

	// RebuildInterval triggers periodic full rebuilds. Zero disables the
	// schedule; rebuilds then happen only on demand.
	RebuildInterval time.Duration `koanf:"rebuild_interval"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("config: server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Catalog.MoviesPath == "" {
		return fmt.Errorf("config: catalog.movies_path is required")
	}
	if c.Catalog.CreditsPath == "" {
		return fmt.Errorf("config: catalog.credits_path is required")
	}
	if c.Catalog.StoreEnabled && c.Catalog.StorePath == "" {
		return fmt.Errorf("config: catalog.store_path is required when the store is enabled")
	}
	if c.Recommend.RebuildInterval < 0 {
		return fmt.Errorf("config: recommend.rebuild_interval must be >= 0, got %s", c.Recommend.RebuildInterval)
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("config: api.rate_limit_requests must be >= 1, got %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("config: api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
		}
	}
	if err := c.Recommend.Pipeline.Validate(); err != nil {
		return err
	}
	return nil
}
