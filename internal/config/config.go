// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

// Package config loads and validates application configuration from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/ashverel/arcanum/internal/synergy"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Engine   EngineConfig   `koanf:"engine"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// EngineConfig contains the knobs exposed for the synergy engine.
// Anything not listed here keeps the engine's built-in default.
type EngineConfig struct {
	// CacheEnabled toggles the prediction cache.
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is how long a cached prediction stays valid.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheSweepInterval is the background sweep period. Zero disables
	// the background sweeper.
	CacheSweepInterval time.Duration `koanf:"cache_sweep_interval"`

	// SynthesisSeed seeds the training-data synthesizer. Zero keeps
	// the engine's fixed default seed.
	SynthesisSeed int64 `koanf:"synthesis_seed"`

	// MinDatasetSize and MinDiversityScore are the quality analyzer
	// thresholds.
	MinDatasetSize    int     `koanf:"min_dataset_size"`
	MinDiversityScore float64 `koanf:"min_diversity_score"`

	// TrainOnStartup synthesizes BootstrapCount examples from the
	// built-in spell library and trains the model before serving.
	TrainOnStartup bool `koanf:"train_on_startup"`
	BootstrapCount int  `koanf:"bootstrap_count"`
}

// SecurityConfig contains the API protection settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with production defaults. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engineDefaults := synergy.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8089,
			Timeout: 30 * time.Second,
		},
		Engine: EngineConfig{
			CacheEnabled:       engineDefaults.Cache.Enabled,
			CacheTTL:           engineDefaults.Cache.TTL,
			CacheSweepInterval: engineDefaults.Cache.SweepInterval,
			SynthesisSeed:      engineDefaults.Synthesis.Seed,
			MinDatasetSize:     engineDefaults.Quality.MinDatasetSize,
			MinDiversityScore:  engineDefaults.Quality.MinDiversityScore,
			BootstrapCount:     100,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Engine.CacheEnabled && c.Engine.CacheTTL <= 0 {
		return fmt.Errorf("engine.cache_ttl must be positive when caching is enabled, got %v", c.Engine.CacheTTL)
	}
	if c.Engine.CacheSweepInterval < 0 {
		return fmt.Errorf("engine.cache_sweep_interval must not be negative, got %v", c.Engine.CacheSweepInterval)
	}
	if c.Engine.TrainOnStartup && c.Engine.BootstrapCount <= 0 {
		return fmt.Errorf("engine.bootstrap_count must be positive when startup training is enabled, got %d", c.Engine.BootstrapCount)
	}
	if c.Engine.MinDiversityScore < 0 || c.Engine.MinDiversityScore > 1 {
		return fmt.Errorf("engine.min_diversity_score must be within [0, 1], got %v", c.Engine.MinDiversityScore)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	return nil
}

// EngineConfig builds a synergy.Config from the engine defaults plus
// the knobs exposed in this configuration.
func (c *Config) EngineConfig() *synergy.Config {
	cfg := synergy.DefaultConfig()
	cfg.Cache.Enabled = c.Engine.CacheEnabled
	cfg.Cache.TTL = c.Engine.CacheTTL
	cfg.Cache.SweepInterval = c.Engine.CacheSweepInterval
	cfg.Synthesis.Seed = c.Engine.SynthesisSeed
	cfg.Quality.MinDatasetSize = c.Engine.MinDatasetSize
	cfg.Quality.MinDiversityScore = c.Engine.MinDiversityScore
	return cfg
}
