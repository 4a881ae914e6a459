// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

// Package main is the entry point for the Arcanum server.
//
// Arcanum scores spell combination synergy, trains its weight model from
// recorded or synthesized outcomes, and serves predictions over a REST API
// with a TTL cache in front of the scorer.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, config file, and environment
//     variables (Koanf v2)
//  2. Synergy engine: predictor, weight model, synthesizer, analyzer,
//     and prediction cache
//  3. HTTP router: Chi with CORS, rate limiting, and Prometheus metrics
//  4. Supervisor tree: Suture-managed HTTP server and cache sweeper
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (ARCANUM_ prefix, e.g. ARCANUM_HTTP_PORT)
//   - Config file (config.yaml, or ARCANUM_CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the cache sweeper
//
// # Example Usage
//
//	export ARCANUM_HTTP_PORT=8089
//	export ARCANUM_LOG_LEVEL=info
//	./arcanum
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

	"github.com/ashverel/arcanum/internal/api"
	"github.com/ashverel/arcanum/internal/config"
	"github.com/ashverel/arcanum/internal/logging"
	"github.com/ashverel/arcanum/internal/supervisor"
	"github.com/ashverel/arcanum/internal/supervisor/services"
	"github.com/ashverel/arcanum/internal/synergy"
)

func main() {
	// Load configuration first to get logging settings.
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
		Str("version", api.Version).
		Int("port", cfg.Server.Port).
		Bool("cache_enabled", cfg.Engine.CacheEnabled).
		Dur("cache_ttl", cfg.Engine.CacheTTL).
		Msg("Starting Arcanum")

	engine := synergy.NewEngine(cfg.EngineConfig(), logging.Logger())

	if cfg.Engine.TrainOnStartup {
		examples := engine.GenerateTrainingData(
			synergy.DefaultSpellLibrary(),
			synergy.DefaultClassPool(),
			cfg.Engine.BootstrapCount,
		)
		if err := engine.Train(examples); err != nil {
			logging.Warn().Err(err).Msg("Bootstrap training failed, serving with default weights")
		} else {
			logging.Info().Int("examples", len(examples)).Msg("Model trained on synthesized bootstrap data")
		}
	}

	handler := api.NewHandler(engine, logging.Logger())
	middleware := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, middleware)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree.AddEngineService(services.NewSweeperService(engine, cfg.Engine.CacheSweepInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor finishes and the channel closes.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
