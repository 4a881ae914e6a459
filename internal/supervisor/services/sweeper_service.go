// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashverel/arcanum/internal/cache"
	"github.com/ashverel/arcanum/internal/metrics"
)

// CacheSweeper matches the synergy.Engine methods the sweeper needs.
type CacheSweeper interface {
	SweepCache() int
	CacheStats() cache.Stats
}

// SweeperService periodically evicts expired prediction cache entries.
//
// Expired entries are already invisible to readers; the sweep reclaims
// their memory. The supervisor restarts the service if it crashes.
type SweeperService struct {
	engine   CacheSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSweeperService creates a cache sweeper running at the given interval.
// An interval of zero or less disables sweeping; Serve then just blocks
// until the context is canceled.
func NewSweeperService(engine CacheSweeper, interval time.Duration, logger zerolog.Logger) *SweeperService {
	return &SweeperService{
		engine:   engine,
		interval: interval,
		logger:   logger.With().Str("component", "cache_sweeper").Logger(),
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service. Returns ctx.Err() on shutdown.
func (s *SweeperService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("Cache sweeping disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().Dur("interval", s.interval).Msg("Cache sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed := s.engine.SweepCache()
			stats := s.engine.CacheStats()
			metrics.UpdateCacheGauges(stats.TotalEntries)
			if removed > 0 {
				s.logger.Debug().
					Int("removed", removed).
					Int("remaining", stats.TotalEntries).
					Msg("Swept expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *SweeperService) String() string {
	return s.name
}
