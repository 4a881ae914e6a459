// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ashverel/arcanum/internal/cache"
)

// Engine is the top-level prediction service. It owns the weight model,
// the rule-based predictor, the training-data synthesizer, the quality
// analyzer, and the prediction cache, and is safe for concurrent use.
type Engine struct {
	cfg       *Config
	logger    zerolog.Logger
	model     *WeightModel
	predictor *Predictor
	synth     *Synthesizer
	analyzer  *QualityAnalyzer
	cache     *cache.Cache
	group     singleflight.Group

	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	trainingCount atomic.Int64
	errorCount    atomic.Int64

	trainedMu     sync.Mutex
	lastTrainedAt time.Time
}

// NewEngine creates an engine from the given configuration. A nil
// config uses defaults. The returned engine has default weights and an
// empty cache; callers train it before predictions reflect real data.
func NewEngine(cfg *Config, logger zerolog.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	e := &Engine{
		cfg:       cfg,
		logger:    logger.With().Str("component", "synergy_engine").Logger(),
		model:     NewWeightModel(cfg),
		predictor: NewPredictor(cfg),
		synth:     NewSynthesizer(cfg),
		analyzer:  NewQualityAnalyzer(cfg),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.New(cfg.Cache.TTL)
	}

	e.logger.Info().
		Bool("cache_enabled", cfg.Cache.Enabled).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("Synergy engine initialized")

	return e
}

// Predict scores a spell combination for a character in an environment.
// Results are cached under a canonical key for the configured TTL, and
// concurrent misses for the same key compute at most once.
func (e *Engine) Predict(ctx context.Context, spells []Spell, character Character, env EnvironmentalContext) (Prediction, error) {
	prediction, _, err := e.PredictWithOrigin(ctx, spells, character, env)
	return prediction, err
}

// PredictWithOrigin is Predict plus a flag reporting whether the result
// was served from the cache.
func (e *Engine) PredictWithOrigin(ctx context.Context, spells []Spell, character Character, env EnvironmentalContext) (Prediction, bool, error) {
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return Prediction{}, false, err
	}

	if e.cache == nil {
		prediction, err := e.predictor.Predict(spells, character, env)
		if err != nil {
			e.errorCount.Add(1)
		}
		return prediction, false, err
	}

	key := e.cacheKey(spells, character, env)
	if cached, ok := e.cache.Get(key); ok {
		if prediction, ok := cached.(Prediction); ok {
			e.cacheHits.Add(1)
			e.logger.Debug().Str("cache_key", key).Msg("Prediction served from cache")
			return copyPrediction(prediction), true, nil
		}
	}

	e.cacheMisses.Add(1)

	result, err, _ := e.group.Do(key, func() (interface{}, error) {
		prediction, err := e.predictor.Predict(spells, character, env)
		if err != nil {
			return nil, err
		}
		e.cache.Put(key, prediction)
		return prediction, nil
	})
	if err != nil {
		e.errorCount.Add(1)
		return Prediction{}, false, err
	}

	return copyPrediction(result.(Prediction)), false, nil
}

// Train replaces the model weights with aggregates computed from the
// given examples. Cached predictions are deliberately left in place;
// they expire through the normal TTL rather than being invalidated on
// retrain.
func (e *Engine) Train(examples []TrainingExample) error {
	if err := e.model.Train(examples); err != nil {
		e.errorCount.Add(1)
		return err
	}

	e.trainingCount.Add(1)
	e.trainedMu.Lock()
	e.lastTrainedAt = time.Now()
	e.trainedMu.Unlock()

	e.logger.Info().
		Int("dataset_size", len(examples)).
		Msg("Weight model retrained")

	return nil
}

// EvaluatePerformance reports on the model's current weights and the
// retained training set. It never mutates model state.
func (e *Engine) EvaluatePerformance() PerformanceReport {
	return e.model.EvaluatePerformance()
}

// Weights returns the current model weights.
func (e *Engine) Weights() ModelWeights {
	return e.model.Weights()
}

// GenerateTrainingData synthesizes count training examples from the
// given spell library and class pool.
func (e *Engine) GenerateTrainingData(library []Spell, classes []string, count int) []TrainingExample {
	examples := e.synth.Generate(library, classes, count)
	e.logger.Debug().
		Int("requested", count).
		Int("generated", len(examples)).
		Msg("Training data synthesized")
	return examples
}

// AnalyzeDataset computes quality metrics for a training set.
func (e *Engine) AnalyzeDataset(examples []TrainingExample) QualityMetrics {
	return e.analyzer.Analyze(examples)
}

// ReportDatasetQuality computes quality metrics plus recommendations.
func (e *Engine) ReportDatasetQuality(examples []TrainingExample) QualityReport {
	return e.analyzer.Report(examples)
}

// CacheStats returns a snapshot of the prediction cache. With caching
// disabled it returns zero stats.
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// SweepCache eagerly removes expired cache entries and returns how many
// were evicted.
func (e *Engine) SweepCache() int {
	if e.cache == nil {
		return 0
	}
	removed := e.cache.Sweep()
	if removed > 0 {
		e.logger.Debug().Int("removed", removed).Msg("Cache sweep completed")
	}
	return removed
}

// ClearCache removes all cached predictions.
func (e *Engine) ClearCache() {
	if e.cache == nil {
		return
	}
	e.cache.Clear()
	e.logger.Info().Msg("Prediction cache cleared")
}

// Metrics returns a snapshot of the engine counters.
func (e *Engine) Metrics() Metrics {
	e.trainedMu.Lock()
	trainedAt := e.lastTrainedAt
	e.trainedMu.Unlock()

	return Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		TrainingCount: e.trainingCount.Load(),
		ErrorCount:    e.errorCount.Load(),
		LastTrainedAt: trainedAt,
	}
}

func (e *Engine) cacheKey(spells []Spell, character Character, env EnvironmentalContext) string {
	refs := make([]cache.SpellRef, len(spells))
	for i, spell := range spells {
		refs[i] = cache.SpellRef{Name: spell.Name, School: spell.School, Level: spell.Level}
	}
	return cache.Key(refs, character.Class, env.Terrain, env.CombatDifficulty)
}

// copyPrediction deep-copies a prediction so callers can mutate slices
// without corrupting the cached value.
func copyPrediction(p Prediction) Prediction {
	out := p
	if p.Combination != nil {
		out.Combination = append([]string(nil), p.Combination...)
	}
	if p.PotentialSynergyEffects != nil {
		out.PotentialSynergyEffects = append([]string(nil), p.PotentialSynergyEffects...)
	}
	if p.RiskFactors != nil {
		out.RiskFactors = append([]string(nil), p.RiskFactors...)
	}
	return out
}
