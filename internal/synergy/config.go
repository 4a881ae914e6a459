// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import (
	"fmt"
	"time"
)

// Config contains all configuration for the synergy engine.
//
// The class and environment lookup tables are shared between the
// predictor and the weight model; there is exactly one copy of each.
type Config struct {
	// ClassWeights maps character classes to their contextual weight.
	// Spellcaster classes are weighted above non-casters. Unknown
	// classes fall back to DefaultCategoryWeight.
	ClassWeights map[string]float64 `json:"class_weights"`

	// EnvironmentWeights maps terrain categories to their contextual
	// weight. Unknown terrains fall back to DefaultCategoryWeight.
	EnvironmentWeights map[string]float64 `json:"environment_weights"`

	// Scoring contains the predictor's scoring coefficients.
	Scoring ScoringConfig `json:"scoring"`

	// Synthesis contains the training-data synthesizer policy.
	Synthesis SynthesisConfig `json:"synthesis"`

	// Cache contains prediction cache parameters.
	Cache CacheConfig `json:"cache"`

	// Quality contains dataset quality analyzer thresholds.
	Quality QualityConfig `json:"quality"`
}

// DefaultCategoryWeight is the fallback weight for character classes and
// environment categories not present in the lookup tables. Unknown
// categories are a leniency policy, not an error.
const DefaultCategoryWeight = 1.0

// ScoringConfig contains the predictor's scoring coefficients.
type ScoringConfig struct {
	// MaxCompatibleSchools is the number of unique schools a combination
	// can span before the diversity penalty applies.
	// Default: 2.
	MaxCompatibleSchools int `json:"max_compatible_schools"`

	// SchoolDiversityPenalty is the flat school compatibility assigned
	// when a combination spans more than MaxCompatibleSchools schools.
	// Default: 0.8.
	SchoolDiversityPenalty float64 `json:"school_diversity_penalty"`

	// LevelSpreadTolerance is the max(level)-min(level) spread that
	// still scores a full 1.0.
	// Default: 2.
	LevelSpreadTolerance int `json:"level_spread_tolerance"`

	// LevelSpreadPenalty is the per-level penalty applied beyond the
	// tolerance. The resulting score is clamped at 0.
	// Default: 0.1.
	LevelSpreadPenalty float64 `json:"level_spread_penalty"`

	// SchoolWeight and LevelWeight blend the two sub-scores into the
	// base compatibility.
	// Defaults: 0.6 and 0.4.
	SchoolWeight float64 `json:"school_weight"`
	LevelWeight  float64 `json:"level_weight"`

	// AbilityDivisor normalizes intelligence + wisdom in the contextual
	// modifier.
	// Default: 40.
	AbilityDivisor float64 `json:"ability_divisor"`

	// ConfidenceGain scales the confidence score before clamping.
	// Default: 10.
	ConfidenceGain float64 `json:"confidence_gain"`
}

// SynthesisConfig contains the synthesizer's policy knobs. The ranges,
// probabilities, and catalogs are configuration, not hidden constants.
type SynthesisConfig struct {
	// MinComboSize and MaxComboSize bound the drawn combination size.
	// Defaults: 2 and 4.
	MinComboSize int `json:"min_combo_size"`
	MaxComboSize int `json:"max_combo_size"`

	// MultiSchoolSynergyBoost scales effectiveness into synergy when a
	// combination spans more than one unique school.
	// Default: 1.5.
	MultiSchoolSynergyBoost float64 `json:"multi_school_synergy_boost"`

	// UnexpectedEffectThreshold is the uniform draw above which an
	// unexpected effect is attached (0.7 gives probability 0.3).
	// Default: 0.7.
	UnexpectedEffectThreshold float64 `json:"unexpected_effect_threshold"`

	// EnvironmentPool is the fixed set of environments drawn from.
	EnvironmentPool []string `json:"environment_pool"`

	// EffectCatalog is the fixed catalog of unexpected effect labels.
	EffectCatalog []string `json:"effect_catalog"`

	// Seed seeds the synthesizer's random source. If zero, a fixed
	// default seed is used for determinism.
	Seed int64 `json:"seed"`
}

// CacheConfig contains prediction cache parameters.
type CacheConfig struct {
	// Enabled controls whether predictions are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the prediction validity window.
	// Default: 24h.
	TTL time.Duration `json:"ttl"`

	// SweepInterval is how often the background sweeper removes expired
	// entries. Zero disables the background sweep; expired entries are
	// still removed lazily on lookup.
	// Default: 1h.
	SweepInterval time.Duration `json:"sweep_interval"`
}

// QualityConfig contains dataset quality analyzer thresholds.
type QualityConfig struct {
	// MinDatasetSize is the size below which the analyzer recommends
	// more examples.
	// Default: 50.
	MinDatasetSize int `json:"min_dataset_size"`

	// MinDiversityScore is the diversity below which the analyzer
	// recommends more varied combinations.
	// Default: 0.5.
	MinDiversityScore float64 `json:"min_diversity_score"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		ClassWeights: map[string]float64{
			"Wizard":    1.2,
			"Sorcerer":  1.15,
			"Cleric":    1.1,
			"Druid":     1.1,
			"Warlock":   1.1,
			"Bard":      1.05,
			"Paladin":   1.0,
			"Ranger":    1.0,
			"Fighter":   0.9,
			"Rogue":     0.9,
			"Monk":      0.9,
			"Barbarian": 0.85,
		},
		EnvironmentWeights: map[string]float64{
			"dungeon":    1.1,
			"forest":     1.05,
			"mountain":   1.0,
			"swamp":      0.95,
			"urban":      1.0,
			"underwater": 0.85,
			"planar":     1.15,
		},
		Scoring: ScoringConfig{
			MaxCompatibleSchools:   2,
			SchoolDiversityPenalty: 0.8,
			LevelSpreadTolerance:   2,
			LevelSpreadPenalty:     0.1,
			SchoolWeight:           0.6,
			LevelWeight:            0.4,
			AbilityDivisor:         40,
			ConfidenceGain:         10,
		},
		Synthesis: SynthesisConfig{
			MinComboSize:              2,
			MaxComboSize:              4,
			MultiSchoolSynergyBoost:   1.5,
			UnexpectedEffectThreshold: 0.7,
			EnvironmentPool: []string{
				"dungeon", "forest", "mountain", "swamp", "urban",
			},
			EffectCatalog: []string{
				"Elemental Resonance",
				"Arcane Feedback",
				"Wild Magic Surge",
				"Mana Burn",
				"Planar Echo",
			},
			Seed: 42, // Default seed for determinism
		},
		Cache: CacheConfig{
			Enabled:       true,
			TTL:           24 * time.Hour,
			SweepInterval: time.Hour,
		},
		Quality: QualityConfig{
			MinDatasetSize:    50,
			MinDiversityScore: 0.5,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Scoring.MaxCompatibleSchools < 1 {
		return fmt.Errorf("scoring.max_compatible_schools must be positive, got %d", c.Scoring.MaxCompatibleSchools)
	}
	if c.Scoring.SchoolDiversityPenalty < 0 || c.Scoring.SchoolDiversityPenalty > 1 {
		return fmt.Errorf("scoring.school_diversity_penalty must be in [0, 1], got %f", c.Scoring.SchoolDiversityPenalty)
	}
	if c.Scoring.LevelSpreadTolerance < 0 {
		return fmt.Errorf("scoring.level_spread_tolerance must be non-negative, got %d", c.Scoring.LevelSpreadTolerance)
	}
	if c.Scoring.LevelSpreadPenalty < 0 {
		return fmt.Errorf("scoring.level_spread_penalty must be non-negative, got %f", c.Scoring.LevelSpreadPenalty)
	}
	if c.Scoring.SchoolWeight < 0 || c.Scoring.LevelWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative, got school=%f level=%f",
			c.Scoring.SchoolWeight, c.Scoring.LevelWeight)
	}
	if c.Scoring.AbilityDivisor <= 0 {
		return fmt.Errorf("scoring.ability_divisor must be positive, got %f", c.Scoring.AbilityDivisor)
	}
	if c.Scoring.ConfidenceGain <= 0 {
		return fmt.Errorf("scoring.confidence_gain must be positive, got %f", c.Scoring.ConfidenceGain)
	}

	if c.Synthesis.MinComboSize < 2 {
		return fmt.Errorf("synthesis.min_combo_size must be at least 2, got %d", c.Synthesis.MinComboSize)
	}
	if c.Synthesis.MaxComboSize < c.Synthesis.MinComboSize {
		return fmt.Errorf("synthesis.max_combo_size must be >= min_combo_size, got %d < %d",
			c.Synthesis.MaxComboSize, c.Synthesis.MinComboSize)
	}
	if c.Synthesis.UnexpectedEffectThreshold < 0 || c.Synthesis.UnexpectedEffectThreshold > 1 {
		return fmt.Errorf("synthesis.unexpected_effect_threshold must be in [0, 1], got %f",
			c.Synthesis.UnexpectedEffectThreshold)
	}
	if len(c.Synthesis.EnvironmentPool) == 0 {
		return fmt.Errorf("synthesis.environment_pool must not be empty")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}

	if c.Quality.MinDatasetSize < 1 {
		return fmt.Errorf("quality.min_dataset_size must be positive, got %d", c.Quality.MinDatasetSize)
	}
	if c.Quality.MinDiversityScore < 0 || c.Quality.MinDiversityScore > 1 {
		return fmt.Errorf("quality.min_diversity_score must be in [0, 1], got %f", c.Quality.MinDiversityScore)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := &Config{
		ClassWeights:       make(map[string]float64, len(c.ClassWeights)),
		EnvironmentWeights: make(map[string]float64, len(c.EnvironmentWeights)),
		Scoring:            c.Scoring,
		Synthesis:          c.Synthesis,
		Cache:              c.Cache,
		Quality:            c.Quality,
	}
	for k, v := range c.ClassWeights {
		clone.ClassWeights[k] = v
	}
	for k, v := range c.EnvironmentWeights {
		clone.EnvironmentWeights[k] = v
	}
	clone.Synthesis.EnvironmentPool = append([]string(nil), c.Synthesis.EnvironmentPool...)
	clone.Synthesis.EffectCatalog = append([]string(nil), c.Synthesis.EffectCatalog...)
	return clone
}

// ClassWeight returns the contextual weight for a character class,
// falling back to DefaultCategoryWeight for unknown classes.
func (c *Config) ClassWeight(class string) float64 {
	if w, ok := c.ClassWeights[class]; ok {
		return w
	}
	return DefaultCategoryWeight
}

// EnvironmentWeight returns the contextual weight for a terrain
// category, falling back to DefaultCategoryWeight for unknown terrains.
func (c *Config) EnvironmentWeight(terrain string) float64 {
	if w, ok := c.EnvironmentWeights[terrain]; ok {
		return w
	}
	return DefaultCategoryWeight
}
