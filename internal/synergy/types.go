// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import "time"

// Spell is an immutable reference record describing a single spell.
type Spell struct {
	// Name uniquely identifies the spell within a library.
	Name string `json:"name" validate:"required"`

	// School is the school of magic (e.g. "Evocation", "Abjuration").
	School string `json:"school" validate:"required"`

	// Level is the spell level (0 for cantrips).
	Level int `json:"level" validate:"min=0,max=9"`

	// Tags are free-form capability tags (e.g. "damage", "defense").
	Tags []string `json:"tags,omitempty"`

	// InteractionType labels how the spell interacts with others
	// (e.g. "Damage", "Buff", "Protection", "Healing").
	InteractionType string `json:"interaction_type,omitempty"`
}

// Character carries the fields of a character record the engine reads.
// Everything else about a character is opaque to this package.
type Character struct {
	// Class is the character class (e.g. "Wizard", "Fighter").
	Class string `json:"class" validate:"required"`

	// Level is the character level.
	Level int `json:"level" validate:"min=1,max=20"`

	// Intelligence and Wisdom drive the contextual modifier.
	Intelligence int `json:"intelligence" validate:"min=0,max=30"`
	Wisdom       int `json:"wisdom" validate:"min=0,max=30"`
}

// EnvironmentalContext describes the situation a prediction is made for.
// Both categories are open-ended strings; unrecognized values fall back
// to a weight of 1.0.
type EnvironmentalContext struct {
	// Terrain is the environment category (e.g. "dungeon", "forest").
	Terrain string `json:"terrain"`

	// CombatDifficulty is the difficulty category (e.g. "easy", "deadly").
	CombatDifficulty string `json:"combat_difficulty"`
}

// ExampleOutcome records the observed result of a spell combination.
type ExampleOutcome struct {
	// Effectiveness is the observed effectiveness in [0, 1].
	Effectiveness float64 `json:"effectiveness"`

	// SynergyScore is the observed synergy in [0, ~1.5]. Combinations
	// spanning more than one school can exceed 1.0.
	SynergyScore float64 `json:"synergy_score"`

	// UnexpectedEffects lists surprise effect labels, if any occurred.
	UnexpectedEffects []string `json:"unexpected_effects,omitempty"`
}

// ExampleContext captures the situational factors of a training example.
type ExampleContext struct {
	CharacterClass  string `json:"character_class"`
	EnvironmentType string `json:"environment_type"`

	// CombatDifficulty is a scalar in [0, 1], not a category.
	CombatDifficulty float64 `json:"combat_difficulty"`
}

// TrainingExample is one recorded or synthesized outcome. Examples are
// never mutated after creation; the weight model and the quality
// analyzer only read them.
type TrainingExample struct {
	// Combination is the ordered list of spell names used together.
	Combination []string `json:"combination"`

	Outcome ExampleOutcome `json:"outcome"`
	Context ExampleContext `json:"context"`
}

// ModelWeights are the four aggregated coefficients produced by training.
// They are overwritten wholesale on each retrain, never partially updated.
type ModelWeights struct {
	SynergyScore             float64 `json:"synergy_score_weight"`
	UnexpectedEffectsPenalty float64 `json:"unexpected_effects_penalty_weight"`
	CharacterClass           float64 `json:"character_class_weight"`
	EnvironmentType          float64 `json:"environment_type_weight"`
}

// Prediction is the result of scoring a spell combination.
//
// PredictedCompatibility and ConfidenceScore are both clamped to [0, 1];
// the raw scoring arithmetic can numerically exceed that range.
type Prediction struct {
	// Combination lists the spell names that were scored.
	Combination []string `json:"combination"`

	// PredictedCompatibility is the bounded compatibility score.
	PredictedCompatibility float64 `json:"predicted_compatibility"`

	// PotentialSynergyEffects are qualitative synergy labels from the
	// rule table.
	PotentialSynergyEffects []string `json:"potential_synergy_effects"`

	// RiskFactors are qualitative risk labels from the rule table.
	RiskFactors []string `json:"risk_factors"`

	// ConfidenceScore is the bounded confidence in this prediction.
	ConfidenceScore float64 `json:"confidence_score"`
}

// PerformanceReport summarizes the weight model's current state.
// It is a read-only snapshot; calling EvaluatePerformance never
// changes model state.
type PerformanceReport struct {
	// TrainingDatasetSize is the number of examples in the last
	// training set.
	TrainingDatasetSize int `json:"training_dataset_size"`

	// Weights is the current weight set.
	Weights ModelWeights `json:"weights"`

	// AverageCompatibilityPrediction is the mean synergy score across
	// the stored training set.
	AverageCompatibilityPrediction float64 `json:"average_compatibility_prediction"`

	// SynergyEffectAccuracy is the fraction of examples exhibiting at
	// least one unexpected effect.
	SynergyEffectAccuracy float64 `json:"synergy_effect_accuracy"`
}

// QualityMetrics are the diversity and sufficiency measures computed
// over a training set.
type QualityMetrics struct {
	// DatasetSize is the number of examples analyzed.
	DatasetSize int `json:"dataset_size"`

	// UniqueSpellCombinations counts distinct canonical (sorted)
	// combination signatures.
	UniqueSpellCombinations int `json:"unique_spell_combinations"`

	// DiversityScore is UniqueSpellCombinations / DatasetSize.
	DiversityScore float64 `json:"diversity_score"`

	// TrainingEfficiency is the proportion of examples contributing a
	// combination not already seen, processed in order.
	TrainingEfficiency float64 `json:"training_efficiency"`
}

// QualityReport pairs the metrics with human-readable recommendations.
type QualityReport struct {
	Metrics         QualityMetrics `json:"metrics"`
	Recommendations []string       `json:"recommendations"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of prediction requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of predictions served from cache.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of predictions that were computed.
	CacheMisses int64 `json:"cache_misses"`

	// TrainingCount is the number of completed training runs.
	TrainingCount int64 `json:"training_count"`

	// ErrorCount is the total number of failed calls.
	ErrorCount int64 `json:"error_count"`

	// LastTrainedAt is when the model was last retrained.
	LastTrainedAt time.Time `json:"last_trained_at"`
}
