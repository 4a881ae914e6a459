// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import "sync"

// WeightModel aggregates training examples into the four model weights.
//
// Training is a deterministic aggregation, not gradient-based learning:
// given the same example set it always produces the same weights. The
// weight set is swapped wholesale under the lock, so readers never
// observe a partially updated model.
type WeightModel struct {
	mu       sync.RWMutex
	cfg      *Config
	weights  ModelWeights
	examples []TrainingExample // last training set, read-only, for reporting
}

// NewWeightModel creates an untrained weight model sharing the engine's
// lookup tables.
func NewWeightModel(cfg *Config) *WeightModel {
	return &WeightModel{cfg: cfg}
}

// Train derives a fresh weight set from the example outcomes.
// It fails with ErrEmptyTrainingSet on an empty input and leaves the
// current weights and stored training set untouched.
func (m *WeightModel) Train(examples []TrainingExample) error {
	if len(examples) == 0 {
		return ErrEmptyTrainingSet
	}

	var synergySum, penaltySum, classSum, envSum float64
	for _, ex := range examples {
		synergySum += ex.Outcome.SynergyScore
		penaltySum += float64(len(ex.Outcome.UnexpectedEffects)) * 0.1
		classSum += m.cfg.ClassWeight(ex.Context.CharacterClass)
		envSum += m.cfg.EnvironmentWeight(ex.Context.EnvironmentType)
	}

	n := float64(len(examples))
	next := ModelWeights{
		SynergyScore:             synergySum / n,
		UnexpectedEffectsPenalty: penaltySum / n,
		CharacterClass:           classSum / n,
		EnvironmentType:          envSum / n,
	}

	retained := make([]TrainingExample, len(examples))
	copy(retained, examples)

	m.mu.Lock()
	m.weights = next
	m.examples = retained
	m.mu.Unlock()

	return nil
}

// Weights returns a copy of the current weight set.
func (m *WeightModel) Weights() ModelWeights {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.weights
}

// DatasetSize returns the size of the last training set.
func (m *WeightModel) DatasetSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.examples)
}

// EvaluatePerformance reports on the current model state. It is
// read-only and safe to call any number of times.
func (m *WeightModel) EvaluatePerformance() PerformanceReport {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report := PerformanceReport{
		TrainingDatasetSize: len(m.examples),
		Weights:             m.weights,
	}
	if len(m.examples) == 0 {
		return report
	}

	var synergySum float64
	var withEffects int
	for _, ex := range m.examples {
		synergySum += ex.Outcome.SynergyScore
		if len(ex.Outcome.UnexpectedEffects) > 0 {
			withEffects++
		}
	}

	n := float64(len(m.examples))
	report.AverageCompatibilityPrediction = synergySum / n
	report.SynergyEffectAccuracy = float64(withEffects) / n
	return report
}
