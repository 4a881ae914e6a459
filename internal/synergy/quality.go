// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import (
	"sort"
	"strings"
)

// QualityAnalyzer reports on the diversity and sufficiency of a
// training set. It runs independently of the weight model and works on
// synthetic and curated examples alike.
type QualityAnalyzer struct {
	cfg *Config
}

// NewQualityAnalyzer creates an analyzer using the engine thresholds.
func NewQualityAnalyzer(cfg *Config) *QualityAnalyzer {
	return &QualityAnalyzer{cfg: cfg}
}

// Analyze computes diversity metrics over the example set.
//
// Combination signatures are canonicalized by sorting, so examples that
// use the same spells in a different order count as one combination.
// TrainingEfficiency is the share of examples that introduce a
// signature not already seen, processed in order.
func (a *QualityAnalyzer) Analyze(examples []TrainingExample) QualityMetrics {
	metrics := QualityMetrics{DatasetSize: len(examples)}
	if len(examples) == 0 {
		return metrics
	}

	seen := make(map[string]struct{}, len(examples))
	novel := 0
	for _, ex := range examples {
		sig := combinationSignature(ex.Combination)
		if _, ok := seen[sig]; !ok {
			seen[sig] = struct{}{}
			novel++
		}
	}

	n := float64(len(examples))
	metrics.UniqueSpellCombinations = len(seen)
	metrics.DiversityScore = float64(len(seen)) / n
	metrics.TrainingEfficiency = float64(novel) / n
	return metrics
}

// Report pairs the metrics with recommendations when the dataset falls
// below the configured thresholds.
func (a *QualityAnalyzer) Report(examples []TrainingExample) QualityReport {
	metrics := a.Analyze(examples)

	var recs []string
	if metrics.DatasetSize < a.cfg.Quality.MinDatasetSize {
		recs = append(recs, "Increase dataset size for more reliable training")
	}
	if metrics.DatasetSize > 0 && metrics.DiversityScore < a.cfg.Quality.MinDiversityScore {
		recs = append(recs, "Diversify spell combinations to improve coverage")
	}
	if metrics.DatasetSize > 0 && uniqueClasses(examples) < 3 {
		recs = append(recs, "Diversify character classes in the example set")
	}
	if recs == nil {
		recs = []string{}
	}

	return QualityReport{Metrics: metrics, Recommendations: recs}
}

// combinationSignature builds an order-independent signature for a
// spell combination.
func combinationSignature(combination []string) string {
	names := append([]string(nil), combination...)
	sort.Strings(names)
	return strings.Join(names, "|")
}

// uniqueClasses counts distinct character classes across examples.
func uniqueClasses(examples []TrainingExample) int {
	classes := make(map[string]struct{}, len(examples))
	for _, ex := range examples {
		classes[ex.Context.CharacterClass] = struct{}{}
	}
	return len(classes)
}
