// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import (
	"strings"
	"testing"
)

func exampleWithCombination(combo []string, class string) TrainingExample {
	return TrainingExample{
		Combination: combo,
		Outcome:     ExampleOutcome{Effectiveness: 0.5, SynergyScore: 0.5},
		Context:     ExampleContext{CharacterClass: class, EnvironmentType: "dungeon"},
	}
}

func TestQualityAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		examples       []TrainingExample
		wantUnique     int
		wantDiversity  float64
		wantEfficiency float64
	}{
		{
			name:     "empty set",
			examples: nil,
		},
		{
			name: "all distinct combinations",
			examples: []TrainingExample{
				exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
				exampleWithCombination([]string{"Shield", "Cure Wounds"}, "Cleric"),
			},
			wantUnique:     2,
			wantDiversity:  1.0,
			wantEfficiency: 1.0,
		},
		{
			name: "identical combinations collapse to one",
			examples: []TrainingExample{
				exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
				exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
				exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
				exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
			},
			wantUnique:     1,
			wantDiversity:  0.25,
			wantEfficiency: 0.25,
		},
		{
			name: "order of spells does not create a new combination",
			examples: []TrainingExample{
				exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
				exampleWithCombination([]string{"Haste", "Fireball"}, "Wizard"),
			},
			wantUnique:     1,
			wantDiversity:  0.5,
			wantEfficiency: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := NewQualityAnalyzer(DefaultConfig())
			got := a.Analyze(tt.examples)

			if got.DatasetSize != len(tt.examples) {
				t.Errorf("DatasetSize = %d, want %d", got.DatasetSize, len(tt.examples))
			}
			if got.UniqueSpellCombinations != tt.wantUnique {
				t.Errorf("UniqueSpellCombinations = %d, want %d", got.UniqueSpellCombinations, tt.wantUnique)
			}
			if !almostEqual(got.DiversityScore, tt.wantDiversity) {
				t.Errorf("DiversityScore = %v, want %v", got.DiversityScore, tt.wantDiversity)
			}
			if !almostEqual(got.TrainingEfficiency, tt.wantEfficiency) {
				t.Errorf("TrainingEfficiency = %v, want %v", got.TrainingEfficiency, tt.wantEfficiency)
			}
		})
	}
}

func TestQualityAnalyzer_Report(t *testing.T) {
	t.Parallel()

	a := NewQualityAnalyzer(DefaultConfig())

	t.Run("small homogeneous set gets all recommendations", func(t *testing.T) {
		t.Parallel()

		examples := []TrainingExample{
			exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
			exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
			exampleWithCombination([]string{"Fireball", "Haste"}, "Wizard"),
		}

		report := a.Report(examples)
		wantFragments := []string{"dataset size", "spell combinations", "character classes"}
		for _, fragment := range wantFragments {
			found := false
			for _, rec := range report.Recommendations {
				if strings.Contains(rec, fragment) {
					found = true
				}
			}
			if !found {
				t.Errorf("Recommendations = %v, want one mentioning %q", report.Recommendations, fragment)
			}
		}
	})

	t.Run("large diverse set gets no recommendations", func(t *testing.T) {
		t.Parallel()

		classes := []string{"Wizard", "Cleric", "Druid", "Sorcerer"}
		examples := make([]TrainingExample, 0, 60)
		for i := 0; i < 60; i++ {
			combo := []string{
				"Spell-" + string(rune('A'+i%26)) + string(rune('a'+i/26)),
				"Spell-" + string(rune('a'+i%26)) + string(rune('A'+i/26)),
			}
			examples = append(examples, exampleWithCombination(combo, classes[i%len(classes)]))
		}

		report := a.Report(examples)
		if len(report.Recommendations) != 0 {
			t.Errorf("Recommendations = %v, want none for a healthy dataset", report.Recommendations)
		}
	})

	t.Run("empty set only flags size", func(t *testing.T) {
		t.Parallel()

		report := a.Report(nil)
		if len(report.Recommendations) != 1 {
			t.Fatalf("Recommendations = %v, want exactly the size recommendation", report.Recommendations)
		}
		if !strings.Contains(report.Recommendations[0], "dataset size") {
			t.Errorf("Recommendations[0] = %q, want a dataset size recommendation", report.Recommendations[0])
		}
	})
}
