// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import (
	"math/rand"
	"sync"
)

// Synthesizer generates synthetic training examples from a spell
// library when no curated history exists. It is the only stochastic
// component in the engine; its random source is injected so tests are
// reproducible.
type Synthesizer struct {
	cfg *Config

	// rng is protected by rngMu for concurrent generation calls.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewSynthesizer creates a synthesizer seeded from Config.Synthesis.Seed.
func NewSynthesizer(cfg *Config) *Synthesizer {
	seed := cfg.Synthesis.Seed
	if seed == 0 {
		seed = 42
	}
	return &Synthesizer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for synthetic data
	}
}

// NewSynthesizerWithSource creates a synthesizer with an explicit random
// source, for deterministic tests.
func NewSynthesizerWithSource(cfg *Config, src rand.Source) *Synthesizer {
	return &Synthesizer{cfg: cfg, rng: rand.New(src)} //nolint:gosec // caller controls the source
}

// Generate produces count synthetic training examples drawn from the
// given spell library and character classes.
//
// Each example draws a combination of 2-4 spells without replacement,
// one class and one environment uniformly, and a combat-difficulty
// scalar in [0, 1]. Effectiveness is uniform in [0, 1]; synergy equals
// effectiveness boosted when the combination spans more than one
// school; unexpected effects attach with fixed probability from the
// configured catalog.
func (s *Synthesizer) Generate(library []Spell, classes []string, count int) []TrainingExample {
	if len(library) < s.cfg.Synthesis.MinComboSize || len(classes) == 0 || count <= 0 {
		return []TrainingExample{}
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	examples := make([]TrainingExample, 0, count)
	for i := 0; i < count; i++ {
		examples = append(examples, s.synthesizeOne(library, classes))
	}
	return examples
}

// synthesizeOne draws a single example. Must be called with rngMu held.
func (s *Synthesizer) synthesizeOne(library []Spell, classes []string) TrainingExample {
	combo := s.drawCombination(library)

	names := make([]string, len(combo))
	schools := make(map[string]struct{}, len(combo))
	for i, spell := range combo {
		names[i] = spell.Name
		schools[spell.School] = struct{}{}
	}

	effectiveness := s.rng.Float64()
	synergyScore := effectiveness
	if len(schools) > 1 {
		synergyScore = effectiveness * s.cfg.Synthesis.MultiSchoolSynergyBoost
	}

	var unexpected []string
	if s.rng.Float64() > s.cfg.Synthesis.UnexpectedEffectThreshold && len(s.cfg.Synthesis.EffectCatalog) > 0 {
		unexpected = []string{s.cfg.Synthesis.EffectCatalog[s.rng.Intn(len(s.cfg.Synthesis.EffectCatalog))]}
	}

	return TrainingExample{
		Combination: names,
		Outcome: ExampleOutcome{
			Effectiveness:     effectiveness,
			SynergyScore:      synergyScore,
			UnexpectedEffects: unexpected,
		},
		Context: ExampleContext{
			CharacterClass:   classes[s.rng.Intn(len(classes))],
			EnvironmentType:  s.cfg.Synthesis.EnvironmentPool[s.rng.Intn(len(s.cfg.Synthesis.EnvironmentPool))],
			CombatDifficulty: s.rng.Float64(),
		},
	}
}

// drawCombination picks a uniform subset size in [MinComboSize,
// MaxComboSize] and that many spells without replacement.
// Must be called with rngMu held.
func (s *Synthesizer) drawCombination(library []Spell) []Spell {
	size := s.cfg.Synthesis.MinComboSize
	spread := s.cfg.Synthesis.MaxComboSize - s.cfg.Synthesis.MinComboSize
	if spread > 0 {
		size += s.rng.Intn(spread + 1)
	}
	if size > len(library) {
		size = len(library)
	}

	combo := make([]Spell, 0, size)
	for _, idx := range s.rng.Perm(len(library))[:size] {
		combo = append(combo, library[idx])
	}
	return combo
}
