// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

// Predictor scores spell combinations. Predict is a pure function of
// its inputs and the shared configuration; all randomness lives in the
// synthesizer.
type Predictor struct {
	cfg          *Config
	synergyRules []SynergyRule
	riskRules    []RiskRule
}

// NewPredictor creates a predictor with the default rule tables.
func NewPredictor(cfg *Config) *Predictor {
	return &Predictor{
		cfg:          cfg,
		synergyRules: DefaultSynergyRules(),
		riskRules:    DefaultRiskRules(cfg.Scoring.MaxCompatibleSchools),
	}
}

// AddSynergyRule registers an additional synergy rule.
func (p *Predictor) AddSynergyRule(rule SynergyRule) {
	p.synergyRules = append(p.synergyRules, rule)
}

// AddRiskRule registers an additional risk rule.
func (p *Predictor) AddRiskRule(rule RiskRule) {
	p.riskRules = append(p.riskRules, rule)
}

// Predict scores a combination of 2-4 spells for a character in a given
// context. It fails with ErrInsufficientSpellCombination when fewer than
// two spells are supplied.
//
// PredictedCompatibility and ConfidenceScore are clamped to [0, 1]; the
// raw arithmetic can exceed both bounds.
func (p *Predictor) Predict(spells []Spell, character Character, env EnvironmentalContext) (Prediction, error) {
	if len(spells) < 2 {
		return Prediction{}, ErrInsufficientSpellCombination
	}

	features := combinationFeatures(spells)

	schoolCompat := 1.0
	if features.UniqueSchools > p.cfg.Scoring.MaxCompatibleSchools {
		schoolCompat = p.cfg.Scoring.SchoolDiversityPenalty
	}

	levelScore := 1.0
	if features.LevelSpread > p.cfg.Scoring.LevelSpreadTolerance {
		levelScore = clamp01(1.0 - float64(features.LevelSpread)*p.cfg.Scoring.LevelSpreadPenalty)
	}

	base := schoolCompat*p.cfg.Scoring.SchoolWeight + levelScore*p.cfg.Scoring.LevelWeight

	abilities := float64(character.Intelligence+character.Wisdom) / p.cfg.Scoring.AbilityDivisor
	modifier := abilities * p.cfg.EnvironmentWeight(env.Terrain)

	names := make([]string, len(spells))
	present := make(map[string]bool, len(spells))
	for i, s := range spells {
		names[i] = s.Name
		if s.InteractionType != "" {
			present[s.InteractionType] = true
		}
	}

	return Prediction{
		Combination:             names,
		PredictedCompatibility:  clamp01(base * modifier),
		PotentialSynergyEffects: evaluateSynergyRules(p.synergyRules, present),
		RiskFactors:             evaluateRiskRules(p.riskRules, features),
		ConfidenceScore:         clamp01(base * modifier * p.cfg.Scoring.ConfidenceGain),
	}, nil
}

// combinationFeatures derives the features the scoring and risk rules
// operate on.
func combinationFeatures(spells []Spell) CombinationFeatures {
	schools := make(map[string]struct{}, len(spells))
	minLevel, maxLevel := spells[0].Level, spells[0].Level
	for _, s := range spells {
		schools[s.School] = struct{}{}
		if s.Level < minLevel {
			minLevel = s.Level
		}
		if s.Level > maxLevel {
			maxLevel = s.Level
		}
	}
	return CombinationFeatures{
		UniqueSchools: len(schools),
		LevelSpread:   maxLevel - minLevel,
		Size:          len(spells),
	}
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
