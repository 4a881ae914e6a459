// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

// SynergyRule maps a set of interaction types to a synergy effect label.
// A rule fires when every type in Requires is present in the combination.
// Rules are data; adding one never touches the prediction algorithm.
type SynergyRule struct {
	// Requires lists the interaction types that must all be present.
	Requires []string

	// Effect is the label emitted when the rule fires.
	Effect string
}

// CombinationFeatures are the derived features risk rules evaluate.
type CombinationFeatures struct {
	// UniqueSchools is the number of distinct schools in the combination.
	UniqueSchools int

	// LevelSpread is max(level) - min(level).
	LevelSpread int

	// Size is the number of spells in the combination.
	Size int
}

// RiskRule maps a predicate over combination features to a risk label.
type RiskRule struct {
	// Matches reports whether the rule fires for the given features.
	Matches func(CombinationFeatures) bool

	// Factor is the label emitted when the rule fires.
	Factor string
}

// DefaultSynergyRules returns the built-in synergy rule table.
func DefaultSynergyRules() []SynergyRule {
	return []SynergyRule{
		{Requires: []string{"Damage", "Buff"}, Effect: "Amplified Damage Output"},
		{Requires: []string{"Protection", "Healing"}, Effect: "Enhanced Defensive Capabilities"},
	}
}

// DefaultRiskRules returns the built-in risk rule table.
// maxCompatibleSchools is the school count beyond which complexity risk
// applies; it matches ScoringConfig.MaxCompatibleSchools.
func DefaultRiskRules(maxCompatibleSchools int) []RiskRule {
	return []RiskRule{
		{
			Matches: func(f CombinationFeatures) bool {
				return f.UniqueSchools > maxCompatibleSchools
			},
			Factor: "High Magical Complexity",
		},
	}
}

// evaluateSynergyRules returns the effect labels of all rules whose
// required interaction types are present.
func evaluateSynergyRules(rules []SynergyRule, present map[string]bool) []string {
	effects := make([]string, 0, len(rules))
	for _, rule := range rules {
		fired := true
		for _, req := range rule.Requires {
			if !present[req] {
				fired = false
				break
			}
		}
		if fired {
			effects = append(effects, rule.Effect)
		}
	}
	return effects
}

// evaluateRiskRules returns the factor labels of all matching risk rules.
func evaluateRiskRules(rules []RiskRule, features CombinationFeatures) []string {
	factors := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.Matches(features) {
			factors = append(factors, rule.Factor)
		}
	}
	return factors
}
