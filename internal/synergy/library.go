// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

// DefaultSpellLibrary returns the built-in spell library used for
// bootstrap training when no caller-supplied library is available.
// It spans several schools and interaction types so synthesized
// combinations exercise the multi-school synergy boost.
func DefaultSpellLibrary() []Spell {
	return []Spell{
		{Name: "Fireball", School: "Evocation", Level: 3, InteractionType: "Damage", Tags: []string{"fire", "area"}},
		{Name: "Lightning Bolt", School: "Evocation", Level: 3, InteractionType: "Damage", Tags: []string{"lightning", "line"}},
		{Name: "Magic Missile", School: "Evocation", Level: 1, InteractionType: "Damage", Tags: []string{"force"}},
		{Name: "Shield", School: "Abjuration", Level: 1, InteractionType: "Protection", Tags: []string{"defense"}},
		{Name: "Counterspell", School: "Abjuration", Level: 3, InteractionType: "Protection", Tags: []string{"reaction"}},
		{Name: "Stoneskin", School: "Abjuration", Level: 4, InteractionType: "Protection", Tags: []string{"defense"}},
		{Name: "Haste", School: "Transmutation", Level: 3, InteractionType: "Buff", Tags: []string{"speed"}},
		{Name: "Enlarge", School: "Transmutation", Level: 2, InteractionType: "Buff", Tags: []string{"size"}},
		{Name: "Fly", School: "Transmutation", Level: 3, InteractionType: "Buff", Tags: []string{"movement"}},
		{Name: "Cure Wounds", School: "Evocation", Level: 1, InteractionType: "Healing", Tags: []string{"restoration"}},
		{Name: "Healing Word", School: "Evocation", Level: 1, InteractionType: "Healing", Tags: []string{"restoration", "ranged"}},
		{Name: "Bless", School: "Enchantment", Level: 1, InteractionType: "Buff", Tags: []string{"divine"}},
		{Name: "Hold Person", School: "Enchantment", Level: 2, InteractionType: "Control", Tags: []string{"paralysis"}},
		{Name: "Web", School: "Conjuration", Level: 2, InteractionType: "Control", Tags: []string{"area", "restraint"}},
		{Name: "Mirror Image", School: "Illusion", Level: 2, InteractionType: "Protection", Tags: []string{"deception"}},
		{Name: "Invisibility", School: "Illusion", Level: 2, InteractionType: "Buff", Tags: []string{"stealth"}},
	}
}

// DefaultClassPool returns the caster classes used for bootstrap training.
func DefaultClassPool() []string {
	return []string{"Wizard", "Sorcerer", "Cleric", "Druid", "Warlock", "Bard"}
}
