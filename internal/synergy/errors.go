// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package synergy

import "errors"

// Sentinel errors returned by the engine. Both are local to the failing
// call; neither corrupts cached predictions or stored weights.
var (
	// ErrEmptyTrainingSet indicates Train was called with no examples.
	// Model state is unchanged.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrInsufficientSpellCombination indicates Predict was called with
	// fewer than two spells.
	ErrInsufficientSpellCombination = errors.New("spell combination requires at least 2 spells")
)
