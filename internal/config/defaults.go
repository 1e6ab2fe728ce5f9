package config

import (
	_ "embed"
)

//go:embed defaults/mathcross.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tiers: []Tier{
			{Name: TierEasy, Equations: 10, GridWidth: 8, GridHeight: 6, BonusMultiplier: 1.0},
			{Name: TierMedium, Equations: 15, GridWidth: 11, GridHeight: 9, BonusMultiplier: 1.5},
			{Name: TierHard, Equations: 20, GridWidth: 13, GridHeight: 10, BonusMultiplier: 2.0},
			{Name: TierEpic, Equations: 25, GridWidth: 15, GridHeight: 12, BonusMultiplier: 3.0},
		},
		Scoring: Scoring{
			EquationPoints:         50,
			CompletionPoints:       100,
			HintPenalty:            25,
			HintsPerGame:           3,
			TimeBonusWindowSeconds: 300,
			TimeBonusMultiplier:    2,
		},
		Generator: Generator{
			HorizontalShare:     0.6,
			PrimaryAttempts:     80,
			MixedAttempts:       60,
			BackfillAttempts:    20,
			HintProbability:     0.4,
			DivisionProbability: 0.1,
			DecoyRatio:          0.2,
			MaxDecoyValue:       50,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
