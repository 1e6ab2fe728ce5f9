// Package config provides YAML-based configuration loading for the
// mathcross game: difficulty tiers, scoring rules, and generator knobs.
package config

// TierName names a difficulty preset.
type TierName string

const (
	TierEasy   TierName = "easy"
	TierMedium TierName = "medium"
	TierHard   TierName = "hard"
	TierEpic   TierName = "epic"
)

// TierNames lists the tiers in ascending difficulty order.
var TierNames = []TierName{TierEasy, TierMedium, TierHard, TierEpic}

// Tier is one difficulty preset: a target equation count, the grid size it
// plays on, and the completion bonus multiplier.
type Tier struct {
	Name            TierName `yaml:"name"`
	Equations       int      `yaml:"equations"`
	GridWidth       int      `yaml:"grid_width"`
	GridHeight      int      `yaml:"grid_height"`
	BonusMultiplier float64  `yaml:"bonus_multiplier"`
}

// Scoring defines all point values and hint economics.
type Scoring struct {
	EquationPoints         int `yaml:"equation_points"`          // per freshly solved equation
	CompletionPoints       int `yaml:"completion_points"`        // base for the tier bonus
	HintPenalty            int `yaml:"hint_penalty"`             // deducted per hint, score clamps at 0
	HintsPerGame           int `yaml:"hints_per_game"`           //
	TimeBonusWindowSeconds int `yaml:"time_bonus_window_seconds"`
	TimeBonusMultiplier    int `yaml:"time_bonus_multiplier"`
}

// Generator tunes board generation.
type Generator struct {
	HorizontalShare     float64 `yaml:"horizontal_share"`
	PrimaryAttempts     int     `yaml:"primary_attempts"`
	MixedAttempts       int     `yaml:"mixed_attempts"`
	BackfillAttempts    int     `yaml:"backfill_attempts"`
	HintProbability     float64 `yaml:"hint_probability"`
	DivisionProbability float64 `yaml:"division_probability"`
	DecoyRatio          float64 `yaml:"decoy_ratio"`
	MaxDecoyValue       int     `yaml:"max_decoy_value"`
}

// Config is the full game configuration.
type Config struct {
	Tiers     []Tier    `yaml:"tiers"`
	Scoring   Scoring   `yaml:"scoring"`
	Generator Generator `yaml:"generator"`
}

// Tier looks up a tier preset by name.
func (c Config) Tier(name TierName) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}
