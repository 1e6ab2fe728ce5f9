package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := validate(cfg); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if len(cfg.Tiers) != len(TierNames) {
		t.Errorf("default config has %d tiers, want %d", len(cfg.Tiers), len(TierNames))
	}
	for _, name := range TierNames {
		if _, ok := cfg.Tier(name); !ok {
			t.Errorf("default config missing tier %q", name)
		}
	}
}

func TestEmbeddedYAMLMatchesDefault(t *testing.T) {
	// The embedded YAML is the source of truth at runtime; the hardcoded
	// Default() is the last-resort fallback. They must agree.
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	want := Default()
	for _, wt := range want.Tiers {
		got, ok := cfg.Tier(wt.Name)
		if !ok {
			t.Fatalf("loaded config missing tier %q", wt.Name)
		}
		if got != wt {
			t.Errorf("tier %q = %+v, want %+v", wt.Name, got, wt)
		}
	}
	if cfg.Scoring != want.Scoring {
		t.Errorf("scoring = %+v, want %+v", cfg.Scoring, want.Scoring)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
tiers:
  - name: custom
    equations: 4
    grid_width: 9
    grid_height: 7
    bonus_multiplier: 1.2
scoring:
  equation_points: 10
  completion_points: 20
  hint_penalty: 5
  hints_per_game: 1
  time_bonus_window_seconds: 60
  time_bonus_multiplier: 1
generator:
  horizontal_share: 0.5
  primary_attempts: 10
  mixed_attempts: 10
  backfill_attempts: 5
  hint_probability: 0.3
  division_probability: 0.05
  decoy_ratio: 0.1
  max_decoy_value: 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tier, ok := cfg.Tier("custom")
	if !ok {
		t.Fatal("custom tier not loaded")
	}
	if tier.Equations != 4 || tier.GridWidth != 9 {
		t.Errorf("tier = %+v, want 4 equations on a 9-wide grid", tier)
	}
	if cfg.Scoring.EquationPoints != 10 {
		t.Errorf("EquationPoints = %d, want 10", cfg.Scoring.EquationPoints)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for an explicit path that does not exist")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "no tiers",
			mutate: func(c *Config) { c.Tiers = nil },
		},
		{
			name:   "zero equations",
			mutate: func(c *Config) { c.Tiers[0].Equations = 0 },
		},
		{
			name: "grid cannot fit a strip",
			mutate: func(c *Config) {
				c.Tiers[0].GridWidth = 4
				c.Tiers[0].GridHeight = 4
			},
		},
		{
			name:   "negative hint penalty",
			mutate: func(c *Config) { c.Scoring.HintPenalty = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := validate(cfg); err == nil {
				t.Error("validate() should reject this config")
			}
		})
	}
}
