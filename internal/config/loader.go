package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.mathcross/config.yaml -> ./configs/mathcross.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := validate(cfg); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && validate(cfg) == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/mathcross.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && validate(cfg) == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mathcross", filename)
}

// validate rejects configs a game cannot be built from.
func validate(cfg Config) error {
	if len(cfg.Tiers) == 0 {
		return fmt.Errorf("no tiers defined")
	}
	for _, t := range cfg.Tiers {
		if t.Equations <= 0 {
			return fmt.Errorf("tier %s: equations must be positive", t.Name)
		}
		if t.GridWidth < 5 && t.GridHeight < 5 {
			return fmt.Errorf("tier %s: grid %dx%d cannot fit a 5-cell strip", t.Name, t.GridWidth, t.GridHeight)
		}
	}
	if cfg.Scoring.HintsPerGame < 0 || cfg.Scoring.HintPenalty < 0 {
		return fmt.Errorf("scoring: hint values must be non-negative")
	}
	return nil
}
