package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadInvaders loads the game configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default
func LoadInvaders(customPath string) (InvadersConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return InvadersConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return InvadersConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "invaders.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so a partial file only
// overrides the keys it names, and validates the result.
func parse(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	// Levels replace the default table wholesale when present
	cfg.Levels = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return InvadersConfig{}, err
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = DefaultInvadersConfig().Levels
	}
	if err := cfg.Validate(); err != nil {
		return InvadersConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a simulation.
func (c InvadersConfig) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("playfield must have positive size, got %dx%d", c.Playfield.Width, c.Playfield.Height)
	case c.Ship.Width <= 0 || c.Ship.Height <= 0:
		return fmt.Errorf("ship must have positive size")
	case c.Ship.Width > c.Playfield.Width || c.Ship.Height > c.Playfield.Height:
		return fmt.Errorf("ship does not fit in the playfield")
	case c.Ship.Lives <= 0:
		return fmt.Errorf("ship.lives must be positive, got %d", c.Ship.Lives)
	case c.Bullets.Allowed <= 0:
		return fmt.Errorf("bullets.allowed must be positive, got %d", c.Bullets.Allowed)
	case c.Hostiles.Width <= 0 || c.Hostiles.Height <= 0:
		return fmt.Errorf("hostiles must have positive size")
	case c.Hostiles.ColumnSpacing <= 0 || c.Hostiles.RowSpacing <= 0:
		return fmt.Errorf("hostile spacing must be positive")
	case c.Stars.MaxSpeed < c.Stars.MinSpeed:
		return fmt.Errorf("stars.max_speed must not be below stars.min_speed")
	case len(c.Levels) != LevelCount:
		return fmt.Errorf("expected %d levels, got %d", LevelCount, len(c.Levels))
	}
	for i, lvl := range c.Levels {
		if lvl.Policy != PolicyFormation && lvl.Policy != PolicyWander {
			return fmt.Errorf("level %d: unknown policy %q", i+1, lvl.Policy)
		}
		if lvl.FireChance < 0 || lvl.FireChance > 1 {
			return fmt.Errorf("level %d: fire_chance must be within [0, 1]", i+1)
		}
	}
	// Level 1 is the classic formation that never shoots back.
	if first := c.Levels[0]; first.Policy != PolicyFormation || first.FireChance != 0 {
		return fmt.Errorf("level 1: must use the formation policy with fire_chance 0")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", filename)
}
