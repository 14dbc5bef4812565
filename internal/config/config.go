// Package config provides YAML-based game configuration loading and
// level management for Alien Invasion.
package config

import "time"

// InvadersConfig contains all configuration for the game.
type InvadersConfig struct {
	Playfield  PlayfieldConfig `yaml:"playfield"`
	Ship       ShipConfig      `yaml:"ship"`
	Bullets    BulletConfig    `yaml:"bullets"`
	Hostiles   HostileConfig   `yaml:"hostiles"`
	Explosions ExplosionConfig `yaml:"explosions"`
	PowerUp    PowerUpConfig   `yaml:"powerup"`
	Stars      StarConfig      `yaml:"stars"`
	Levels     []LevelConfig   `yaml:"levels"`
}

// PlayfieldConfig defines the logical size of the simulation area.
type PlayfieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ShipConfig defines the player craft.
type ShipConfig struct {
	Speed             float64 `yaml:"speed"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	Lives             int     `yaml:"lives"`
	InvulnerabilityMS int     `yaml:"invulnerability_ms"`
	BlinkMS           int     `yaml:"blink_ms"`
	RespawnDelayMS    int     `yaml:"respawn_delay_ms"`
}

// BulletConfig defines player projectiles.
type BulletConfig struct {
	Speed        float64 `yaml:"speed"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Allowed      int     `yaml:"allowed"`       // Max live player bullets
	PoweredWidth int     `yaml:"powered_width"` // Width while the power-up is active
}

// HostileConfig defines aliens and their projectiles.
type HostileConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Points        int     `yaml:"points"`
	DropSpeed     float64 `yaml:"drop_speed"`
	ColumnSpacing int     `yaml:"column_spacing"` // Column pitch in hostile widths
	RowSpacing    int     `yaml:"row_spacing"`    // Row pitch in hostile heights
	BottomMargin  int     `yaml:"bottom_margin"`  // Rows stop this many heights above the bottom
	BulletSpeed   float64 `yaml:"bullet_speed"`
	BulletWidth   int     `yaml:"bullet_width"`
	BulletHeight  int     `yaml:"bullet_height"`
}

// ExplosionConfig defines the cosmetic explosion effect.
type ExplosionConfig struct {
	LifetimeMS int `yaml:"lifetime_ms"`
	BlinkMS    int `yaml:"blink_ms"`
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
}

// PowerUpConfig defines the falling power-up and its effect.
type PowerUpConfig struct {
	FallSpeed  float64 `yaml:"fall_speed"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	DurationMS int     `yaml:"duration_ms"`
}

// StarConfig defines the decorative background.
type StarConfig struct {
	Count    int     `yaml:"count"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// Policy names a hostile movement policy.
type Policy string

const (
	PolicyFormation Policy = "formation"
	PolicyWander    Policy = "wander"
)

// LevelConfig defines one selectable difficulty level.
type LevelConfig struct {
	Name       string  `yaml:"name"`
	Policy     Policy  `yaml:"policy"`
	AlienSpeed float64 `yaml:"alien_speed"`
	FireChance float64 `yaml:"fire_chance"` // Per-tick probability that the fleet fires
}

// Invulnerability returns the post-respawn grace period.
func (c ShipConfig) Invulnerability() time.Duration {
	return time.Duration(c.InvulnerabilityMS) * time.Millisecond
}

// Blink returns the visibility window length while invulnerable.
func (c ShipConfig) Blink() time.Duration {
	return time.Duration(c.BlinkMS) * time.Millisecond
}

// RespawnDelay returns the synchronous pause applied after losing a ship.
func (c ShipConfig) RespawnDelay() time.Duration {
	return time.Duration(c.RespawnDelayMS) * time.Millisecond
}

// Lifetime returns how long an explosion lives.
func (c ExplosionConfig) Lifetime() time.Duration {
	return time.Duration(c.LifetimeMS) * time.Millisecond
}

// Blink returns the explosion blink interval.
func (c ExplosionConfig) Blink() time.Duration {
	return time.Duration(c.BlinkMS) * time.Millisecond
}

// Duration returns how long a picked-up power-up stays active.
func (c PowerUpConfig) Duration() time.Duration {
	return time.Duration(c.DurationMS) * time.Millisecond
}
