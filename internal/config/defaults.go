package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the hardcoded default configuration.
// It mirrors defaults/invaders.yaml and is used if the embedded file
// cannot be parsed.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Playfield: PlayfieldConfig{
			Width:  1200,
			Height: 800,
		},
		Ship: ShipConfig{
			Speed:             1.5,
			Width:             60,
			Height:            48,
			Lives:             3,
			InvulnerabilityMS: 1000,
			BlinkMS:           200,
			RespawnDelayMS:    500,
		},
		Bullets: BulletConfig{
			Speed:        2.5,
			Width:        3,
			Height:       15,
			Allowed:      5,
			PoweredWidth: 300,
		},
		Hostiles: HostileConfig{
			Width:         60,
			Height:        58,
			Points:        50,
			DropSpeed:     10,
			ColumnSpacing: 4,
			RowSpacing:    2,
			BottomMargin:  6,
			BulletSpeed:   1.5,
			BulletWidth:   3,
			BulletHeight:  15,
		},
		Explosions: ExplosionConfig{
			LifetimeMS: 3000,
			BlinkMS:    100,
			Width:      60,
			Height:     60,
		},
		PowerUp: PowerUpConfig{
			FallSpeed:  1.5,
			Width:      30,
			Height:     30,
			DurationMS: 5000,
		},
		Stars: StarConfig{
			Count:    100,
			MinSpeed: 0.5,
			MaxSpeed: 1.5,
		},
		Levels: []LevelConfig{
			{Name: "Formation", Policy: PolicyFormation, AlienSpeed: 1.0, FireChance: 0},
			{Name: "Swarm", Policy: PolicyWander, AlienSpeed: 1.0, FireChance: 0.01},
			{Name: "Onslaught", Policy: PolicyWander, AlienSpeed: 1.6, FireChance: 0.025},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
