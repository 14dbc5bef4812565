package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Kind identifies what a sprite in a snapshot represents.
type Kind int

const (
	KindShip Kind = iota
	KindBullet
	KindHostileBullet
	KindHostile
	KindCarrier // Hostile holding the power-up
	KindExplosion
	KindPowerUp
	KindStar
)

// String returns the kind name, also used as the sprite asset name.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	case KindHostileBullet:
		return "alien_bullet"
	case KindHostile:
		return "alien"
	case KindCarrier:
		return "carrier"
	case KindExplosion:
		return "explosion"
	case KindPowerUp:
		return "powerup"
	case KindStar:
		return "star"
	default:
		return "unknown"
	}
}

// Sprite is the render data of one entity.
type Sprite struct {
	Kind    Kind
	Box     core.Rect
	Facing  int
	Visible bool
}

// Snapshot is an immutable copy of everything a renderer needs for one
// frame. Its slices are freshly allocated and never shared with the game.
type Snapshot struct {
	Tick      uint64
	Now       time.Duration
	Mode      Mode
	Level     int
	LevelName string
	Paused    bool

	Score     int
	HighScore int
	Lives     int

	BulletWidth int
	Field       core.Rect

	Ship           Sprite
	Bullets        []Sprite
	HostileBullets []Sprite
	Hostiles       []Sprite
	Explosions     []Sprite
	PowerUps       []Sprite
	Stars          []Sprite

	RNGState uint64
}

// Snapshot returns the current render data.
func (g *Game) Snapshot() Snapshot {
	now := g.clock.Now()

	snap := Snapshot{
		Tick:        g.tick,
		Now:         now,
		Mode:        g.mode,
		Level:       g.level,
		LevelName:   g.levelConfig().Name,
		Paused:      g.paused,
		Score:       g.score,
		HighScore:   g.highScore,
		Lives:       g.shipsLeft,
		BulletWidth: g.BulletWidth(),
		Field:       g.field,
		Ship: Sprite{
			Kind:    KindShip,
			Box:     g.ship.Bounds(),
			Facing:  g.ship.Facing,
			Visible: g.mode != ModeMenu && g.ship.VisibleAt(now),
		},
		RNGState: g.rng.State(),
	}

	snap.Bullets = make([]Sprite, 0, len(g.bullets))
	for _, b := range g.bullets {
		snap.Bullets = append(snap.Bullets, Sprite{Kind: KindBullet, Box: b.Bounds(), Facing: b.Facing, Visible: b.Alive})
	}
	snap.HostileBullets = make([]Sprite, 0, len(g.hostileBullets))
	for _, b := range g.hostileBullets {
		snap.HostileBullets = append(snap.HostileBullets, Sprite{Kind: KindHostileBullet, Box: b.Bounds(), Facing: b.Facing, Visible: b.Alive})
	}
	snap.Hostiles = make([]Sprite, 0, len(g.fleet.Hostiles))
	for _, h := range g.fleet.Hostiles {
		kind := KindHostile
		if h.CarriesPowerUp {
			kind = KindCarrier
		}
		snap.Hostiles = append(snap.Hostiles, Sprite{Kind: kind, Box: h.Bounds(), Visible: h.Alive})
	}
	snap.Explosions = make([]Sprite, 0, len(g.explosions))
	for _, e := range g.explosions {
		snap.Explosions = append(snap.Explosions, Sprite{Kind: KindExplosion, Box: e.Bounds(), Visible: e.Alive && e.Visible})
	}
	snap.PowerUps = make([]Sprite, 0, len(g.powerUps))
	for _, p := range g.powerUps {
		snap.PowerUps = append(snap.PowerUps, Sprite{Kind: KindPowerUp, Box: p.Bounds(), Visible: p.Alive})
	}
	snap.Stars = make([]Sprite, 0, len(g.stars))
	for _, s := range g.stars {
		snap.Stars = append(snap.Stars, Sprite{Kind: KindStar, Box: s.Bounds(), Visible: true})
	}

	return snap
}

// Layers returns the sprites in back-to-front drawing order.
func (snap *Snapshot) Layers() [][]Sprite {
	ship := []Sprite{snap.Ship}
	return [][]Sprite{
		snap.Stars,
		snap.Bullets,
		snap.HostileBullets,
		ship,
		snap.Hostiles,
		snap.PowerUps,
		snap.Explosions,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Now)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BulletWidth) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}

	for _, layer := range snap.Layers() {
		h = h*31 + uint64(len(layer))
		for _, s := range layer {
			h = h*31 + uint64(s.Kind)   //#nosec G115 -- hash computation
			h = h*31 + uint64(s.Box.X)  //#nosec G115 -- hash computation
			h = h*31 + uint64(s.Box.Y)  //#nosec G115 -- hash computation
			h = h*31 + uint64(s.Box.W)  //#nosec G115 -- hash computation
			h = h*31 + uint64(s.Box.H)  //#nosec G115 -- hash computation
			h = h*31 + uint64(s.Facing) //#nosec G115 -- hash computation
			if s.Visible {
				h = h*31 + 1
			}
		}
	}

	h = h*31 + snap.RNGState

	return h
}
