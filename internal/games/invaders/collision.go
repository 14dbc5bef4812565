package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
)

type mortal interface {
	isAlive() bool
}

func (b *Body) isAlive() bool {
	return b.Alive
}

// purgeDead compacts a collection in place, keeping live entities in order.
func purgeDead[T mortal](items []T) []T {
	out := items[:0]
	for _, it := range items {
		if it.isAlive() {
			out = append(out, it)
		}
	}
	clear(items[len(out):])
	return out
}

// cullOffscreen marks every body whose box has fully left the playfield.
func cullOffscreen[T interface {
	mortal
	bounds() core.Rect
	kill()
}](items []T, field core.Rect) {
	for _, it := range items {
		if it.isAlive() && it.bounds().OutsideOf(field) {
			it.kill()
		}
	}
}

func (b *Body) bounds() core.Rect {
	return b.Bounds()
}

func (b *Body) kill() {
	b.Alive = false
}

// resolveCollisions runs the four collision passes in their fixed order.
// Later passes see the effects of earlier ones within the same tick.
func (g *Game) resolveCollisions() {
	g.collideBulletsWithHostiles()
	g.collideHostilesWithShip()
	if g.mode != ModeActive {
		return
	}
	g.collideHostileBulletsWithShip()
	if g.mode != ModeActive {
		return
	}
	g.collidePowerUpsWithShip()
}

// collideBulletsWithHostiles destroys both sides of every overlapping
// bullet/hostile pair. A single bullet may take out several hostiles.
func (g *Game) collideBulletsWithHostiles() {
	now := g.clock.Now()
	killed := 0
	for _, b := range g.bullets {
		if !b.Alive {
			continue
		}
		bb := b.Bounds()
		for _, h := range g.fleet.Hostiles {
			if !h.Alive || !bb.Intersects(h.Bounds()) {
				continue
			}
			b.Alive = false
			h.Alive = false
			killed++

			center := h.Center()
			g.explosions = append(g.explosions, newExplosion(center, g.cfg.Explosions, now))
			if h.CarriesPowerUp {
				g.powerUps = append(g.powerUps, newPowerUp(center, g.cfg.PowerUp))
			}
		}
	}

	if killed > 0 {
		g.score += killed * g.cfg.Hostiles.Points
		g.sound.Play(core.SoundExplosion)
	}
}

// collideHostilesWithShip applies the hit response for the first live
// hostile touching the ship, or once the formation lands on the bottom
// edge. Returns true if the ship was hit.
func (g *Game) collideHostilesWithShip() bool {
	sb := g.ship.Bounds()
	for _, h := range g.fleet.Hostiles {
		if h.Alive && sb.Intersects(h.Bounds()) {
			return g.shipHit()
		}
	}
	if g.fleet.Landed() {
		return g.shipHit()
	}
	return false
}

// collideHostileBulletsWithShip applies the hit response for the first
// hostile bullet touching the ship. The bullet is consumed even when the
// ship is invulnerable.
func (g *Game) collideHostileBulletsWithShip() bool {
	sb := g.ship.Bounds()
	for _, b := range g.hostileBullets {
		if b.Alive && sb.Intersects(b.Bounds()) {
			b.Alive = false
			return g.shipHit()
		}
	}
	return false
}

// collidePowerUpsWithShip consumes touched power-ups and (re)starts the
// bullet widening effect.
func (g *Game) collidePowerUpsWithShip() {
	sb := g.ship.Bounds()
	for _, p := range g.powerUps {
		if p.Alive && sb.Intersects(p.Bounds()) {
			p.Alive = false
			g.powerUp.Begin(g.clock.Now())
			g.log.Debug("power-up collected", "tick", g.tick)
		}
	}
}

// shipHit is the hit response shared by the ship collision passes.
// Damage is suppressed while the ship is invulnerable.
// Returns true if the hit was applied.
func (g *Game) shipHit() bool {
	if g.ship.Invulnerable() {
		return false
	}

	now := g.clock.Now()
	g.explosions = append(g.explosions, newExplosion(g.ship.Center(), g.cfg.Explosions, now))
	g.shipsLeft--

	if g.shipsLeft > 0 {
		g.clearCombatants()
		g.fleet.Spawn(g.rng)
		g.ship.center(g.field, now)
		g.sleep(g.cfg.Ship.RespawnDelay())
		return true
	}

	g.ship.Shown = false
	g.ship.stop()
	g.enterGameOver()
	return true
}

// clearCombatants empties every collection that takes part in collisions.
// Explosions are cosmetic and survive.
func (g *Game) clearCombatants() {
	g.fleet.Clear()
	g.bullets = g.bullets[:0]
	g.hostileBullets = g.hostileBullets[:0]
	g.powerUps = g.powerUps[:0]
}
