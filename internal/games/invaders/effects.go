package invaders

import "time"

// TimedEffect is a window of simulation time that opens at Start and
// expires once now-Start >= Duration. Restarting a running effect moves
// its start, it never stacks.
type TimedEffect struct {
	Start    time.Duration
	Duration time.Duration
	running  bool
}

// Begin starts (or restarts) the effect at now.
func (e *TimedEffect) Begin(now time.Duration) {
	e.Start = now
	e.running = true
}

// Active reports whether the effect is running.
func (e *TimedEffect) Active() bool {
	return e.running
}

// Elapsed returns how long the effect has been running at now.
func (e *TimedEffect) Elapsed(now time.Duration) time.Duration {
	return now - e.Start
}

// Expire stops the effect if its duration has passed.
// Returns true on the tick the effect ends.
func (e *TimedEffect) Expire(now time.Duration) bool {
	if !e.running || now-e.Start < e.Duration {
		return false
	}
	e.running = false
	return true
}

// Cancel stops the effect immediately.
func (e *TimedEffect) Cancel() {
	e.running = false
}

// expireEffects evaluates every session-wide timer against the clock.
func (g *Game) expireEffects() {
	now := g.clock.Now()
	g.ship.invulnerable.Expire(now)
	if g.powerUp.Expire(now) {
		g.log.Debug("power-up expired", "tick", g.tick)
	}
}

// BulletWidth returns the width given to player bullets fired now.
func (g *Game) BulletWidth() int {
	if g.powerUp.Active() {
		return g.cfg.Bullets.PoweredWidth
	}
	return g.cfg.Bullets.Width
}
