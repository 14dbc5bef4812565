package invaders

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Body is the state every simulated entity shares: an authoritative
// sub-unit position, a fixed size and a liveness flag.
type Body struct {
	Pos   core.Vec // Top-left corner
	W, H  int
	Alive bool
}

// Bounds returns the integer box derived from the current position.
func (b *Body) Bounds() core.Rect {
	return core.RectAt(b.Pos, b.W, b.H)
}

// Center returns the center of the derived box.
func (b *Body) Center() core.Vec {
	return b.Bounds().CenterVec()
}

// centeredAt places a w*h body so that its box is centered on c.
func centeredAt(c core.Vec, w, h int) Body {
	return Body{
		Pos:   core.Vec{X: c.X - float64(w/2), Y: c.Y - float64(h/2)},
		W:     w,
		H:     h,
		Alive: true,
	}
}

// Facing angles in degrees, counter-clockwise from straight up.
const (
	FacingUp        = 0
	FacingUpLeft    = 45
	FacingLeft      = 90
	FacingDownLeft  = 135
	FacingDown      = 180
	FacingDownRight = 225
	FacingRight     = 270
	FacingUpRight   = 315
)

// headings maps each facing angle to the unit vector (-sin θ, -cos θ).
// Stored as a table so the cardinal directions have no rounding residue.
var headings = map[int]core.Vec{
	FacingUp:        {X: 0, Y: -1},
	FacingUpLeft:    {X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
	FacingLeft:      {X: -1, Y: 0},
	FacingDownLeft:  {X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	FacingDown:      {X: 0, Y: 1},
	FacingDownRight: {X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	FacingRight:     {X: 1, Y: 0},
	FacingUpRight:   {X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
}

// Heading returns the unit direction of a facing angle.
func Heading(angle int) core.Vec {
	return headings[angle]
}

// Ship is the player craft.
type Ship struct {
	Body

	MovingUp, MovingDown, MovingLeft, MovingRight bool

	Facing int // One of the Facing* angles

	// Shown is false once the last ship is lost; blinking while
	// invulnerable is applied on top of it by VisibleAt.
	Shown bool

	invulnerable TimedEffect
	blink        time.Duration
}

func newShip(cfg config.ShipConfig, field core.Rect) *Ship {
	s := &Ship{
		Body:         Body{W: cfg.Width, H: cfg.Height, Alive: true},
		Shown:        true,
		Facing:       FacingUp,
		invulnerable: TimedEffect{Duration: cfg.Invulnerability()},
		blink:        cfg.Blink(),
	}
	s.moveToMidBottom(field)
	return s
}

func (s *Ship) moveToMidBottom(field core.Rect) {
	s.Pos = core.Vec{
		X: float64(field.X + (field.W-s.W)/2),
		Y: float64(field.Bottom() - s.H),
	}
}

// center puts the ship back at the bottom center and starts its
// invulnerability window.
func (s *Ship) center(field core.Rect, now time.Duration) {
	s.moveToMidBottom(field)
	s.Shown = true
	s.invulnerable.Begin(now)
}

// stop clears all movement intents.
func (s *Ship) stop() {
	s.MovingUp, s.MovingDown, s.MovingLeft, s.MovingRight = false, false, false, false
}

// Invulnerable reports whether the post-respawn grace window is running.
func (s *Ship) Invulnerable() bool {
	return s.invulnerable.Active()
}

// InvulnerableSince returns when the current grace window started.
func (s *Ship) InvulnerableSince() time.Duration {
	return s.invulnerable.Start
}

// VisibleAt reports whether the ship should be drawn at time now.
// While invulnerable the ship shows on even blink windows only.
func (s *Ship) VisibleAt(now time.Duration) bool {
	if !s.Shown {
		return false
	}
	if !s.invulnerable.Active() || s.blink <= 0 {
		return true
	}
	return (s.invulnerable.Elapsed(now)/s.blink)%2 == 0
}

// applyIntents updates the movement flags from a frame.
// A release clears the flag even when the same frame also presses it.
func (s *Ship) applyIntents(in core.InputFrame) {
	if in.Has(core.ActionUp) {
		s.MovingUp = true
	}
	if in.Has(core.ActionDown) {
		s.MovingDown = true
	}
	if in.Has(core.ActionLeft) {
		s.MovingLeft = true
	}
	if in.Has(core.ActionRight) {
		s.MovingRight = true
	}
	if in.Released(core.ActionUp) {
		s.MovingUp = false
	}
	if in.Released(core.ActionDown) {
		s.MovingDown = false
	}
	if in.Released(core.ActionLeft) {
		s.MovingLeft = false
	}
	if in.Released(core.ActionRight) {
		s.MovingRight = false
	}
}

// update moves the ship one tick. An intent that would carry the box
// across the playfield boundary is ignored for this tick.
func (s *Ship) update(speed float64, field core.Rect) {
	next := s.Pos
	w, h := float64(s.W), float64(s.H)
	if s.MovingRight && next.X+speed+w <= float64(field.Right()) {
		next.X += speed
	}
	if s.MovingLeft && next.X-speed >= float64(field.X) {
		next.X -= speed
	}
	if s.MovingUp && next.Y-speed >= float64(field.Y) {
		next.Y -= speed
	}
	if s.MovingDown && next.Y+speed+h <= float64(field.Bottom()) {
		next.Y += speed
	}
	s.Pos = next
	s.Facing = facingFor(s.Facing, s.MovingUp, s.MovingDown, s.MovingLeft, s.MovingRight)
}

// facingFor derives the compass angle from the movement flags, keeping
// the previous angle when no flag is set.
func facingFor(prev int, up, down, left, right bool) int {
	switch {
	case up && right:
		return FacingUpRight
	case up && left:
		return FacingUpLeft
	case down && right:
		return FacingDownRight
	case down && left:
		return FacingDownLeft
	case up:
		return FacingUp
	case down:
		return FacingDown
	case left:
		return FacingLeft
	case right:
		return FacingRight
	default:
		return prev
	}
}

// Bullet is a projectile moving at constant velocity. Player and hostile
// bullets share the type and live in separate collections.
type Bullet struct {
	Body
	Vel    core.Vec
	Facing int // Player bullets keep the ship's angle for rendering
}

func (b *Bullet) update() {
	b.Pos = b.Pos.Add(b.Vel)
}

// rotatedSize returns the bounding box of a w*h rectangle rotated by angle.
func rotatedSize(w, h, angle int) (int, int) {
	switch angle {
	case FacingUp, FacingDown:
		return w, h
	case FacingLeft, FacingRight:
		return h, w
	default:
		side := int(math.Round(float64(w+h) / math.Sqrt2))
		return side, side
	}
}

// newPlayerBullet spawns a bullet centered on the ship, travelling along
// the ship's facing.
func newPlayerBullet(ship *Ship, speed float64, width, height int) *Bullet {
	w, h := rotatedSize(width, height, ship.Facing)
	return &Bullet{
		Body:   centeredAt(ship.Center(), w, h),
		Vel:    Heading(ship.Facing).Scale(speed),
		Facing: ship.Facing,
	}
}

// newHostileBullet spawns a bullet at the shooter's mid-bottom aimed at
// target. The direction is fixed at spawn.
func newHostileBullet(shooter *Hostile, target core.Vec, speed float64, width, height int) *Bullet {
	box := shooter.Bounds()
	pos := core.Vec{
		X: float64(box.X + box.W/2 - width/2),
		Y: float64(box.Bottom() - height),
	}
	origin := core.RectAt(pos, width, height).CenterVec()
	dir := target.Sub(origin).Normalize()
	if dir == (core.Vec{}) {
		dir = Heading(FacingDown)
	}
	return &Bullet{
		Body:   Body{Pos: pos, W: width, H: height, Alive: true},
		Vel:    dir.Scale(speed),
		Facing: FacingDown,
	}
}

// Hostile is a single alien.
type Hostile struct {
	Body
	Policy         config.Policy
	Vel            core.Vec // Wander only; Formation hostiles move with the fleet
	CarriesPowerUp bool
}

// Explosion is a cosmetic blinking effect that expires after its lifetime.
type Explosion struct {
	Body
	SpawnedAt  time.Duration
	LastToggle time.Duration
	Visible    bool

	lifetime time.Duration
	blink    time.Duration
}

func newExplosion(at core.Vec, cfg config.ExplosionConfig, now time.Duration) *Explosion {
	return &Explosion{
		Body:       centeredAt(at, cfg.Width, cfg.Height),
		SpawnedAt:  now,
		LastToggle: now,
		Visible:    true,
		lifetime:   cfg.Lifetime(),
		blink:      cfg.Blink(),
	}
}

// update expires the explosion and toggles its blink state. Blinking is
// independent of the lifetime check.
func (e *Explosion) update(now time.Duration) {
	if now-e.SpawnedAt >= e.lifetime {
		e.Alive = false
	}
	if e.blink > 0 && now-e.LastToggle >= e.blink {
		e.Visible = !e.Visible
		e.LastToggle = now
	}
}

// PowerUp falls straight down and widens player bullets when caught.
type PowerUp struct {
	Body
	Vel core.Vec
}

func newPowerUp(at core.Vec, cfg config.PowerUpConfig) *PowerUp {
	return &PowerUp{
		Body: centeredAt(at, cfg.Width, cfg.Height),
		Vel:  core.Vec{Y: cfg.FallSpeed},
	}
}

func (p *PowerUp) update() {
	p.Pos = p.Pos.Add(p.Vel)
}

// Star is a decorative background particle. It never collides and is
// never destroyed; it wraps to the top instead.
type Star struct {
	Body
	Speed float64
}

func newStar(rng *core.RNG, cfg config.StarConfig, field core.Rect) *Star {
	radius := rng.IntRange(1, 2)
	return &Star{
		Body: Body{
			Pos: core.Vec{
				X: float64(rng.IntRange(field.X, field.Right())),
				Y: float64(rng.IntRange(field.Y, field.Bottom())),
			},
			W:     radius * 2,
			H:     radius * 2,
			Alive: true,
		},
		Speed: rng.FloatRange(cfg.MinSpeed, cfg.MaxSpeed),
	}
}

func (s *Star) update(rng *core.RNG, field core.Rect) {
	s.Pos.Y += s.Speed
	if s.Pos.Y >= float64(field.Bottom()) {
		s.Pos.Y = float64(field.Y)
		s.Pos.X = float64(rng.IntRange(field.X, field.Right()))
	}
}
