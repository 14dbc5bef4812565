package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Motion is the kinematic state a movement policy transforms.
type Motion struct {
	Pos core.Vec
	Vel core.Vec
}

// StepFormation advances a formation hostile: a horizontal move at the
// shared fleet speed and direction. Vertical motion only happens on drops.
func StepFormation(m Motion, speed, direction float64) Motion {
	m.Pos.X += speed * direction
	return m
}

// StepWander advances a wandering hostile by its own velocity and
// reflects the velocity off any playfield edge the box touches. The
// component is only negated while it still points into the edge, so a
// hostile overlapping the boundary cannot get stuck flipping back and forth.
func StepWander(m Motion, w, h int, field core.Rect) Motion {
	m.Pos = m.Pos.Add(m.Vel)
	box := core.RectAt(m.Pos, w, h)
	if (box.Right() >= field.Right() && m.Vel.X > 0) || (box.X <= field.X && m.Vel.X < 0) {
		m.Vel.X = -m.Vel.X
	}
	if (box.Bottom() >= field.Bottom() && m.Vel.Y > 0) || (box.Y <= field.Y && m.Vel.Y < 0) {
		m.Vel.Y = -m.Vel.Y
	}
	return m
}

// atHorizontalEdge reports whether a formation hostile touches the edge
// it is travelling towards.
func atHorizontalEdge(box, field core.Rect, direction float64) bool {
	if direction > 0 {
		return box.Right() >= field.Right()
	}
	return box.X <= field.X
}

// Fleet owns the live hostiles and the shared formation state.
type Fleet struct {
	Hostiles  []*Hostile
	Direction float64 // +1 right, -1 left

	level config.LevelConfig
	cfg   config.HostileConfig
	field core.Rect
}

// NewFleet creates an empty fleet for a level.
func NewFleet(level config.LevelConfig, cfg config.HostileConfig, field core.Rect) *Fleet {
	return &Fleet{
		Direction: 1,
		level:     level,
		cfg:       cfg,
		field:     field,
	}
}

// Spawn fills the fleet with a fresh grid of hostiles and flags exactly
// one of them, chosen uniformly, as the power-up carrier.
func (f *Fleet) Spawn(rng *core.RNG) {
	f.Hostiles = f.Hostiles[:0]
	f.Direction = 1

	w, h := f.cfg.Width, f.cfg.Height
	for y := f.field.Y + h; y < f.field.Bottom()-f.cfg.BottomMargin*h; y += f.cfg.RowSpacing * h {
		for x := f.field.X + w; x < f.field.Right()-2*w; x += f.cfg.ColumnSpacing * w {
			hostile := &Hostile{
				Body: Body{
					Pos:   core.Vec{X: float64(x), Y: float64(y)},
					W:     w,
					H:     h,
					Alive: true,
				},
				Policy: f.level.Policy,
			}
			if f.level.Policy == config.PolicyWander {
				hostile.Vel = core.Vec{
					X: rng.Sign() * f.level.AlienSpeed,
					Y: rng.Sign() * f.level.AlienSpeed,
				}
			}
			f.Hostiles = append(f.Hostiles, hostile)
		}
	}

	if len(f.Hostiles) > 0 {
		f.Hostiles[rng.Intn(len(f.Hostiles))].CarriesPowerUp = true
	}
}

// Clear removes every hostile.
func (f *Fleet) Clear() {
	f.Hostiles = f.Hostiles[:0]
}

// Live returns the number of live hostiles.
func (f *Fleet) Live() int {
	n := 0
	for _, h := range f.Hostiles {
		if h.Alive {
			n++
		}
	}
	return n
}

// Landed reports whether a live formation hostile has reached the bottom
// of the playfield. Wander hostiles bounce off it and never land.
func (f *Fleet) Landed() bool {
	for _, h := range f.Hostiles {
		if h.Alive && h.Policy == config.PolicyFormation && h.Bounds().Bottom() >= f.field.Bottom() {
			return true
		}
	}
	return false
}

// Update moves every live hostile one tick. If a formation hostile touches
// the edge it is heading for, the whole formation drops and reverses in
// the same tick. Returns true when that happened.
func (f *Fleet) Update() bool {
	flip := false
	for _, h := range f.Hostiles {
		if !h.Alive {
			continue
		}
		switch h.Policy {
		case config.PolicyWander:
			m := StepWander(Motion{Pos: h.Pos, Vel: h.Vel}, h.W, h.H, f.field)
			h.Pos, h.Vel = m.Pos, m.Vel
		default:
			m := StepFormation(Motion{Pos: h.Pos}, f.level.AlienSpeed, f.Direction)
			h.Pos = m.Pos
			if atHorizontalEdge(h.Bounds(), f.field, f.Direction) {
				flip = true
			}
		}
	}

	if flip {
		f.drop()
	}
	return flip
}

// drop lowers every formation hostile and reverses the shared direction.
func (f *Fleet) drop() {
	for _, h := range f.Hostiles {
		if h.Alive && h.Policy != config.PolicyWander {
			h.Pos.Y += f.cfg.DropSpeed
		}
	}
	f.Direction = -f.Direction
}

// PickShooter chooses, with probability p, one live hostile uniformly at
// random to fire this tick. Returns nil when nobody fires.
func (f *Fleet) PickShooter(rng *core.RNG, p float64) *Hostile {
	if !rng.Chance(p) {
		return nil
	}
	live := make([]*Hostile, 0, len(f.Hostiles))
	for _, h := range f.Hostiles {
		if h.Alive {
			live = append(live, h)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return live[rng.Intn(len(live))]
}

// purge drops dead hostiles.
func (f *Fleet) purge() {
	f.Hostiles = purgeDead(f.Hostiles)
}
