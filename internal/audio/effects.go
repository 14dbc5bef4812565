package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Effect lengths.
const (
	ShootDuration     = 90 * time.Millisecond
	ExplosionDuration = 400 * time.Millisecond
)

// Effect returns a finite streamer for the sound, or nil for unknown sounds.
func Effect(s core.Sound, sr beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundShoot:
		return shootSound(sr)
	case core.SoundExplosion:
		return explosionSound(sr)
	default:
		return nil
	}
}

// shootSound is a short falling two-note blip.
func shootSound(sr beep.SampleRate) beep.Streamer {
	high, err := generators.SineTone(sr, 1320)
	if err != nil {
		return nil
	}
	low, err := generators.SineTone(sr, 880)
	if err != nil {
		return nil
	}

	half := sr.N(ShootDuration / 2)
	blip := beep.Seq(
		beep.Take(half, high),
		beep.Take(sr.N(ShootDuration)-half, low),
	)
	return volume(newDecay(blip, sr.N(ShootDuration)), 0.35)
}

// explosionSound is decaying white noise.
func explosionSound(sr beep.SampleRate) beep.Streamer {
	n := sr.N(ExplosionDuration)
	return volume(newDecay(beep.Take(n, newNoise(0x9e3779b97f4a7c15)), n), 0.5)
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if s == nil {
		return nil
	}
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// noise streams endless white noise from a xorshift generator.
type noise struct {
	state uint64
}

func newNoise(seed uint64) *noise {
	if seed == 0 {
		seed = 1
	}
	return &noise{state: seed}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		n.state ^= n.state << 13
		n.state ^= n.state >> 7
		n.state ^= n.state << 17
		v := float64(n.state>>11)/float64(1<<53)*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// decay fades a stream linearly to silence over total samples.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func newDecay(s beep.Streamer, total int) *decay {
	return &decay{streamer: s, total: total}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 0.0
		if d.pos < d.total {
			vol = 1 - float64(d.pos)/float64(d.total)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
