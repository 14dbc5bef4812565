// Package audio plays the game's synthesized sound effects through the
// system speaker.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player implements core.SoundPlayer on top of a beep mixer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         *log.Logger
}

var _ core.SoundPlayer = (*Player)(nil)

// NewPlayer creates a player. Nothing is audible until Init succeeds.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Open returns a ready player, or a silent one if the speaker is unavailable.
func Open(logger *log.Logger) core.SoundPlayer {
	p := NewPlayer(logger)
	if err := p.Init(); err != nil {
		p.log.Warn("audio unavailable, sounds disabled", "error", err)
		return core.NopSound{}
	}
	return p
}

// Play queues a sound effect. Unknown sounds and calls before Init are ignored.
func (p *Player) Play(s core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	streamer := Effect(s, sampleRate)
	if streamer == nil {
		p.log.Debug("no effect for sound", "sound", s)
		return
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
