package core

import (
	"time"

	"github.com/charmbracelet/log"
)

//go:generate go tool mockgen -destination=./mocks/services_mock.go -package=mocks . SoundPlayer,HighScoreStore,RunRecorder

// Sound identifies a sound effect the game asks the platform to play.
type Sound int

const (
	SoundShoot Sound = iota
	SoundExplosion
)

// String returns the sound name.
func (s Sound) String() string {
	switch s {
	case SoundShoot:
		return "shoot"
	case SoundExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// SoundPlayer plays sound effects. Calls are fire-and-forget; an
// implementation without audio output simply does nothing.
type SoundPlayer interface {
	Play(s Sound)
}

// HighScoreStore loads and saves the persisted high score for a game.
type HighScoreStore interface {
	LoadHighScore(gameID string) (uint64, error)
	PersistHighScore(gameID string, value uint64) error
}

// RunRecorder appends a finished session to the run history.
type RunRecorder interface {
	RecordRun(gameID string, level int, score uint64) error
}

// Sleeper blocks the calling goroutine for d.
type Sleeper func(d time.Duration)

// Services are the external collaborators the platform hands to a game.
// Nil fields are replaced with silent defaults.
type Services struct {
	Sound  SoundPlayer
	Scores HighScoreStore
	Runs   RunRecorder
	Sleep  Sleeper
	Logger *log.Logger
}

// NopSound is a SoundPlayer that discards every request.
type NopSound struct{}

// Play does nothing.
func (NopSound) Play(Sound) {}
