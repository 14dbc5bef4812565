// Package registry maps game IDs to factories so front-ends can build a
// session without importing the game package directly. A game registers
// itself from init().
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Game is a session the front-ends drive one fixed tick at a time.
// Implementations hold no front-end state.
type Game interface {
	ID() string
	Title() string

	// Attach hands over the external collaborators. Called before Reset.
	Attach(svc core.Services)

	// Reset starts a fresh session sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the intents collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws the session into a pre-cleared cell buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory builds an unattached game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a factory. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// Create builds the game registered as id and attaches svc to it.
func Create(id string, svc core.Services) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g := f()
	g.Attach(svc)
	return g, nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
