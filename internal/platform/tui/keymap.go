package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// DefaultHoldTimeout is how long a movement key counts as held after its
// last key event. Terminals report presses and auto-repeats but never
// releases, so a hold ends when the repeats stop. It covers the usual
// auto-repeat start delay.
const DefaultHoldTimeout = 550 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	holdTicks int
	held      map[core.Action]int // ticks since the last event for a held movement key
}

// NewKeyMapper creates a key mapper whose holds expire after timeout at the
// given tick rate.
func NewKeyMapper(tickRate int, timeout time.Duration) *KeyMapper {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := int(timeout * time.Duration(tickRate) / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return &KeyMapper{
		holdTicks: ticks,
		held:      make(map[core.Action]int),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q", "Q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "W", "up":
		return core.ActionUp, false
	case "s", "S", "down":
		return core.ActionDown, false
	case "a", "A", "left":
		return core.ActionLeft, false
	case "d", "D", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "p", "P":
		return core.ActionPause, false
	case "r", "R":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Movement keys start or extend a hold; pressing a direction releases the
// opposite one at once. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action == core.ActionNone {
		return isQuit
	}

	frame.Set(action)
	if action.IsMovement() {
		km.held[action] = 0
		if opp := opposite(action); km.isHeld(opp) {
			delete(km.held, opp)
			frame.Release(opp)
		}
	}
	return isQuit
}

// Tick ages the held keys by one simulation tick and adds a release to
// frame for every hold whose repeats have stopped.
func (km *KeyMapper) Tick(frame *core.InputFrame) {
	for a, age := range km.held {
		if frame.Has(a) {
			continue
		}
		age++
		if age >= km.holdTicks {
			delete(km.held, a)
			frame.Release(a)
			continue
		}
		km.held[a] = age
	}
}

// ReleaseAll ends every hold, e.g. when the terminal loses focus.
func (km *KeyMapper) ReleaseAll(frame *core.InputFrame) {
	for a := range km.held {
		frame.Release(a)
		delete(km.held, a)
	}
}

func (km *KeyMapper) isHeld(a core.Action) bool {
	_, ok := km.held[a]
	return ok
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	default:
		return core.ActionNone
	}
}

// MenuAction represents a launcher-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a launcher action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
