package gui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// binding ties physical keys to one game action.
type binding struct {
	action core.Action
	keys   []ebiten.Key
}

// bindings lists the window key map. Movement keys report both presses
// and releases; the rest are presses only.
var bindings = []binding{
	{core.ActionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{core.ActionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{core.ActionFire, []ebiten.Key{ebiten.KeySpace}},
	{core.ActionConfirm, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}},
	{core.ActionRestart, []ebiten.Key{ebiten.KeyR}},
	{core.ActionPause, []ebiten.Key{ebiten.KeyP}},
	{core.ActionQuit, []ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}},
}

// KeyQuery reports an edge of a key during the current tick.
type KeyQuery func(ebiten.Key) bool

// readInput builds the frame for one tick from key edge queries.
// inpututil.IsKeyJustPressed and IsKeyJustReleased are the live sources.
func readInput(justPressed, justReleased KeyQuery) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range bindings {
		for _, k := range b.keys {
			if justPressed(k) {
				frame.Set(b.action)
			}
			if b.action.IsMovement() && justReleased(k) && !anyHeld(b.keys, k) {
				frame.Release(b.action)
			}
		}
	}
	return frame
}

// heldKey reports whether a key is currently down. Swapped in tests.
var heldKey = ebiten.IsKeyPressed

// anyHeld reports whether another key bound to the same action is still
// down, so releasing W while holding Up keeps moving.
func anyHeld(keys []ebiten.Key, released ebiten.Key) bool {
	for _, k := range keys {
		if k != released && heldKey(k) {
			return true
		}
	}
	return false
}
