package gui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

func keys(ks ...ebiten.Key) KeyQuery {
	set := make(map[ebiten.Key]bool, len(ks))
	for _, k := range ks {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func withHeld(t *testing.T, q KeyQuery) {
	t.Helper()
	prev := heldKey
	heldKey = q
	t.Cleanup(func() { heldKey = prev })
}

func TestReadInputPresses(t *testing.T) {
	withHeld(t, keys())

	tests := []struct {
		name string
		key  ebiten.Key
		want core.Action
	}{
		{"arrow up", ebiten.KeyArrowUp, core.ActionUp},
		{"s moves down", ebiten.KeyS, core.ActionDown},
		{"a moves left", ebiten.KeyA, core.ActionLeft},
		{"arrow right", ebiten.KeyArrowRight, core.ActionRight},
		{"space fires", ebiten.KeySpace, core.ActionFire},
		{"enter confirms", ebiten.KeyEnter, core.ActionConfirm},
		{"r restarts", ebiten.KeyR, core.ActionRestart},
		{"p pauses", ebiten.KeyP, core.ActionPause},
		{"escape quits", ebiten.KeyEscape, core.ActionQuit},
		{"q quits", ebiten.KeyQ, core.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := readInput(keys(tt.key), keys())
			if !frame.Has(tt.want) {
				t.Errorf("Expected %v in frame", tt.want)
			}
		})
	}
}

func TestReadInputReleases(t *testing.T) {
	withHeld(t, keys())

	frame := readInput(keys(), keys(ebiten.KeyArrowLeft, ebiten.KeySpace))
	if !frame.Released(core.ActionLeft) {
		t.Error("Releasing a movement key should release the action")
	}
	if frame.Released(core.ActionFire) {
		t.Error("Fire has no release")
	}
}

func TestReadInputKeepsAlternateKeyHeld(t *testing.T) {
	withHeld(t, keys(ebiten.KeyArrowUp))

	frame := readInput(keys(), keys(ebiten.KeyW))
	if frame.Released(core.ActionUp) {
		t.Error("Up is still held through the arrow key")
	}
}

func TestReadInputEmpty(t *testing.T) {
	withHeld(t, keys())
	if frame := readInput(keys(), keys()); !frame.Empty() {
		t.Error("No key edges should give an empty frame")
	}
}

func TestLoadSpritesFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ship.png"), []byte("not a png"), 0o600); err != nil {
		t.Fatal(err)
	}

	prev := loadImage
	var loaded []string
	loadImage = func(path string) (*ebiten.Image, error) {
		loaded = append(loaded, filepath.Base(path))
		return nil, errors.New("bad image")
	}
	t.Cleanup(func() { loadImage = prev })

	set := LoadSprites(dir, log.New(io.Discard))
	if set.Loaded() != 0 {
		t.Errorf("Expected no sprites, got %d", set.Loaded())
	}
	if len(loaded) != 1 || loaded[0] != "ship.png" {
		t.Errorf("Only existing files should be decoded, got %v", loaded)
	}
	if set.Image(invaders.KindShip) != nil {
		t.Error("Broken sprite should fall back to a placeholder")
	}
}

func TestLoadSpritesNoDir(t *testing.T) {
	set := LoadSprites("", log.New(io.Discard))
	if set.Loaded() != 0 || set.Image(invaders.KindHostile) != nil {
		t.Error("Empty sprite dir should load nothing")
	}

	var none *SpriteSet
	if none.Image(invaders.KindShip) != nil || none.Loaded() != 0 {
		t.Error("Nil set should behave as empty")
	}
}

func TestPlaceholderColors(t *testing.T) {
	seen := make(map[any]invaders.Kind)
	for _, kind := range spriteKinds {
		c := placeholderColor(kind)
		if other, dup := seen[c]; dup {
			t.Errorf("%v and %v share a placeholder color", kind, other)
		}
		seen[c] = kind
	}
}

func TestSpriteBase(t *testing.T) {
	tests := []struct {
		facing int
		box    core.Rect
		w, h   int
	}{
		{invaders.FacingUp, core.NewRect(0, 0, 60, 48), 60, 48},
		{invaders.FacingDown, core.NewRect(0, 0, 60, 48), 60, 48},
		{invaders.FacingLeft, core.NewRect(0, 0, 48, 60), 60, 48},
		{invaders.FacingRight, core.NewRect(0, 0, 15, 3), 3, 15},
		{invaders.FacingUpLeft, core.NewRect(0, 0, 76, 76), 76, 76},
	}
	for _, tt := range tests {
		w, h := spriteBase(tt.box, tt.facing)
		if w != tt.w || h != tt.h {
			t.Errorf("spriteBase(%v, %d) = %dx%d, expected %dx%d", tt.box, tt.facing, w, h, tt.w, tt.h)
		}
	}
}
