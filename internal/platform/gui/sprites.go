package gui

import (
	"errors"
	"image/color"
	_ "image/png" // PNG decoder for sprite files
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// spriteKinds are the kinds that can be drawn from an image file.
var spriteKinds = []invaders.Kind{
	invaders.KindShip,
	invaders.KindBullet,
	invaders.KindHostileBullet,
	invaders.KindHostile,
	invaders.KindCarrier,
	invaders.KindExplosion,
	invaders.KindPowerUp,
}

// SpriteSet holds the images found for each kind. Kinds without an image
// are drawn as placeholder rectangles.
type SpriteSet struct {
	images map[invaders.Kind]*ebiten.Image
}

// loadImage is swapped in tests.
var loadImage = func(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

// LoadSprites reads <dir>/<kind>.png for every kind. A missing or broken
// file is logged and replaced by a placeholder; it never fails the load.
func LoadSprites(dir string, logger *log.Logger) *SpriteSet {
	set := &SpriteSet{images: make(map[invaders.Kind]*ebiten.Image)}
	if dir == "" {
		return set
	}

	for _, kind := range spriteKinds {
		path := filepath.Join(dir, kind.String()+".png")
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			logger.Warn("sprite missing, using placeholder", "kind", kind, "path", path)
			continue
		}
		img, err := loadImage(path)
		if err != nil {
			logger.Warn("sprite unreadable, using placeholder", "kind", kind, "path", path, "error", err)
			continue
		}
		set.images[kind] = img
	}
	return set
}

// Image returns the sprite for kind, or nil for a placeholder.
func (s *SpriteSet) Image(kind invaders.Kind) *ebiten.Image {
	if s == nil {
		return nil
	}
	return s.images[kind]
}

// Loaded returns how many kinds have an image.
func (s *SpriteSet) Loaded() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}

// placeholderColor returns the fill used when a kind has no image.
func placeholderColor(kind invaders.Kind) color.Color {
	switch kind {
	case invaders.KindShip:
		return rgba(core.ColorBrightGreen)
	case invaders.KindBullet:
		return rgba(core.ColorBrightYellow)
	case invaders.KindHostileBullet:
		return rgba(core.ColorBrightRed)
	case invaders.KindHostile:
		return rgba(core.ColorGreen)
	case invaders.KindCarrier:
		return rgba(core.ColorBrightMagenta)
	case invaders.KindExplosion:
		return rgba(core.ColorOrange)
	case invaders.KindPowerUp:
		return rgba(core.ColorBrightCyan)
	default:
		return rgba(core.ColorGray)
	}
}

// rgba converts a palette color to an opaque RGBA value.
func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
