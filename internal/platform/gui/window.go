// Package gui runs the game in a desktop window with Ebitengine.
//
// The window drives one simulation step per Ebitengine tick and draws the
// game's snapshot in logical playfield units; Ebitengine scales the
// result to the window size.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// windowHelp replaces the menu help line; the bitmap font has no arrows.
const windowHelp = "Up/Down select level   Enter start   Q quit"

// textScale enlarges the 7x13 bitmap font on the logical playfield.
const textScale = 3

var (
	background = color.RGBA{R: 0x05, G: 0x05, B: 0x12, A: 0xff}
	hudFace    = text.NewGoXFace(basicfont.Face7x13)
)

// Window implements ebiten.Game around an invaders session.
type Window struct {
	game    *invaders.Game
	sprites *SpriteSet
	log     *log.Logger
}

// NewWindow creates a window for an already reset game.
func NewWindow(game *invaders.Game, sprites *SpriteSet, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Window{game: game, sprites: sprites, log: logger}
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	in := readInput(inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased)
	if ebiten.IsWindowBeingClosed() {
		in.Set(core.ActionQuit)
	}

	result := w.game.Step(in)
	if result.State.Quit {
		w.log.Info("window closed", "score", result.State.Score, "high", result.State.HighScore)
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the logical screen at the playfield size.
func (w *Window) Layout(_, _ int) (int, int) {
	field := w.game.Snapshot().Field
	return field.W, field.H
}

// Draw renders the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.game.Snapshot()
	screen.Fill(background)

	for _, star := range snap.Stars {
		fillRect(screen, star.Box, rgba(core.ColorWhite))
	}

	if snap.Mode == invaders.ModeMenu {
		w.drawMenu(screen, &snap)
		return
	}

	// Stars were drawn above
	for _, layer := range snap.Layers()[1:] {
		for _, s := range layer {
			if s.Visible {
				w.drawSprite(screen, s)
			}
		}
	}

	w.drawHUD(screen, &snap)
	switch {
	case snap.Mode == invaders.ModeGameOver:
		drawCentered(screen, invaders.GameOverMessage, snap.Field.H/2, rgba(core.ColorBrightRed))
	case snap.Paused:
		drawCentered(screen, invaders.PausedMessage, snap.Field.H/2, rgba(core.ColorBrightYellow))
	}
}

func (w *Window) drawMenu(screen *ebiten.Image, snap *invaders.Snapshot) {
	y := snap.Field.H / 4
	drawCentered(screen, invaders.MenuTitle, y, rgba(core.ColorBrightGreen))
	y += 80

	for i, lvl := range w.game.Config().Levels {
		n := i + 1
		label := invaders.LevelLabel(n, lvl)
		c := rgba(core.ColorGray)
		if n == snap.Level {
			label = "> " + label + " <"
			c = rgba(core.ColorBrightYellow)
		}
		drawCentered(screen, label, y, c)
		y += 50
	}

	y += 40
	drawCentered(screen, fmt.Sprintf("High score: %d", snap.HighScore), y, rgba(core.ColorWhite))
	drawCentered(screen, windowHelp, snap.Field.H-80, rgba(core.ColorGray))
}

func (w *Window) drawHUD(screen *ebiten.Image, snap *invaders.Snapshot) {
	hud := fmt.Sprintf("Score: %d   High: %d   Ships: %d   Level: %d %s",
		snap.Score, snap.HighScore, snap.Lives, snap.Level, snap.LevelName)
	drawText(screen, hud, 16, 12, rgba(core.ColorBrightWhite))
}

// drawSprite draws s from its image, or a colored box when none is loaded.
func (w *Window) drawSprite(screen *ebiten.Image, s invaders.Sprite) {
	img := w.sprites.Image(s.Kind)
	if img == nil {
		fillRect(screen, s.Box, placeholderColor(s.Kind))
		return
	}

	bw, bh := spriteBase(s.Box, s.Facing)
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bw)/float64(iw), float64(bh)/float64(ih))
	op.GeoM.Translate(-float64(bw)/2, -float64(bh)/2)
	if s.Kind == invaders.KindShip || s.Kind == invaders.KindBullet {
		// Facing is counter-clockwise; GeoM rotates clockwise on screen
		op.GeoM.Rotate(-float64(s.Facing) * math.Pi / 180)
	}
	cx, cy := s.Box.Center()
	op.GeoM.Translate(float64(cx), float64(cy))
	screen.DrawImage(img, op)
}

// spriteBase returns the unrotated size of a sprite whose rotated
// bounding box is box.
func spriteBase(box core.Rect, facing int) (int, int) {
	switch facing {
	case invaders.FacingLeft, invaders.FacingRight:
		return box.H, box.W
	default:
		return box.W, box.H
	}
}

func fillRect(dst *ebiten.Image, r core.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, hudFace, op)
}

func drawCentered(dst *ebiten.Image, s string, y int, c color.Color) {
	width, _ := text.Measure(s, hudFace, 0)
	x := (float64(dst.Bounds().Dx()) - width*textScale) / 2
	drawText(dst, s, int(math.Max(0, x)), y, c)
}

// Run opens the window and plays until the game quits or the window is
// closed. The game is reset with cfg before the window opens.
func Run(game *invaders.Game, cfg core.RuntimeConfig, spritesDir string, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)
	sprites := LoadSprites(spritesDir, logger)
	logger.Debug("sprites loaded", "dir", spritesDir, "count", sprites.Loaded())

	field := game.Snapshot().Field
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(field.W, field.H)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.TickRate)

	err := ebiten.RunGame(NewWindow(game, sprites, logger))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
