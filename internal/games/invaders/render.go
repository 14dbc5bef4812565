package invaders

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Visual characters for rendering
const (
	HostileChar       = 'W'
	BulletChar        = '|'
	HostileBulletChar = '!'
	PowerUpChar       = '$'
	ExplosionChar     = '*'
	StarChar          = '.'
)

// shipGlyphs maps facing angles to arrow glyphs.
var shipGlyphs = map[int]rune{
	FacingUp:        '▲',
	FacingUpLeft:    '◤',
	FacingLeft:      '◀',
	FacingDownLeft:  '◣',
	FacingDown:      '▼',
	FacingDownRight: '◢',
	FacingRight:     '▶',
	FacingUpRight:   '◥',
}

// bulletGlyph returns the streak glyph for a player bullet's direction.
func bulletGlyph(facing int) rune {
	switch facing {
	case FacingLeft, FacingRight:
		return '-'
	case FacingUpLeft, FacingDownRight:
		return '\\'
	case FacingUpRight, FacingDownLeft:
		return '/'
	default:
		return BulletChar
	}
}

// Overlay texts shared by the front-ends.
const (
	MenuTitle       = "A L I E N   I N V A S I O N"
	MenuHelp        = "↑/↓ select level   Enter start   Q quit"
	GameOverMessage = "GAME OVER! Press 'R' to Restart or 'Q' to Quit"
	PausedMessage   = "PAUSED - Press 'P' to resume"
)

// Minimum terminal size that can show the playfield.
const (
	minScreenW = 30
	minScreenH = 12
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		g.renderTooSmall(dst)
		return
	}

	snap := g.Snapshot()
	view := newViewport(snap.Field, dst.Width(), dst.Height()-hudRows)

	for _, s := range snap.Stars {
		x, y := view.point(s.Box.X, s.Box.Y)
		dst.SetColored(x, y+hudRows, StarChar, core.ColorGray)
	}

	if snap.Mode == ModeMenu {
		g.renderMenu(dst, &snap)
		return
	}

	for _, b := range snap.Bullets {
		fill, c := bulletGlyph(b.Facing), core.ColorBrightYellow
		if b.Box.W >= g.cfg.Bullets.PoweredWidth || b.Box.H >= g.cfg.Bullets.PoweredWidth {
			fill = '='
		}
		dst.DrawRect(view.rect(b.Box, hudRows), fill, c)
	}
	for _, b := range snap.HostileBullets {
		dst.DrawRect(view.rect(b.Box, hudRows), HostileBulletChar, core.ColorBrightRed)
	}
	if snap.Ship.Visible {
		dst.DrawRect(view.rect(snap.Ship.Box, hudRows), shipGlyphs[snap.Ship.Facing], core.ColorBrightGreen)
	}
	for _, h := range snap.Hostiles {
		c := core.ColorGreen
		if h.Kind == KindCarrier {
			c = core.ColorBrightMagenta
		}
		dst.DrawRect(view.rect(h.Box, hudRows), HostileChar, c)
	}
	for _, p := range snap.PowerUps {
		dst.DrawRect(view.rect(p.Box, hudRows), PowerUpChar, core.ColorBrightCyan)
	}
	for _, e := range snap.Explosions {
		if e.Visible {
			dst.DrawRect(view.rect(e.Box, hudRows), ExplosionChar, core.ColorOrange)
		}
	}

	g.renderHUD(dst, &snap)

	switch {
	case snap.Mode == ModeGameOver:
		drawBanner(dst, GameOverMessage, core.ColorBrightRed)
	case snap.Paused:
		drawBanner(dst, PausedMessage, core.ColorBrightYellow)
	}
}

// renderHUD draws score, high score, lives and level on the top row.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	left := fmt.Sprintf(" Score: %d  High: %d", snap.Score, snap.HighScore)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf("L%d %s  Ships: %s ", snap.Level, snap.LevelName, strings.Repeat("♥", max(snap.Lives, 0)))
	if snap.BulletWidth > g.cfg.Bullets.Width {
		right = "POWER  " + right
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorBrightCyan)
}

// renderMenu draws the title and the level picker.
func (g *Game) renderMenu(dst *core.Screen, snap *Snapshot) {
	top := dst.Height()/2 - 5
	dst.DrawTextCentered(top, MenuTitle, core.ColorBrightGreen)
	dst.DrawTextCentered(top+1, fmt.Sprintf("High score: %d", snap.HighScore), core.ColorBrightYellow)

	for i, lvl := range g.cfg.Levels {
		n := i + 1
		line := "  " + LevelLabel(n, lvl) + "  "
		c := core.ColorWhite
		if n == snap.Level {
			line = "> " + line[2:len(line)-2] + " <"
			c = core.ColorBrightYellow
		}
		dst.DrawTextCentered(top+3+i, line, c)
	}

	dst.DrawTextCentered(top+4+len(g.cfg.Levels), MenuHelp, core.ColorGray)
}

// LevelLabel describes a level for the picker, e.g. "2. Swarm      (wander, aliens fire)".
func LevelLabel(n int, lvl config.LevelConfig) string {
	desc := fmt.Sprintf("(%s)", lvl.Policy)
	if lvl.FireChance > 0 {
		desc = fmt.Sprintf("(%s, aliens fire)", lvl.Policy)
	}
	return fmt.Sprintf("%d. %-10s %s", n, lvl.Name, desc)
}

// drawBanner draws a boxed message in the middle of the screen.
func drawBanner(dst *core.Screen, msg string, c core.Color) {
	w := len([]rune(msg)) + 4
	if w > dst.Width() {
		w = dst.Width()
	}
	x := (dst.Width() - w) / 2
	y := dst.Height()/2 - 1
	box := core.NewRect(x, y, w, 3)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(y+1, msg, c)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Terminal too small"
	dst.DrawTextCentered(dst.Height()/2, msg, core.ColorBrightRed)
}

// viewport maps playfield units onto a grid of terminal cells.
type viewport struct {
	field      core.Rect
	cols, rows int
}

func newViewport(field core.Rect, cols, rows int) viewport {
	return viewport{field: field, cols: cols, rows: rows}
}

// point maps a playfield coordinate to the cell containing it.
func (v viewport) point(x, y int) (int, int) {
	cx := (x - v.field.X) * v.cols / max(v.field.W, 1)
	cy := (y - v.field.Y) * v.rows / max(v.field.H, 1)
	return cx, cy
}

// rect maps a playfield box to the cells it covers, at least one cell,
// shifted down by offsetY rows.
func (v viewport) rect(r core.Rect, offsetY int) core.Rect {
	x0, y0 := v.point(r.X, r.Y)
	x1 := ceilDiv((r.Right()-v.field.X)*v.cols, max(v.field.W, 1))
	y1 := ceilDiv((r.Bottom()-v.field.Y)*v.rows, max(v.field.H, 1))
	w := max(x1-x0, 1)
	h := max(y1-y0, 1)
	return core.NewRect(x0, y0+offsetY, w, h)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}
