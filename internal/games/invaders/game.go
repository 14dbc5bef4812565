// Package invaders implements the Alien Invasion simulation: the entity
// model, per-level hostile movement, collision resolution, timed effects
// and the menu/active/game-over state machine. It renders into a
// core.Screen and exposes a read-only Snapshot for pixel front-ends.
package invaders

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// GameID is the registry and storage identifier of the game.
const GameID = "invaders"

// Mode is the top-level state of a session.
type Mode int

const (
	ModeMenu Mode = iota
	ModeActive
	ModeGameOver
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeActive:
		return "active"
	case ModeGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// startLevel stores the menu's initial level set via CLI
var startLevel = 1

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetStartLevel sets the level preselected in the menu.
// Levels outside the valid range are ignored.
func SetStartLevel(level int) {
	if config.ValidLevel(level) {
		startLevel = level
	}
}

func init() {
	registry.Register(GameID, func() registry.Game { return New() })
}

// Game is one Alien Invasion session.
type Game struct {
	mode   Mode
	level  int // Selected level, 1-based
	paused bool
	quit   bool

	ship           *Ship
	bullets        []*Bullet
	hostileBullets []*Bullet
	fleet          *Fleet
	explosions     []*Explosion
	powerUps       []*PowerUp
	stars          []*Star

	powerUp TimedEffect

	score         int
	highScore     int
	persistedHigh int
	shipsLeft     int
	tick          uint64

	clock *core.SimClock
	rng   *core.RNG // Gameplay randomness: fleet layout, carriers, firing
	fxRNG *core.RNG // Decorative randomness: stars

	runtime core.RuntimeConfig
	cfg     config.InvadersConfig
	field   core.Rect
	fixed   bool // cfg was injected and must not be reloaded

	sound  core.SoundPlayer
	scores core.HighScoreStore
	runs   core.RunRecorder
	sleep  core.Sleeper
	log    *log.Logger
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	g := &Game{level: startLevel}
	g.Attach(core.Services{})
	return g
}

// NewWithConfig creates a game that uses cfg as-is instead of loading one.
func NewWithConfig(cfg config.InvadersConfig) *Game {
	g := New()
	g.cfg = cfg
	g.fixed = true
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Alien Invasion"
}

// Attach wires the external collaborators. Nil members fall back to
// silent defaults; the sleeper defaults to time.Sleep.
func (g *Game) Attach(svc core.Services) {
	g.sound = svc.Sound
	if g.sound == nil {
		g.sound = core.NopSound{}
	}
	g.scores = svc.Scores
	g.runs = svc.Runs
	g.sleep = svc.Sleep
	if g.sleep == nil {
		g.sleep = time.Sleep
	}
	g.log = svc.Logger
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
}

// Reset starts a fresh session in the menu. The stored high score is
// loaded; any unsaved high score of the previous session is saved first.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.highScore > g.persistedHigh {
		g.persistHighScore()
	}

	g.runtime = runtime
	if !g.fixed {
		cfg, err := config.LoadInvaders(configPath)
		if err != nil {
			g.log.Warn("using default config", "error", err)
			cfg = config.DefaultInvadersConfig()
		}
		g.cfg = cfg
	}
	g.field = core.NewRect(0, 0, g.cfg.Playfield.Width, g.cfg.Playfield.Height)

	g.clock = core.NewSimClock(runtime.TickDuration())
	g.rng = core.NewRNG(runtime.Seed)
	g.fxRNG = core.NewRNG(runtime.Seed ^ 0x5eed)
	g.tick = 0

	g.mode = ModeMenu
	g.paused = false
	g.quit = false
	if !config.ValidLevel(g.level) {
		g.level = 1
	}

	g.ship = newShip(g.cfg.Ship, g.field)
	g.fleet = NewFleet(g.levelConfig(), g.cfg.Hostiles, g.field)
	g.bullets = nil
	g.hostileBullets = nil
	g.explosions = nil
	g.powerUps = nil
	g.powerUp = TimedEffect{Duration: g.cfg.PowerUp.Duration()}

	g.stars = make([]*Star, 0, g.cfg.Stars.Count)
	for range g.cfg.Stars.Count {
		g.stars = append(g.stars, newStar(g.fxRNG, g.cfg.Stars, g.field))
	}

	g.score = 0
	g.shipsLeft = g.cfg.Ship.Lives
	g.highScore = 0
	g.persistedHigh = 0
	if g.scores != nil {
		stored, err := g.scores.LoadHighScore(GameID)
		if err != nil {
			g.log.Warn("failed to load high score", "error", err)
		} else {
			g.highScore = clampScore(stored)
			g.persistedHigh = g.highScore
		}
	}
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.quit {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionQuit) {
		g.doQuit()
		return core.StepResult{State: g.State()}
	}

	switch g.mode {
	case ModeMenu:
		g.stepMenu(in)
	case ModeActive:
		g.stepActive(in)
	case ModeGameOver:
		g.stepGameOver(in)
	}

	if g.score > g.highScore {
		g.highScore = g.score
	}

	return core.StepResult{State: g.State()}
}

// stepMenu handles level selection and the start transition.
func (g *Game) stepMenu(in core.InputFrame) {
	if in.Has(core.ActionUp) {
		g.level = core.Clamp(g.level+1, 1, config.LevelCount)
	}
	if in.Has(core.ActionDown) {
		g.level = core.Clamp(g.level-1, 1, config.LevelCount)
	}
	if in.Has(core.ActionConfirm) {
		g.start()
		return
	}

	g.advanceClock()
	g.updateStars()
}

// start moves from the menu into play on the selected level.
func (g *Game) start() {
	g.fleet = NewFleet(g.levelConfig(), g.cfg.Hostiles, g.field)
	g.clearAll()
	g.fleet.Spawn(g.rng)
	g.ship.stop()
	g.ship.moveToMidBottom(g.field)
	g.ship.Shown = true
	g.score = 0
	g.shipsLeft = g.cfg.Ship.Lives
	g.mode = ModeActive
	g.log.Info("session started", "level", g.level)
}

// stepActive runs one simulation tick of live play.
func (g *Game) stepActive(in core.InputFrame) {
	g.ship.applyIntents(in)

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	g.advanceClock()
	g.expireEffects()

	if in.Has(core.ActionFire) {
		g.fire()
	}

	g.ship.update(g.cfg.Ship.Speed, g.field)
	for _, b := range g.bullets {
		b.update()
	}
	for _, b := range g.hostileBullets {
		b.update()
	}
	g.fleet.Update()
	g.hostilesFire()
	for _, p := range g.powerUps {
		p.update()
	}
	g.updateExplosions()
	g.updateStars()

	cullOffscreen(g.bullets, g.field)
	cullOffscreen(g.hostileBullets, g.field)
	cullOffscreen(g.powerUps, g.field)

	g.resolveCollisions()
	g.purge()

	if g.mode == ModeActive && g.fleet.Live() == 0 {
		g.nextWave()
	}
}

// stepGameOver keeps the cosmetic layers alive until the player resets.
func (g *Game) stepGameOver(in core.InputFrame) {
	g.ship.applyIntents(in)
	if in.Has(core.ActionRestart) {
		g.restart()
		return
	}

	g.advanceClock()
	g.updateExplosions()
	g.updateStars()
	g.purge()
}

// restart is the GameOver -> Active transition. The high score is saved
// before anything else changes.
func (g *Game) restart() {
	g.persistHighScore()
	g.clearAll()
	g.fleet = NewFleet(g.levelConfig(), g.cfg.Hostiles, g.field)
	g.fleet.Spawn(g.rng)
	g.ship.stop()
	g.ship.center(g.field, g.clock.Now())
	g.powerUp.Cancel()
	g.score = 0
	g.shipsLeft = g.cfg.Ship.Lives
	g.mode = ModeActive
	g.log.Info("session reset", "level", g.level)
}

// nextWave replaces a destroyed fleet with a fresh one.
func (g *Game) nextWave() {
	g.bullets = g.bullets[:0]
	g.fleet.Spawn(g.rng)
	g.log.Debug("wave cleared", "tick", g.tick, "score", g.score)
}

// enterGameOver is the AllShipsLost transition.
func (g *Game) enterGameOver() {
	g.mode = ModeGameOver
	g.paused = false
	if g.score > g.highScore {
		g.highScore = g.score
	}
	g.recordRun()
	if g.highScore > g.persistedHigh {
		g.persistHighScore()
	}
	g.log.Info("game over", "score", g.score, "level", g.level)
}

// doQuit saves an unsaved high score synchronously and marks the session
// as finished. Valid in every mode.
func (g *Game) doQuit() {
	if g.score > g.highScore {
		g.highScore = g.score
	}
	if g.mode == ModeActive && g.score > 0 {
		g.recordRun()
	}
	if g.highScore > g.persistedHigh {
		g.persistHighScore()
	}
	g.quit = true
}

// fire launches a player bullet if fewer than the allowed number are live.
func (g *Game) fire() {
	live := 0
	for _, b := range g.bullets {
		if b.Alive {
			live++
		}
	}
	if live >= g.cfg.Bullets.Allowed {
		return
	}
	g.bullets = append(g.bullets, newPlayerBullet(g.ship, g.cfg.Bullets.Speed, g.BulletWidth(), g.cfg.Bullets.Height))
	g.sound.Play(core.SoundShoot)
}

// hostilesFire lets at most one hostile shoot at the ship this tick.
func (g *Game) hostilesFire() {
	shooter := g.fleet.PickShooter(g.rng, g.levelConfig().FireChance)
	if shooter == nil {
		return
	}
	hc := g.cfg.Hostiles
	g.hostileBullets = append(g.hostileBullets,
		newHostileBullet(shooter, g.ship.Center(), hc.BulletSpeed, hc.BulletWidth, hc.BulletHeight))
}

func (g *Game) updateExplosions() {
	now := g.clock.Now()
	for _, e := range g.explosions {
		e.update(now)
	}
}

func (g *Game) updateStars() {
	for _, s := range g.stars {
		s.update(g.fxRNG, g.field)
	}
}

func (g *Game) advanceClock() {
	g.clock.Advance()
	g.tick++
}

// purge removes dead entities from every collection. It only runs at the
// end of a tick so no pass ever iterates a collection being compacted.
func (g *Game) purge() {
	g.bullets = purgeDead(g.bullets)
	g.hostileBullets = purgeDead(g.hostileBullets)
	g.fleet.purge()
	g.explosions = purgeDead(g.explosions)
	g.powerUps = purgeDead(g.powerUps)
}

// clearAll empties every entity collection except the background.
func (g *Game) clearAll() {
	g.clearCombatants()
	g.explosions = g.explosions[:0]
}

func (g *Game) persistHighScore() {
	if g.scores == nil {
		return
	}
	if g.highScore < 0 {
		return
	}
	if err := g.scores.PersistHighScore(GameID, uint64(g.highScore)); err != nil {
		// A failed save never blocks the transition in progress
		g.log.Warn("failed to persist high score", "error", err, "value", g.highScore)
		return
	}
	g.persistedHigh = g.highScore
}

func (g *Game) recordRun() {
	if g.runs == nil {
		return
	}
	if err := g.runs.RecordRun(GameID, g.level, uint64(g.score)); err != nil { //#nosec G115 -- score is never negative
		g.log.Warn("failed to record run", "error", err)
	}
}

func (g *Game) levelConfig() config.LevelConfig {
	lvl, err := g.cfg.Level(g.level)
	if err != nil {
		return config.DefaultInvadersConfig().Levels[0]
	}
	return lvl
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Lives:     g.shipsLeft,
		Level:     g.level,
		GameOver:  g.mode == ModeGameOver,
		Paused:    g.paused,
		Quit:      g.quit,
	}
}

// Mode returns the current top-level state.
func (g *Game) Mode() Mode {
	return g.mode
}

// Level returns the selected level.
func (g *Game) Level() int {
	return g.level
}

// Config returns the configuration in use.
func (g *Game) Config() config.InvadersConfig {
	return g.cfg
}

// Now returns the simulation time.
func (g *Game) Now() time.Duration {
	return g.clock.Now()
}

func clampScore(v uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if v > uint64(maxInt) {
		return maxInt
	}
	return int(v)
}
