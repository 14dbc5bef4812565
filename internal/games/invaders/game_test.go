package invaders

import (
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/core/mocks"
)

// testRuntime ticks at 100 Hz so every tick is exactly 10ms.
var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 100,
	Seed:     7,
}

func testConfig() config.InvadersConfig {
	cfg := config.DefaultInvadersConfig()
	cfg.Stars.Count = 8
	return cfg
}

// newTestGame creates a game in the menu with the given level selected.
// The respawn pause is replaced by a no-op unless svc sets one.
func newTestGame(t *testing.T, level int, svc core.Services) *Game {
	t.Helper()
	if svc.Sleep == nil {
		svc.Sleep = func(time.Duration) {}
	}
	g := NewWithConfig(testConfig())
	g.level = level
	g.Attach(svc)
	g.Reset(testRuntime)
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// startedGame returns a game already in the Active mode.
func startedGame(t *testing.T, level int, svc core.Services) *Game {
	t.Helper()
	g := newTestGame(t, level, svc)
	g.Step(press(core.ActionConfirm))
	if g.Mode() != ModeActive {
		t.Fatalf("Confirm should start the game, mode = %s", g.Mode())
	}
	return g
}

func countCarriers(hostiles []*Hostile) int {
	n := 0
	for _, h := range hostiles {
		if h.CarriesPowerUp {
			n++
		}
	}
	return n
}

func TestMenuLevelSelection(t *testing.T) {
	g := newTestGame(t, 1, core.Services{})

	if g.Mode() != ModeMenu {
		t.Fatalf("New session should start in the menu, got %s", g.Mode())
	}

	g.Step(press(core.ActionDown))
	if g.Level() != 1 {
		t.Errorf("Level should clamp at 1, got %d", g.Level())
	}

	for range 5 {
		g.Step(press(core.ActionUp))
	}
	if g.Level() != config.LevelCount {
		t.Errorf("Level should clamp at %d, got %d", config.LevelCount, g.Level())
	}

	g.Step(press(core.ActionDown))
	if g.Level() != 2 {
		t.Errorf("Down should lower the level to 2, got %d", g.Level())
	}

	// Meaningless intents in the menu are ignored
	g.Step(press(core.ActionFire, core.ActionRestart, core.ActionPause))
	if g.Mode() != ModeMenu || len(g.bullets) != 0 || g.paused {
		t.Error("Fire, Restart and Pause should be ignored in the menu")
	}
}

func TestStartSpawnsFleet(t *testing.T) {
	for _, level := range []int{1, 2, 3} {
		g := startedGame(t, level, core.Services{})

		if got := len(g.fleet.Hostiles); got != 20 {
			t.Errorf("level %d: fleet size = %d, expected 20", level, got)
		}
		if got := countCarriers(g.fleet.Hostiles); got != 1 {
			t.Errorf("level %d: carriers = %d, expected exactly 1", level, got)
		}

		want := config.PolicyFormation
		if level > 1 {
			want = config.PolicyWander
		}
		for _, h := range g.fleet.Hostiles {
			if h.Policy != want {
				t.Fatalf("level %d: hostile policy = %s, expected %s", level, h.Policy, want)
			}
		}

		if g.ship.Invulnerable() {
			t.Errorf("level %d: ship should not be invulnerable on start", level)
		}
		if g.State().Lives != 3 || g.State().Score != 0 {
			t.Errorf("level %d: unexpected start state %+v", level, g.State())
		}
		midX := float64((g.field.W - g.ship.W) / 2)
		if g.ship.Pos.X != midX || g.ship.Bounds().Bottom() != g.field.Bottom() {
			t.Errorf("level %d: ship should start at mid-bottom, got %+v", level, g.ship.Pos)
		}
	}
}

func TestFireLimitAndShootSound(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().Play(core.SoundShoot).Times(5)

	g := startedGame(t, 1, core.Services{Sound: sound})

	for range 7 {
		g.Step(press(core.ActionFire))
	}

	if len(g.bullets) != g.cfg.Bullets.Allowed {
		t.Errorf("live bullets = %d, expected the limit of %d", len(g.bullets), g.cfg.Bullets.Allowed)
	}
}

func TestFireWhilePaused(t *testing.T) {
	g := startedGame(t, 1, core.Services{})

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionFire))

	if len(g.bullets) != 0 {
		t.Errorf("Fire should be ignored while paused, got %d bullets", len(g.bullets))
	}
}

// placeBullet puts a motionless player bullet over a hostile.
func placeBullet(g *Game, h *Hostile) {
	g.bullets = append(g.bullets, &Bullet{
		Body: Body{Pos: h.Pos, W: 3, H: 15, Alive: true},
	})
}

func TestBulletDestroysHostile(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().Play(core.SoundExplosion).Times(1)

	g := startedGame(t, 1, core.Services{Sound: sound})

	target := g.fleet.Hostiles[0]
	for _, h := range g.fleet.Hostiles {
		h.CarriesPowerUp = false
	}
	placeBullet(g, target)

	g.Step(idle())

	if g.State().Score != g.cfg.Hostiles.Points {
		t.Errorf("Score = %d, expected %d", g.State().Score, g.cfg.Hostiles.Points)
	}
	if len(g.bullets) != 0 {
		t.Errorf("Bullet should be purged, %d left", len(g.bullets))
	}
	for _, h := range g.fleet.Hostiles {
		if h == target || !h.Alive {
			t.Fatal("Destroyed hostile should not survive into the next tick")
		}
	}
	if len(g.fleet.Hostiles) != 19 {
		t.Errorf("Fleet should shrink to 19, got %d", len(g.fleet.Hostiles))
	}
	if len(g.explosions) != 1 {
		t.Errorf("Expected one explosion, got %d", len(g.explosions))
	}
	if len(g.powerUps) != 0 {
		t.Errorf("Non-carrier should not drop a power-up, got %d", len(g.powerUps))
	}
}

func TestMultipleKillsPlayOneSound(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().Play(core.SoundExplosion).Times(1)

	g := startedGame(t, 1, core.Services{Sound: sound})

	placeBullet(g, g.fleet.Hostiles[0])
	placeBullet(g, g.fleet.Hostiles[1])
	g.Step(idle())

	if g.State().Score != 2*g.cfg.Hostiles.Points {
		t.Errorf("Score = %d, expected %d", g.State().Score, 2*g.cfg.Hostiles.Points)
	}
	if len(g.explosions) != 2 {
		t.Errorf("Expected two explosions, got %d", len(g.explosions))
	}
}

func TestCarrierDropsPowerUp(t *testing.T) {
	g := startedGame(t, 1, core.Services{})

	target := g.fleet.Hostiles[3]
	for _, h := range g.fleet.Hostiles {
		h.CarriesPowerUp = h == target
	}
	placeBullet(g, target)
	g.Step(idle())

	if len(g.powerUps) != 1 {
		t.Fatalf("Carrier should drop one power-up, got %d", len(g.powerUps))
	}
	p := g.powerUps[0]
	if p.W != g.cfg.PowerUp.Width || p.Vel.Y != g.cfg.PowerUp.FallSpeed {
		t.Errorf("Unexpected power-up %+v", p)
	}
}

func TestHitResponseRespawns(t *testing.T) {
	var slept []time.Duration
	g := startedGame(t, 1, core.Services{Sleep: func(d time.Duration) { slept = append(slept, d) }})

	g.bullets = append(g.bullets, &Bullet{Body: Body{Pos: core.Vec{X: 10, Y: 10}, W: 3, H: 15, Alive: true}})
	g.hostileBullets = append(g.hostileBullets, &Bullet{Body: Body{Pos: g.ship.Pos, W: 3, H: 15, Alive: true}})
	g.fleet.Hostiles = g.fleet.Hostiles[:5]

	g.Step(idle())

	if g.State().Lives != 2 {
		t.Errorf("Lives = %d, expected 2", g.State().Lives)
	}
	if g.Mode() != ModeActive {
		t.Errorf("Mode = %s, expected active", g.Mode())
	}
	if len(g.fleet.Hostiles) != 20 {
		t.Errorf("Fleet should be respawned, got %d hostiles", len(g.fleet.Hostiles))
	}
	if len(g.bullets) != 0 || len(g.hostileBullets) != 0 || len(g.powerUps) != 0 {
		t.Error("Combat collections should be cleared on respawn")
	}
	if len(g.explosions) != 1 {
		t.Errorf("Ship explosion should remain, got %d explosions", len(g.explosions))
	}
	if !g.ship.Invulnerable() || g.ship.InvulnerableSince() != g.Now() {
		t.Error("Ship should become invulnerable at the hit")
	}
	if len(slept) != 1 || slept[0] != g.cfg.Ship.RespawnDelay() {
		t.Errorf("Expected one respawn pause of %v, got %v", g.cfg.Ship.RespawnDelay(), slept)
	}

	// The pause never advances simulation time
	if g.Now() != time.Duration(g.tick)*testRuntime.TickDuration() {
		t.Errorf("Clock drifted: now=%v tick=%d", g.Now(), g.tick)
	}
}

func TestLandingFleetCostsLife(t *testing.T) {
	g := startedGame(t, 1, core.Services{})

	// Drop the whole formation onto the bottom edge, clear of the ship
	for _, h := range g.fleet.Hostiles {
		h.Pos.Y = float64(g.field.Bottom() - h.H)
	}
	for _, h := range g.fleet.Hostiles[1:] {
		h.Alive = false
	}
	g.fleet.Hostiles[0].Pos.X = 0

	g.Step(idle())

	if g.State().Lives != 2 {
		t.Errorf("Lives = %d, expected 2", g.State().Lives)
	}
	if g.Mode() != ModeActive {
		t.Errorf("Mode = %s, expected active", g.Mode())
	}
	if len(g.fleet.Hostiles) != 20 || g.fleet.Landed() {
		t.Errorf("Fleet should be respawned at the top, got %d hostiles", len(g.fleet.Hostiles))
	}
}

func TestInvulnerabilitySuppressesDamage(t *testing.T) {
	g := startedGame(t, 1, core.Services{})
	g.ship.center(g.field, g.Now())

	g.fleet.Hostiles[0].Pos = g.ship.Pos
	g.hostileBullets = append(g.hostileBullets, &Bullet{Body: Body{Pos: g.ship.Pos, W: 3, H: 15, Alive: true}})
	g.Step(idle())

	if g.State().Lives != 3 {
		t.Errorf("Invulnerable ship should not lose a life, lives = %d", g.State().Lives)
	}
	if len(g.hostileBullets) != 0 {
		t.Error("Hostile bullet should be absorbed by the invulnerable ship")
	}
}

func TestLastShipLostScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	runs := mocks.NewMockRunRecorder(ctrl)

	store.EXPECT().LoadHighScore(GameID).Return(uint64(100), nil)
	gomock.InOrder(
		runs.EXPECT().RecordRun(GameID, 1, uint64(150)).Return(nil),
		store.EXPECT().PersistHighScore(GameID, uint64(150)).Return(nil),
	)

	g := startedGame(t, 1, core.Services{Scores: store, Runs: runs})
	g.shipsLeft = 1
	g.score = 150
	g.fleet.Hostiles[0].Pos = g.ship.Pos

	g.Step(idle())

	state := g.State()
	if state.Lives != 0 || !state.GameOver || g.Mode() != ModeGameOver {
		t.Errorf("Expected game over with no ships, got %+v", state)
	}
	if state.HighScore != 150 {
		t.Errorf("High score = %d, expected 150", state.HighScore)
	}
	snap := g.Snapshot()
	if snap.Ship.Visible {
		t.Error("Ship should be invisible after the last life")
	}

	// Nothing but cosmetics moves after game over
	hostiles := len(g.fleet.Hostiles)
	g.Step(press(core.ActionFire))
	if len(g.bullets) != 0 || len(g.fleet.Hostiles) != hostiles {
		t.Error("Fire should be ignored in game over")
	}
}

func TestResetFromGameOverScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	store.EXPECT().LoadHighScore(GameID).Return(uint64(0), nil)
	// Score 0 never beats the stored value, so only the reset saves
	store.EXPECT().PersistHighScore(GameID, uint64(0)).Return(nil).Times(1)

	g := startedGame(t, 2, core.Services{Scores: store})
	g.shipsLeft = 1
	g.fleet.Hostiles[0].Pos = g.ship.Pos
	g.powerUps = append(g.powerUps, newPowerUp(core.Vec{X: 600, Y: 100}, g.cfg.PowerUp))
	g.Step(idle())
	if g.Mode() != ModeGameOver {
		t.Fatalf("Expected game over, got %s", g.Mode())
	}

	g.Step(press(core.ActionRestart))

	if g.Mode() != ModeActive {
		t.Fatalf("Restart should return to active, got %s", g.Mode())
	}
	if len(g.bullets) != 0 || len(g.hostileBullets) != 0 || len(g.powerUps) != 0 || len(g.explosions) != 0 {
		t.Error("Restart should clear every entity collection")
	}
	if g.State().Lives != g.cfg.Ship.Lives || g.State().Score != 0 {
		t.Errorf("Restart should restore lives and score, got %+v", g.State())
	}
	if len(g.fleet.Hostiles) != 20 || countCarriers(g.fleet.Hostiles) != 1 {
		t.Errorf("Expected a fresh fleet of 20 with one carrier, got %d with %d carriers",
			len(g.fleet.Hostiles), countCarriers(g.fleet.Hostiles))
	}
	for _, h := range g.fleet.Hostiles {
		if h.Policy != config.PolicyWander || h.Vel.X == 0 || h.Vel.Y == 0 {
			t.Fatalf("Level 2 hostiles should wander, got %+v", h)
		}
	}
	if !g.ship.Invulnerable() {
		t.Error("Ship should be recentered with invulnerability")
	}
}

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	store.EXPECT().LoadHighScore(GameID).Return(uint64(0), errors.New("disk gone"))
	store.EXPECT().PersistHighScore(GameID, gomock.Any()).Return(errors.New("disk gone")).AnyTimes()

	g := startedGame(t, 1, core.Services{Scores: store})
	g.shipsLeft = 1
	g.score = 50
	g.fleet.Hostiles[0].Pos = g.ship.Pos
	g.Step(idle())
	g.Step(press(core.ActionRestart))

	if g.Mode() != ModeActive {
		t.Errorf("Failed save should not block the reset, mode = %s", g.Mode())
	}

	g.Step(press(core.ActionQuit))
	if !g.State().Quit {
		t.Error("Failed save should not block quitting")
	}
}

func TestQuitInEveryMode(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
	}{
		{"menu", func(g *Game) {}},
		{"active", func(g *Game) { g.Step(press(core.ActionConfirm)) }},
		{"paused", func(g *Game) {
			g.Step(press(core.ActionConfirm))
			g.Step(press(core.ActionPause))
		}},
		{"gameover", func(g *Game) {
			g.Step(press(core.ActionConfirm))
			g.shipsLeft = 1
			g.fleet.Hostiles[0].Pos = g.ship.Pos
			g.Step(idle())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockHighScoreStore(ctrl)
			store.EXPECT().LoadHighScore(GameID).Return(uint64(40), nil)
			// The loaded 40 is never beaten, so nothing is saved

			g := newTestGame(t, 1, core.Services{Scores: store})
			tt.setup(g)

			result := g.Step(press(core.ActionQuit))
			if !result.State.Quit {
				t.Error("Quit should be reported in the step result")
			}

			// Further steps are inert
			before := g.Snapshot()
			g.Step(press(core.ActionQuit, core.ActionFire))
			after := g.Snapshot()
			if before.Hash() != after.Hash() {
				t.Error("A quit session should not advance")
			}
		})
	}
}

func TestQuitSavesNewHighScore(t *testing.T) {
	tests := []struct {
		name   string
		paused bool
	}{
		{"active", false},
		{"paused", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockHighScoreStore(ctrl)
			store.EXPECT().LoadHighScore(GameID).Return(uint64(40), nil)
			store.EXPECT().PersistHighScore(GameID, uint64(90)).Return(nil).Times(1)

			g := startedGame(t, 1, core.Services{Scores: store})
			g.score = 90
			if tt.paused {
				g.Step(press(core.ActionPause))
			}

			g.Step(press(core.ActionQuit))
			if !g.State().Quit || g.State().HighScore != 90 {
				t.Errorf("Unexpected state after quit: %+v", g.State())
			}
			g.Step(press(core.ActionQuit))
		})
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := startedGame(t, 1, core.Services{})
	g.Step(idle())

	now := g.Now()
	pos := g.fleet.Hostiles[0].Pos

	g.Step(press(core.ActionPause))
	for range 10 {
		g.Step(idle())
	}
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}
	if g.Now() != now || g.fleet.Hostiles[0].Pos != pos {
		t.Error("Nothing should advance while paused")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused || g.Now() == now {
		t.Error("Second pause should resume the simulation")
	}
}

func TestPowerUpWidthTiming(t *testing.T) {
	g := startedGame(t, 1, core.Services{})
	g.powerUps = append(g.powerUps, newPowerUp(g.ship.Center(), g.cfg.PowerUp))

	g.Step(idle())
	pickedAt := g.Now()

	if len(g.powerUps) != 0 {
		t.Error("Power-up should be consumed on pickup")
	}
	if g.BulletWidth() != g.cfg.Bullets.PoweredWidth {
		t.Fatalf("Bullet width = %d, expected %d", g.BulletWidth(), g.cfg.Bullets.PoweredWidth)
	}

	g.Step(press(core.ActionFire))
	if w := g.bullets[len(g.bullets)-1].W; w != g.cfg.Bullets.PoweredWidth {
		t.Errorf("Bullet fired while powered has width %d, expected %d", w, g.cfg.Bullets.PoweredWidth)
	}

	for g.Now()-pickedAt < g.cfg.PowerUp.Duration()-testRuntime.TickDuration() {
		g.Step(idle())
	}
	if g.BulletWidth() != g.cfg.Bullets.PoweredWidth {
		t.Errorf("Power-up ended early at %v", g.Now()-pickedAt)
	}

	g.Step(idle())
	if g.Now()-pickedAt != g.cfg.PowerUp.Duration() {
		t.Fatalf("Expected to be exactly at expiry, elapsed %v", g.Now()-pickedAt)
	}
	if g.BulletWidth() != g.cfg.Bullets.Width {
		t.Errorf("Bullet width should revert to %d at expiry, got %d", g.cfg.Bullets.Width, g.BulletWidth())
	}
}

func TestPowerUpPickupRestartsTimer(t *testing.T) {
	g := startedGame(t, 1, core.Services{})

	g.powerUps = append(g.powerUps, newPowerUp(g.ship.Center(), g.cfg.PowerUp))
	g.Step(idle())
	for range 100 {
		g.Step(idle())
	}

	g.powerUps = append(g.powerUps, newPowerUp(g.ship.Center(), g.cfg.PowerUp))
	g.Step(idle())
	second := g.Now()

	if g.powerUp.Start != second {
		t.Errorf("Second pickup should restart the timer at %v, got %v", second, g.powerUp.Start)
	}
	if g.BulletWidth() != g.cfg.Bullets.PoweredWidth {
		t.Errorf("Width should not stack, got %d", g.BulletWidth())
	}
}

func TestInvulnerabilityBlinkAndExpiry(t *testing.T) {
	g := startedGame(t, 1, core.Services{})
	start := g.Now()
	g.ship.center(g.field, start)

	blinkTicks := int(g.cfg.Ship.Blink() / testRuntime.TickDuration())
	invTicks := int(g.cfg.Ship.Invulnerability() / testRuntime.TickDuration())

	for n := 1; n <= invTicks; n++ {
		g.Step(idle())

		if n < invTicks {
			if !g.ship.Invulnerable() {
				t.Fatalf("Invulnerability cleared early at tick %d", n)
			}
			wantVisible := (n/blinkTicks)%2 == 0
			if got := g.Snapshot().Ship.Visible; got != wantVisible {
				t.Fatalf("tick %d (%v): visible = %v, expected %v", n, g.Now()-start, got, wantVisible)
			}
		}
	}

	if g.ship.Invulnerable() {
		t.Errorf("Invulnerability should clear at +%v", g.cfg.Ship.Invulnerability())
	}
	if !g.Snapshot().Ship.Visible {
		t.Error("Ship should be visible once invulnerability ends")
	}
}

func TestOffscreenCulling(t *testing.T) {
	g := startedGame(t, 1, core.Services{})

	g.bullets = append(g.bullets, &Bullet{
		Body: Body{Pos: core.Vec{X: 1100, Y: 1}, W: 3, H: 15, Alive: true},
		Vel:  core.Vec{Y: -20},
	})
	g.hostileBullets = append(g.hostileBullets, &Bullet{
		Body: Body{Pos: core.Vec{X: 1199, Y: 500}, W: 3, H: 15, Alive: true},
		Vel:  core.Vec{X: 5},
	})
	g.powerUps = append(g.powerUps, &PowerUp{
		Body: Body{Pos: core.Vec{X: 20, Y: 799}, W: 30, H: 30, Alive: true},
		Vel:  core.Vec{Y: 1.5},
	})

	g.Step(idle())

	if len(g.bullets) != 0 || len(g.hostileBullets) != 0 || len(g.powerUps) != 0 {
		t.Errorf("Entities leaving the playfield should be removed: %d %d %d",
			len(g.bullets), len(g.hostileBullets), len(g.powerUps))
	}
}

func TestNextWaveWhenFleetDestroyed(t *testing.T) {
	g := startedGame(t, 1, core.Services{})

	for _, h := range g.fleet.Hostiles[1:] {
		h.Alive = false
	}
	placeBullet(g, g.fleet.Hostiles[0])
	g.Step(idle())

	if len(g.fleet.Hostiles) != 20 {
		t.Errorf("A destroyed fleet should be replaced, got %d hostiles", len(g.fleet.Hostiles))
	}
	if countCarriers(g.fleet.Hostiles) != 1 {
		t.Error("New wave should carry exactly one power-up")
	}
}

func TestHostilesFireAtShip(t *testing.T) {
	cfg := testConfig()
	cfg.Levels[1].FireChance = 1

	g := NewWithConfig(cfg)
	g.level = 2
	g.Attach(core.Services{Sleep: func(time.Duration) {}})
	g.Reset(testRuntime)
	g.Step(press(core.ActionConfirm))

	g.Step(idle())

	if len(g.hostileBullets) != 1 {
		t.Fatalf("Certain fire chance should produce one bullet per tick, got %d", len(g.hostileBullets))
	}
	b := g.hostileBullets[0]
	toShip := g.ship.Center().Sub(b.Center())
	cross := toShip.X*b.Vel.Y - toShip.Y*b.Vel.X
	if math.Abs(cross) > 1e-6*toShip.Len() || b.Vel.Y <= 0 {
		t.Errorf("Bullet velocity %+v should point at the ship", b.Vel)
	}
	if math.Abs(b.Vel.Len()-cfg.Hostiles.BulletSpeed) > 1e-9 {
		t.Errorf("Bullet speed = %f, expected %f", b.Vel.Len(), cfg.Hostiles.BulletSpeed)
	}
}

func TestLevelOneHostilesNeverFire(t *testing.T) {
	g := startedGame(t, 1, core.Services{})
	for range 500 {
		g.Step(idle())
	}
	if len(g.hostileBullets) != 0 {
		t.Errorf("Formation level should not fire, got %d bullets", len(g.hostileBullets))
	}
}

func TestInvariantsHoldDuringPlay(t *testing.T) {
	for _, level := range []int{1, 2, 3} {
		g := startedGame(t, level, core.Services{})
		inputs := core.NewRNG(int64(level) * 99)
		actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire}

		lastScore := 0
		for tick := range 3000 {
			in := core.NewInputFrame()
			a := actions[inputs.Intn(len(actions))]
			if inputs.Chance(0.5) {
				in.Set(a)
			} else if a.IsMovement() {
				in.Release(a)
			}
			if g.Mode() == ModeGameOver {
				in.Set(core.ActionRestart)
				lastScore = 0
			}

			state := g.Step(in).State

			if g.Mode() == ModeActive && state.Score < lastScore {
				t.Fatalf("level %d tick %d: score decreased %d -> %d", level, tick, lastScore, state.Score)
			}
			lastScore = state.Score
			if state.HighScore < state.Score {
				t.Fatalf("level %d tick %d: high score %d below score %d", level, tick, state.HighScore, state.Score)
			}

			sb := g.ship.Bounds()
			if sb.X < 0 || sb.Y < 0 || sb.Right() > g.field.Right() || sb.Bottom() > g.field.Bottom() {
				t.Fatalf("level %d tick %d: ship left the playfield: %+v", level, tick, sb)
			}
			checkFinite(t, g)
		}
	}
}

func checkFinite(t *testing.T, g *Game) {
	t.Helper()
	if !g.ship.Pos.IsFinite() {
		t.Fatalf("ship position not finite: %+v", g.ship.Pos)
	}
	for _, b := range g.bullets {
		if !b.Pos.IsFinite() || !b.Alive {
			t.Fatalf("bad player bullet %+v", b)
		}
	}
	for _, b := range g.hostileBullets {
		if !b.Pos.IsFinite() || !b.Alive {
			t.Fatalf("bad hostile bullet %+v", b)
		}
	}
	for _, h := range g.fleet.Hostiles {
		if !h.Pos.IsFinite() || !h.Alive {
			t.Fatalf("bad hostile %+v", h)
		}
	}
	for _, p := range g.powerUps {
		if !p.Pos.IsFinite() || !p.Alive {
			t.Fatalf("bad power-up %+v", p)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := startedGame(t, 3, core.Services{})
		for i := range 1500 {
			in := core.NewInputFrame()
			switch {
			case i%40 == 0:
				in.Set(core.ActionFire)
			case i%7 < 3:
				in.Set(core.ActionLeft)
				in.Release(core.ActionRight)
			default:
				in.Set(core.ActionRight)
				in.Release(core.ActionLeft)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: score %d/%d tick %d/%d", snap1.Score, snap2.Score, snap1.Tick, snap2.Tick)
	}
}

func TestResetReloadsHighScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	store.EXPECT().LoadHighScore(GameID).Return(uint64(0), nil)
	store.EXPECT().PersistHighScore(GameID, uint64(250)).Return(nil)
	store.EXPECT().LoadHighScore(GameID).Return(uint64(250), nil)

	g := startedGame(t, 1, core.Services{Scores: store})
	g.score = 250
	g.Step(idle())

	// Unsaved high score is flushed before the new session loads
	g.Reset(testRuntime)

	if g.Mode() != ModeMenu || g.State().HighScore != 250 || g.State().Score != 0 {
		t.Errorf("Unexpected state after Reset: %+v", g.State())
	}
}
