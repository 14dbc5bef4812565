package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal. The game opens on its level menu.

Controls:
  Arrows/WASD  - Steer the ship
  Space        - Fire
  Enter        - Start the selected level
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Examples:
  invaders play
  invaders play --difficulty hard
  invaders play --config ./my-invaders.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return playTerminal(store, runtimeConfig(), logger)
}

// playTerminal runs one terminal session against store.
func playTerminal(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	sound := openSound(logger)
	defer closeSound(sound)

	game, err := registry.Create(invaders.GameID, services(store, sound, logger))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	logger.Info("session started", "seed", cfg.Seed, "tick_rate", cfg.TickRate)

	if err := tui.Run(game, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	state := game.State()
	logger.Info("session ended", "score", state.Score, "high", state.HighScore)
	return nil
}

// openSound returns the speaker, or a silent player when muted.
func openSound(logger *log.Logger) core.SoundPlayer {
	if flagMute {
		return core.NopSound{}
	}
	return audio.Open(logger)
}

func closeSound(s core.SoundPlayer) {
	if c, ok := s.(interface{ Close() }); ok {
		c.Close()
	}
}
