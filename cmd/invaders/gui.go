package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/gui"
)

var flagSprites string

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window.

Sprites are read from <dir>/<name>.png where name is one of ship, bullet,
alien_bullet, alien, carrier, explosion and powerup. Missing images are
drawn as colored boxes.

Examples:
  invaders gui
  invaders gui --sprites ./assets --level 3`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	guiCmd.Flags().StringVar(&flagSprites, "sprites", "", "Directory with sprite images")
	guiCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runGUI(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sound := openSound(logger)
	defer closeSound(sound)

	game := invaders.New()
	game.Attach(services(store, sound, logger))

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}

	return gui.Run(game, cfg, flagSprites, logger)
}
