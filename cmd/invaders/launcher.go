package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
)

// runLauncher shows the launcher menu and returns to it after each game
// or scoreboard visit.
func runLauncher(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	title := invaders.New().Title()

	for {
		var high uint64
		if store != nil {
			if v, err := store.LoadHighScore(invaders.GameID); err == nil {
				high = v
			}
		}

		result, err := tui.RunMenu(title, high, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch result.Choice {
		case tui.ChoicePlay:
			// A fresh seed for every game unless one was pinned
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := playTerminal(store, cfg, logger); err != nil {
				logger.Error("game failed", "error", err)
				return err
			}

		case tui.ChoiceScores:
			var source tui.RunSource
			if store != nil {
				source = store
			}
			if err := tui.RunScoreboard(source, invaders.GameID, title, cfg.ScreenW, cfg.ScreenH); err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}

		default:
			return nil
		}
	}
}
