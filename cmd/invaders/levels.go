package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long:  `Shows the levels from the active configuration and the difficulty presets that select them.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	printLevels(os.Stdout, cfg)
	return nil
}

// printLevels writes one line per level.
func printLevels(w io.Writer, cfg config.InvadersConfig) {
	fmt.Fprintln(w, "Levels:")
	fmt.Fprintln(w)
	for i, lvl := range cfg.Levels {
		fmt.Fprintf(w, "  %s\n", invaders.LevelLabel(i+1, lvl))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Presets:")
	for _, p := range []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard} {
		level, _ := config.LevelForPreset(p)
		fmt.Fprintf(w, "  %-7s level %d\n", p, level)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'invaders play --level <n>' to preselect a level.")
}
