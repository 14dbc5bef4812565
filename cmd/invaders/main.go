// invaders is an arcade shooter that runs in the terminal, in a desktop
// window, or over SSH.
//
// Usage:
//
//	invaders                 - Launcher menu (play, high scores, quit)
//	invaders play            - Play in the terminal
//	invaders gui             - Play in a desktop window
//	invaders serve           - Start SSH server for remote play
//	invaders scores          - Show recorded runs
//	invaders levels          - List the levels
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.invaders/scores.db)
//	--config <path>       - Custom game config YAML
//	--level <n>           - Level preselected in the game menu
//	--difficulty <preset> - easy, normal or hard (sets the level)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevel      int
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Alien Invasion - shoot down the fleet before it lands",
	Long: `Alien Invasion is an arcade shooter. Steer your ship, shoot the
alien fleet and survive as long as you can.

Without a subcommand the launcher menu opens.

Available commands:
  play     - Play in the terminal
  gui      - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  levels   - Show the levels

Examples:
  invaders
  invaders play --level 2
  invaders gui --sprites ./assets
  invaders serve --ssh :2222
  invaders scores`,
	SilenceUsage:      true,
	PersistentPreRunE: applyGameFlags,
	RunE:              runLauncher,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().IntVar(&flagLevel, "level", 0, "Level preselected in the game menu (1-3)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// applyGameFlags hands the config path and start level to the game
// package before any session is created.
func applyGameFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	invaders.SetConfigPath(flagConfig)

	if flagDifficulty != "" {
		level, err := config.LevelForPreset(config.DifficultyPreset(flagDifficulty))
		if err != nil {
			return err
		}
		invaders.SetStartLevel(level)
	}

	if flagLevel != 0 {
		if !config.ValidLevel(flagLevel) {
			return fmt.Errorf("%w: %d", config.ErrInvalidLevel, flagLevel)
		}
		invaders.SetStartLevel(flagLevel)
	}
	return nil
}
