package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display the best runs and the high score.

On a terminal an interactive scoreboard opens; with --plain or when the
output is piped a text table is printed.

Examples:
  invaders scores
  invaders scores --plain --limit 5
  invaders scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text table instead of the scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(invaders.GameID); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	title := invaders.New().Title()
	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, invaders.GameID, title, cfg.ScreenW, cfg.ScreenH)
	}
	return printScores(os.Stdout, store, title, flagScoresLimit)
}

// printScores writes the best runs as a text table.
func printScores(w io.Writer, source tui.RunSource, title string, limit int) error {
	runs, err := source.TopRuns(invaders.GameID, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'invaders play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, run := range runs {
		fmt.Fprintf(w, "  %-4d  %-10d  %-5d  %s\n", i+1, run.Score, run.Level, run.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := source.GetGameStats(invaders.GameID); err == nil && stats != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d   Runs: %d\n", stats.HighScore, stats.RunsCount)
	}
	return nil
}
