package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/memory"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	flagLimit int
	flagReset bool
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best times and recent games",
	Long: `Display the fastest completed games and overall statistics.

On a terminal an interactive scoreboard opens; use --plain (or pipe the
output) for a text listing.

Examples:
  memory scores
  memory scores --plain --limit 5
  memory scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to list in plain mode")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all results and the best time")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Results and best time cleared.")
		return
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(store, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the fastest games and statistics to stdout.
func printScores(store *storage.Store, limit int) error {
	results, err := store.TopResults(limit)
	if err != nil {
		return err
	}

	fmt.Println("Memory - Best Times")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'memory play' to set the first best time!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %s\n", "Rank", "Time", "Moves", "Cards", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %s\n", "----", "----", "-----", "-----", "----")

	for i, r := range results {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6s  %-5d  %-5d  %s\n", i+1, memory.FormatTime(r.Seconds), r.Moves, r.TotalCards, dateStr)
	}

	// Show best time
	fmt.Println()
	if best, ok, err := store.BestStore().BestTime(); err == nil && ok {
		fmt.Printf("Best: %s\n", memory.FormatTime(best))
	}
	if stats, err := store.GetStats(); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d  Average: %s  Fewest moves: %d\n",
			stats.GamesCount, memory.FormatTime(int(stats.AvgTime+0.5)), stats.FewestMoves)
	}
	return nil
}
