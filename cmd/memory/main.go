// memory is a tile-matching memory game for the terminal.
//
// Usage:
//
//	memory play              - Play a game
//	memory scores            - Show best times and recent games
//	memory serve             - Start SSH server for remote play
//	memory config            - Print the effective game configuration
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible deals
//	--db <path>      - Set database path (default: ~/.memory/memory.db)
//	--config <path>  - Load game config from a YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/config"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memory",
	Short: "Memory - find the matching pairs in your terminal",
	Long: `Memory is a terminal tile-matching game. Flip two tiles per turn;
matching pairs stay face-up until the whole board is cleared.

Available commands:
  play     - Play a game
  scores   - View best times and recent games
  serve    - Start SSH server for remote play
  config   - Print the effective game configuration

Examples:
  memory play
  memory play --cards 16
  memory scores
  memory serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.memory/memory.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig loads the game config and applies a card count override.
func loadGameConfig(cards int) (config.MemoryConfig, error) {
	cfg, err := config.LoadMemory(flagConfig)
	if err != nil {
		return config.MemoryConfig{}, err
	}
	if cards > 0 {
		cfg.Board.TotalCards = cards
		if err := cfg.Validate(); err != nil {
			return config.MemoryConfig{}, err
		}
	}
	return cfg, nil
}
