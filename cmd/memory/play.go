package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/core"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	flagCards   int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Deal a board and start playing.

Controls:
  Arrows/HJKL    - Move the cursor
  Space/Enter    - Flip the tile under the cursor
  R              - Restart (asks for confirmation)
  N              - Deal a new board
  Esc            - Dismiss a prompt or the results
  Q/Ctrl+C       - Quit

Examples:
  memory play
  memory play --cards 12
  memory play --seed 42
  memory play --config ./my-memory.yaml --log-file ./memory.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagCards, "cards", 0, "Number of tiles on the board (even; 0 = from config)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagCards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The board owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	var logFile *os.File
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", openErr)
			os.Exit(1)
		}
		logFile = f
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "memory",
		Level:           log.DebugLevel,
	})

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.ModelOptions{
		Store:   store,
		Game:    gameCfg,
		Runtime: runtime,
		Logger:  logger,
	})

	// Close store and log file before potential exit
	if store != nil {
		store.Close()
	}
	if logFile != nil {
		logFile.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
