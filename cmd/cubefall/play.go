package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cubefall/internal/core"
	"github.com/vovakirdan/cubefall/internal/platform/tui"
	"github.com/vovakirdan/cubefall/internal/registry"
	"github.com/vovakirdan/cubefall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, cubefall when none is given.

Controls:
  Left/Right   - Move sideways
  Up/Down      - Move away from / toward you
  S            - Soft drop
  Space        - Drop to the floor, press again to lock
  Z / X / C    - Rotate: spin, tip forward, roll sideways
  A / D        - Turn the field a quarter turn
  V / F2       - Toggle colors
  P            - Pause
  R            - Restart (after game over)
  Esc          - Pause, then back to the menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 2-cell cuboids clear, slow drop, long lock delay
  normal - 3-cell cuboids clear, speeds up with score
  hard   - 4-cell cuboids clear, fast drop, short lock delay
  fixed  - No progression, keeps the config's timing

Examples:
  cubefall play
  cubefall play --difficulty easy
  cubefall play cubefall_sandbox --min-edge 2
  cubefall play --config ./my-cubefall.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cubefall list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, terminalConfig(), gameOptions()...)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig sizes the runtime to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameOptions routes model diagnostics to the --log-file logger, if any.
func gameOptions() []tui.GameOption {
	if logger == nil {
		return nil
	}
	return []tui.GameOption{tui.WithLogger(logger)}
}
