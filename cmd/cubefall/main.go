// cubefall is a 3D falling-block puzzle for the terminal: fill solid
// cuboids or whole planes to clear them.
//
// Usage:
//
//	cubefall list              - List available games
//	cubefall play [game]       - Play a game (default: cubefall)
//	cubefall menu              - Start menu to pick a game and difficulty
//	cubefall serve             - Start SSH server for remote play
//	cubefall scores [game]     - Show high scores for a game
//	cubefall config init       - Write the default config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.cubefall/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - Preset: easy, normal, hard, fixed
//	--min-edge <n>        - Override the minimum cuboid edge (2-5)
//	--log-file <path>     - Write diagnostics to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubefall/internal/games/cubefall"
	"github.com/vovakirdan/cubefall/internal/games/cubefall/engine"
)

const defaultGame = "cubefall"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMinEdge    int
	flagLogFile    string
	flagLogLevel   string
)

var (
	logFile *os.File    // Closed by main after the command returns
	logger  *log.Logger // Nil unless --log-file is set
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubefall",
	Short: "Cubefall - 3D falling blocks in your terminal",
	Long: `Cubefall drops 3D pieces into a well you can turn. Lock pieces so
they form a solid cuboid with every edge at least the minimum length, or
fill a whole horizontal plane, and the blocks disappear.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Manage the config file

Examples:
  cubefall play
  cubefall play cubefall_sandbox --min-edge 2
  cubefall menu --difficulty hard
  cubefall serve --ssh :2222
  cubefall scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cubefall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagMinEdge, "min-edge", 0, "Minimum cuboid edge, 2-5 (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates the global flags and hands them to the game package
// before any game is created.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagMinEdge != 0 && (flagMinEdge < engine.MinEdgeLowest || flagMinEdge > engine.MinEdgeHighest) {
		return fmt.Errorf("--min-edge must be between %d and %d, got %d",
			engine.MinEdgeLowest, engine.MinEdgeHighest, flagMinEdge)
	}
	if flagDifficulty != "" {
		cubefall.SetDifficultyPreset(flagDifficulty)
		if cubefall.DifficultyPreset() == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	cubefall.SetConfigPath(flagConfig)
	cubefall.SetMinEdge(flagMinEdge)

	l, err := newLogger()
	if err != nil {
		return err
	}
	logger = l
	cubefall.SetLogger(l)
	return nil
}

// newLogger opens --log-file for diagnostics. The terminal belongs to the
// game, so without a file nothing is logged.
func newLogger() (*log.Logger, error) {
	if flagLogFile == "" {
		return nil, nil
	}
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubefall",
		Level:           level,
	}), nil
}
