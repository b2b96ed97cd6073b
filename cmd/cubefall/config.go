package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubefall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	Long: `Config files are searched in this order:
  --config <path>
  ~/.cubefall/configs/cubefall.yaml
  ./configs/cubefall.yaml
  built-in defaults`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the built-in defaults as YAML, to ~/.cubefall/configs/cubefall.yaml
unless a path is given. An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		path := config.UserConfigPath()
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := config.LoadCubefall(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if flagDifficulty != "" {
			preset, err := config.ParsePreset(flagDifficulty)
			if err == nil {
				config.ApplyPreset(&cfg, preset)
			}
		}
		if flagMinEdge > 0 {
			cfg.Clear.MinEdge = flagMinEdge
		}
		if _, err := cfg.Engine(0); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Field:      %dx%dx%d\n", cfg.Field.Width, cfg.Field.Height, cfg.Field.Depth)
		fmt.Printf("Lock delay: %v\n", cfg.Timing.LockDelay)
		fmt.Printf("Drop:       %v (floor %v)\n", cfg.Timing.DropInterval, cfg.Timing.MinDropInterval)
		fmt.Printf("Min edge:   %d\n", cfg.Clear.MinEdge)
		fmt.Printf("Scoring:    %s\n", cfg.Scoring)
		fmt.Printf("Difficulty: enabled=%v progression=%s max_at=%d\n",
			cfg.Difficulty.Enabled, cfg.Difficulty.Progression.Type, cfg.Difficulty.Progression.MaxAt)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
