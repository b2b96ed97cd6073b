package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/cubefall.yaml
var defaultCubefallYAML []byte

// DefaultCubefallConfig is the hardcoded fallback, identical to the embedded file.
func DefaultCubefallConfig() CubefallConfig {
	return CubefallConfig{
		Field: FieldConfig{Width: 7, Height: 14, Depth: 7},
		Timing: TimingConfig{
			LockDelay:       1000 * time.Millisecond,
			DropInterval:    800 * time.Millisecond,
			MinDropInterval: 150 * time.Millisecond,
		},
		Clear: ClearConfig{
			MinEdge:         3,
			MaxIterations:   1000,
			MaxPlaneRetries: 20,
		},
		Scoring: "classic",
		Colors: map[string]string{
			"I": "cyan",
			"O": "yellow",
			"T": "magenta",
			"S": "green",
			"Z": "red",
			"J": "blue",
			"L": "orange",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "score", MaxAt: 20000},
			Scaling:      ScalingConfig{SpeedMultiplier: 3.0},
		},
	}
}
