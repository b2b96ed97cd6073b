// Package config loads the YAML game configuration and manages difficulty
// progression for cubefall.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/cubefall/internal/core"
	"github.com/vovakirdan/cubefall/internal/games/cubefall/engine"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// CubefallConfig is the complete game configuration.
type CubefallConfig struct {
	Field      FieldConfig       `yaml:"field"`
	Timing     TimingConfig      `yaml:"timing"`
	Clear      ClearConfig       `yaml:"clear"`
	Scoring    string            `yaml:"scoring"`     // classic, flat, level or volume
	SpawnKinds []string          `yaml:"spawn_kinds"` // Empty means the seven standard kinds
	Colors     map[string]string `yaml:"colors"`      // Piece kind -> palette color name
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// FieldConfig sets the well dimensions.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`
}

// TimingConfig sets the clocks. Values are Go durations ("800ms", "1s").
type TimingConfig struct {
	LockDelay       time.Duration `yaml:"lock_delay"`
	DropInterval    time.Duration `yaml:"drop_interval"`
	MinDropInterval time.Duration `yaml:"min_drop_interval"` // Floor for difficulty scaling
}

// ClearConfig tunes the clear pass.
type ClearConfig struct {
	MinEdge         int `yaml:"min_edge"`
	MaxIterations   int `yaml:"max_iterations"`
	MaxPlaneRetries int `yaml:"max_plane_retries"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time" or "none"
	MaxAt int    `yaml:"max_at"` // Score or tick count at which the level reaches 1.0
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Drop speed gain at level 1.0
}

// DifficultyPreset is a named difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
}

// InitialLevelForPreset returns the starting progression level of a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts cfg for a preset. Fixed keeps the file's values and
// turns progression off.
func ApplyPreset(cfg *CubefallConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Clear.MinEdge = 2
		cfg.Timing.LockDelay = 1500 * time.Millisecond
		cfg.Timing.DropInterval = 1000 * time.Millisecond
	case DifficultyNormal:
		cfg.Clear.MinEdge = 3
	case DifficultyHard:
		cfg.Clear.MinEdge = 4
		cfg.Timing.LockDelay = 700 * time.Millisecond
		cfg.Timing.DropInterval = 500 * time.Millisecond
	}
}

// Kinds resolves the spawn bag names.
func (c CubefallConfig) Kinds() ([]engine.Kind, error) {
	if len(c.SpawnKinds) == 0 {
		return append([]engine.Kind(nil), engine.StandardKinds...), nil
	}
	kinds := make([]engine.Kind, 0, len(c.SpawnKinds))
	for _, name := range c.SpawnKinds {
		k, err := engine.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: spawn_kinds: %w", ErrInvalidConfig, err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// KindColors resolves the colors table. Kinds missing from the table keep
// the built-in palette.
func (c CubefallConfig) KindColors() (map[engine.Kind]core.Color, error) {
	out := make(map[engine.Kind]core.Color, len(c.Colors))
	for kindName, colorName := range c.Colors {
		k, err := engine.ParseKind(kindName)
		if err != nil {
			return nil, fmt.Errorf("%w: colors: %w", ErrInvalidConfig, err)
		}
		col, ok := core.ParseColor(colorName)
		if !ok {
			return nil, fmt.Errorf("%w: colors: unknown color %q for %s", ErrInvalidConfig, colorName, kindName)
		}
		out[k] = col
	}
	return out, nil
}

// Engine converts the file config into an engine config and validates it.
func (c CubefallConfig) Engine(seed int64) (engine.Config, error) {
	kinds, err := c.Kinds()
	if err != nil {
		return engine.Config{}, err
	}
	if _, err := engine.ScorerByName(c.Scoring); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	ec := engine.Config{
		Width:           c.Field.Width,
		Height:          c.Field.Height,
		Depth:           c.Field.Depth,
		LockDelay:       c.Timing.LockDelay,
		DropInterval:    c.Timing.DropInterval,
		MinEdge:         c.Clear.MinEdge,
		MaxIterations:   c.Clear.MaxIterations,
		MaxPlaneRetries: c.Clear.MaxPlaneRetries,
		SpawnKinds:      kinds,
		Seed:            seed,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return ec, nil
}
