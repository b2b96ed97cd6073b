package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cubefall/internal/core"
	"github.com/vovakirdan/cubefall/internal/games/cubefall/engine"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var embedded CubefallConfig
	if err := yaml.Unmarshal(defaultCubefallYAML, &embedded); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if diff := cmp.Diff(DefaultCubefallConfig(), embedded); diff != "" {
		t.Errorf("embedded default drifted from DefaultCubefallConfig (-hardcoded +embedded):\n%s", diff)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	cfg, err := LoadCubefall("")
	if err != nil {
		t.Fatalf("LoadCubefall: %v", err)
	}
	if cfg.Clear.MinEdge != 3 {
		t.Errorf("embedded default min_edge = %d, expected 3", cfg.Clear.MinEdge)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", configFile), []byte("clear:\n  min_edge: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadCubefall("")
	if cfg.Clear.MinEdge != 4 {
		t.Errorf("./configs min_edge = %d, expected 4", cfg.Clear.MinEdge)
	}
	if cfg.Field.Width != 7 {
		t.Errorf("partial file should keep default width, got %d", cfg.Field.Width)
	}

	userPath := filepath.Join(home, ".cubefall", "configs", configFile)
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userPath, []byte("clear:\n  min_edge: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadCubefall("")
	if cfg.Clear.MinEdge != 5 {
		t.Errorf("user config min_edge = %d, expected 5", cfg.Clear.MinEdge)
	}

	// A broken user file is skipped in favor of the next location.
	if err := os.WriteFile(userPath, []byte("clear: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadCubefall("")
	if cfg.Clear.MinEdge != 4 {
		t.Errorf("broken user file should fall through, got min_edge %d", cfg.Clear.MinEdge)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	body := "field:\n  width: 5\n  depth: 5\ntiming:\n  drop_interval: 250ms\nscoring: volume\nspawn_kinds: [I, test_cube]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCubefall(path)
	if err != nil {
		t.Fatalf("LoadCubefall(%s): %v", path, err)
	}
	if cfg.Field.Width != 5 || cfg.Field.Height != 14 || cfg.Field.Depth != 5 {
		t.Errorf("field = %+v, expected 5x14x5", cfg.Field)
	}
	if cfg.Timing.DropInterval != 250*time.Millisecond {
		t.Errorf("drop_interval = %v, expected 250ms", cfg.Timing.DropInterval)
	}

	ec, err := cfg.Engine(9)
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if diff := cmp.Diff([]engine.Kind{engine.KindI, engine.KindTestCube}, ec.SpawnKinds); diff != "" {
		t.Errorf("spawn kinds mismatch (-want +got):\n%s", diff)
	}
	if ec.Seed != 9 || ec.Width != 5 {
		t.Errorf("engine config = %+v", ec)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)
	if _, err := LoadCubefall(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing custom file: err = %v, expected os.ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing:\n  lock_delay: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCubefall(bad); err == nil {
		t.Error("unparseable duration should fail")
	}
}

func TestEngineValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CubefallConfig)
	}{
		{"unknown kind", func(c *CubefallConfig) { c.SpawnKinds = []string{"W"} }},
		{"unknown scoring", func(c *CubefallConfig) { c.Scoring = "golf" }},
		{"min edge", func(c *CubefallConfig) { c.Clear.MinEdge = 9 }},
		{"zero height", func(c *CubefallConfig) { c.Field.Height = 0 }},
		{"zero lock delay", func(c *CubefallConfig) { c.Timing.LockDelay = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultCubefallConfig()
			tc.mutate(&cfg)
			if _, err := cfg.Engine(0); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Engine() err = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	_, err := func() (engine.Config, error) {
		cfg := DefaultCubefallConfig()
		cfg.Clear.MinEdge = 1
		return cfg.Engine(0)
	}()
	if !errors.Is(err, engine.ErrInvalidDifficulty) {
		t.Errorf("engine sentinel should stay visible through the wrap, got %v", err)
	}
}

func TestKindColors(t *testing.T) {
	colors, err := DefaultCubefallConfig().KindColors()
	if err != nil {
		t.Fatalf("KindColors: %v", err)
	}
	if colors[engine.KindL] != core.ColorOrange || colors[engine.KindI] != core.ColorCyan {
		t.Errorf("colors = %v", colors)
	}

	cfg := DefaultCubefallConfig()
	cfg.Colors = map[string]string{"T": "mauve"}
	if _, err := cfg.KindColors(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown color: err = %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		wantMinEdge  int
		wantEnabled  bool
		wantInitial  float64
		wantDropBase time.Duration
	}{
		{DifficultyEasy, 2, true, 0.0, time.Second},
		{DifficultyNormal, 3, true, 0.3, 800 * time.Millisecond},
		{DifficultyHard, 4, true, 0.7, 500 * time.Millisecond},
		{DifficultyFixed, 3, false, 0.0, 800 * time.Millisecond},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultCubefallConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Clear.MinEdge != tc.wantMinEdge {
				t.Errorf("min edge = %d, expected %d", cfg.Clear.MinEdge, tc.wantMinEdge)
			}
			if cfg.Difficulty.Enabled != tc.wantEnabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tc.wantInitial {
				t.Errorf("initial level = %v, expected %v", cfg.Difficulty.InitialLevel, tc.wantInitial)
			}
			if cfg.Timing.DropInterval != tc.wantDropBase {
				t.Errorf("drop interval = %v, expected %v", cfg.Timing.DropInterval, tc.wantDropBase)
			}
			if _, err := cfg.Engine(0); err != nil {
				t.Errorf("preset produced an invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets {
		got, err := ParsePreset(" " + string(p) + " ")
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParsePreset(nightmare) err = %v", err)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", configFile)
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("second WriteDefault should refuse to overwrite")
	}

	cfg, err := LoadCubefall(path)
	if err != nil {
		t.Fatalf("written default does not load: %v", err)
	}
	if diff := cmp.Diff(DefaultCubefallConfig(), cfg); diff != "" {
		t.Errorf("written default mismatch (-want +got):\n%s", diff)
	}
}
