package config

import (
	"math"
	"testing"
	"time"
)

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{500, 0.6},
		{1000, 1.0},
		{5000, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}

	d.SetEnabled(false)
	if got := d.Level(1000, 0); got != 0.2 {
		t.Errorf("disabled Level = %v, expected initial 0.2", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})
	if got := d.Level(99999, 300); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level at half time = %v, expected 0.5", got)
	}

	none := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "none"},
	})
	if none.IsEnabled() {
		t.Error("progression type none should disable progression")
	}
	if got := none.Level(99999, 99999); got != 0.4 {
		t.Errorf("Level with type none = %v, expected 0.4", got)
	}
}

func TestDifficultyDropInterval(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{SpeedMultiplier: 3},
	})
	base := 800 * time.Millisecond

	if got := d.DropInterval(base, 0, 0, 0); got != base {
		t.Errorf("level 0 interval = %v, expected %v", got, base)
	}
	// Level 1.0 is four times as fast.
	if got := d.DropInterval(base, 0, 1000, 0); got != 200*time.Millisecond {
		t.Errorf("level 1 interval = %v, expected 200ms", got)
	}
	if got := d.DropInterval(base, 300*time.Millisecond, 1000, 0); got != 300*time.Millisecond {
		t.Errorf("floored interval = %v, expected 300ms", got)
	}

	prev := base
	for score := 0; score <= 1000; score += 100 {
		got := d.DropInterval(base, 0, score, 0)
		if got > prev {
			t.Errorf("interval grew from %v to %v at score %d", prev, got, score)
		}
		prev = got
	}
}

func TestSetInitialLevelClamps(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{})
	d.SetInitialLevel(1.7)
	if got := d.Level(0, 0); got != 1.0 {
		t.Errorf("Level = %v, expected clamp to 1.0", got)
	}
	d.SetInitialLevel(-3)
	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level = %v, expected clamp to 0", got)
	}
}
