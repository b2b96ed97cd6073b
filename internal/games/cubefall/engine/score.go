package engine

import (
	"fmt"
	"sort"
)

// Placement describes a piece that has just been fixed into the grid.
type Placement struct {
	Kind   Kind
	Blocks int
}

// ScoreContext carries the game parameters a scoring policy may weigh.
type ScoreContext struct {
	Width   int
	Depth   int
	MinEdge int
}

// Scorer is a scoring policy. Implementations must never return negative points.
type Scorer interface {
	Name() string
	PlacementPoints(p Placement, ctx ScoreContext) int
	ClearPoints(r ClearResult, ctx ScoreContext) int
}

// ClassicScorer awards 10 per piece, 100 per plane cell-area and 50 per cuboid cell.
type ClassicScorer struct{}

func (ClassicScorer) Name() string { return "classic" }

func (ClassicScorer) PlacementPoints(Placement, ScoreContext) int { return 10 }

func (ClassicScorer) ClearPoints(r ClearResult, ctx ScoreContext) int {
	return r.Planes*ctx.Width*ctx.Depth*100 + r.CuboidCells*50
}

// FlatScorer awards a point per placed block and ten per cleared cell.
type FlatScorer struct{}

func (FlatScorer) Name() string { return "flat" }

func (FlatScorer) PlacementPoints(p Placement, _ ScoreContext) int { return p.Blocks }

func (FlatScorer) ClearPoints(r ClearResult, _ ScoreContext) int { return r.Cells() * 10 }

// LevelScorer weights classic clear points by the minimum cuboid edge in force.
type LevelScorer struct{}

func (LevelScorer) Name() string { return "level" }

func (LevelScorer) PlacementPoints(p Placement, ctx ScoreContext) int {
	return ClassicScorer{}.PlacementPoints(p, ctx)
}

func (LevelScorer) ClearPoints(r ClearResult, ctx ScoreContext) int {
	return ClassicScorer{}.ClearPoints(r, ctx) * max(ctx.MinEdge, 1)
}

// VolumeScorer rewards big clears quadratically: volume^2 * 10 per cuboid,
// with each cleared plane counted as a W*D volume.
type VolumeScorer struct{}

func (VolumeScorer) Name() string { return "volume" }

func (VolumeScorer) PlacementPoints(Placement, ScoreContext) int { return 10 }

func (VolumeScorer) ClearPoints(r ClearResult, ctx ScoreContext) int {
	total := 0
	for _, c := range r.Cuboids {
		v := c.Volume()
		total += v * v * 10
	}
	plane := ctx.Width * ctx.Depth
	total += r.Planes * plane * plane * 10
	return total
}

var scorers = map[string]Scorer{
	"classic": ClassicScorer{},
	"flat":    FlatScorer{},
	"level":   LevelScorer{},
	"volume":  VolumeScorer{},
}

// ScorerByName looks up a built-in scoring policy. An empty name selects classic.
func ScorerByName(name string) (Scorer, error) {
	if name == "" {
		return ClassicScorer{}, nil
	}
	s, ok := scorers[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown scoring policy %q", name)
	}
	return s, nil
}

// ScorerNames lists the built-in policies, sorted.
func ScorerNames() []string {
	names := make([]string, 0, len(scorers))
	for n := range scorers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Accumulator is the running score. It only ever grows.
type Accumulator struct {
	total int
}

// Add credits points; non-positive amounts are ignored. It returns the new total.
func (a *Accumulator) Add(points int) int {
	if points > 0 {
		a.total += points
	}
	return a.total
}

// Total returns the current score.
func (a *Accumulator) Total() int {
	return a.total
}

// Reset zeroes the score for a new game.
func (a *Accumulator) Reset() {
	a.total = 0
}
