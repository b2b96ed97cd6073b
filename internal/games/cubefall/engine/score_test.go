package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorerPolicies(t *testing.T) {
	ctx := ScoreContext{Width: 7, Depth: 7, MinEdge: 3}
	res := ClearResult{
		Cuboids:     []Cuboid{{Size: V(3, 3, 3)}},
		CuboidCells: 27,
		Planes:      1,
		PlaneCells:  49,
	}
	placed := Placement{Kind: KindT, Blocks: 4}

	tests := []struct {
		scorer    Scorer
		wantPlace int
		wantClear int
	}{
		{ClassicScorer{}, 10, 4900 + 27*50},
		{FlatScorer{}, 4, 76 * 10},
		{LevelScorer{}, 10, (4900 + 27*50) * 3},
		{VolumeScorer{}, 10, 27*27*10 + 49*49*10},
	}
	for _, tc := range tests {
		t.Run(tc.scorer.Name(), func(t *testing.T) {
			assert.Equal(t, tc.wantPlace, tc.scorer.PlacementPoints(placed, ctx))
			assert.Equal(t, tc.wantClear, tc.scorer.ClearPoints(res, ctx))
			assert.Zero(t, tc.scorer.ClearPoints(ClearResult{}, ctx))
		})
	}
}

func TestScorerByName(t *testing.T) {
	s, err := ScorerByName("")
	require.NoError(t, err)
	assert.Equal(t, "classic", s.Name())

	for _, name := range ScorerNames() {
		s, err := ScorerByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
	assert.Equal(t, []string{"classic", "flat", "level", "volume"}, ScorerNames())

	_, err = ScorerByName("golf")
	assert.ErrorContains(t, err, "golf")
}

func TestAccumulatorNeverDecreases(t *testing.T) {
	var a Accumulator
	assert.Equal(t, 10, a.Add(10))
	assert.Equal(t, 10, a.Add(-5))
	assert.Equal(t, 10, a.Add(0))
	assert.Equal(t, 60, a.Add(50))
	assert.Equal(t, 60, a.Total())

	a.Reset()
	assert.Zero(t, a.Total())
}
