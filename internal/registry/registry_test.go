package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubefall/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Description() string { return "test double" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.state.Score++
	return core.StepResult{State: g.state}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	assert.True(t, Exists("zz_stub"))
	assert.False(t, Exists("zz_missing"))

	info, ok := Info("zz_stub")
	require.True(t, ok)
	assert.Equal(t, GameInfo{ID: "zz_stub", Title: "Stub zz_stub", Description: "test double"}, info)

	a, err := Create("zz_stub")
	require.NoError(t, err)
	b, err := Create("zz_stub")
	require.NoError(t, err)
	a.Step(core.NewInputFrame())
	assert.Equal(t, 1, a.State().Score)
	assert.Equal(t, 0, b.State().Score, "each Create returns a fresh instance")

	_, err = Create("zz_missing")
	assert.ErrorContains(t, err, "zz_missing")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	assert.Panics(t, func() {
		Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	})
}

func TestListSorted(t *testing.T) {
	Register("zz_b", func() Game { return &stubGame{id: "zz_b"} })
	Register("zz_a", func() Game { return &stubGame{id: "zz_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}
