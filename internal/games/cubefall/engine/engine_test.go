package engine

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine builds an engine whose automatic descent never fires unless
// the caller asks for it.
func newTestEngine(t *testing.T, mutate func(*Config), opts ...Option) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DropInterval = time.Hour
	cfg.Seed = 42
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func landPiece(t *testing.T, e *Engine) {
	t.Helper()
	require.NotNil(t, e.ctrl.Active())
	for e.SoftDrop() {
	}
	require.False(t, e.ctrl.CanDescend())
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative depth", func(c *Config) { c.Depth = -1 }, ErrInvalidDimensions},
		{"zero lock delay", func(c *Config) { c.LockDelay = 0 }, ErrInvalidTiming},
		{"min edge too low", func(c *Config) { c.MinEdge = 1 }, ErrInvalidDifficulty},
		{"min edge too high", func(c *Config) { c.MinEdge = 6 }, ErrInvalidDifficulty},
		{"empty bag", func(c *Config) { c.SpawnKinds = nil }, ErrEmptyBag},
		{"bag with none", func(c *Config) { c.SpawnKinds = []Kind{KindNone} }, ErrEmptyBag},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStartSpawnsAtTop(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.Equal(t, StateMenu, e.State())
	assert.False(t, e.SoftDrop(), "commands are ignored outside play")

	events := e.Start()
	require.Len(t, events, 1)
	assert.Equal(t, EventSpawned, events[0].Kind)
	assert.Equal(t, V(3, 12, 3), events[0].Origin)
	assert.Equal(t, StatePlaying, e.State())
	assert.NotEqual(t, KindNone, e.Snapshot().Next)
}

func TestLockFiresExactlyOnce(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	landPiece(t, e)

	var events []Event
	for i := 0; i < 99; i++ {
		events = append(events, e.Tick(10*ms)...)
	}
	assert.Zero(t, countEvents(events, EventLocked), "locked before the grace period ran out")

	events = append(events, e.Tick(10*ms)...)
	assert.Equal(t, 1, countEvents(events, EventLocked))

	for i := 0; i < 200; i++ {
		events = append(events, e.Tick(10*ms)...)
	}
	assert.Equal(t, 1, countEvents(events, EventLocked), "a single grace period locked more than once")
	assert.Equal(t, 4, e.grid.FilledCount())
	assert.Equal(t, 10, e.Score())
}

func TestSidewaysMoveCancelsLock(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	landPiece(t, e)
	e.Tick(900 * ms)
	require.Equal(t, LockRunning, e.lock.State())

	require.True(t, e.Move(1, 0, 0))
	assert.Equal(t, LockIdle, e.lock.State())

	// Still resting, so the next tick starts a fresh grace period.
	e.Tick(10 * ms)
	assert.Equal(t, LockRunning, e.lock.State())
	assert.Equal(t, time.Duration(0), e.lock.Elapsed(e.clock.Now()))

	events := e.Tick(999 * ms)
	assert.Zero(t, countEvents(events, EventLocked))
	events = e.Tick(1 * ms)
	assert.Equal(t, 1, countEvents(events, EventLocked))
}

func TestPauseExcludedFromLockDelay(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	landPiece(t, e)

	assert.Empty(t, e.Tick(500*ms))
	require.True(t, e.Pause())
	assert.Equal(t, StatePaused, e.State())
	assert.False(t, e.SoftDrop())

	assert.Empty(t, e.Tick(5*time.Second))
	assert.Equal(t, LockPaused, e.Snapshot().Lock.State)

	require.True(t, e.Resume())
	events := e.Tick(400 * ms)
	assert.Zero(t, countEvents(events, EventLocked))
	assert.Equal(t, 900*ms, e.Snapshot().Lock.Elapsed)

	events = e.Tick(100 * ms)
	assert.Equal(t, 1, countEvents(events, EventLocked))
}

func TestTogglePause(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.False(t, e.TogglePause(), "cannot pause from the menu")

	e.Start()
	assert.True(t, e.TogglePause())
	assert.Equal(t, StatePaused, e.State())
	assert.True(t, e.TogglePause())
	assert.Equal(t, StatePlaying, e.State())
}

func TestHardDropThenForceLock(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	assert.Empty(t, e.HardDrop(), "first hard drop only moves the piece")
	assert.False(t, e.ctrl.CanDescend())
	assert.Equal(t, LockRunning, e.lock.State())

	events := e.HardDrop()
	require.NotEmpty(t, events)
	assert.Equal(t, EventLocked, events[0].Kind)
	assert.Equal(t, EventSpawned, events[len(events)-1].Kind)
	assert.Equal(t, 4, e.grid.FilledCount())
	assert.Equal(t, 1, e.Snapshot().Pieces)
}

func TestForceLockNeedsRunningTimer(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	assert.Empty(t, e.ForceLock(), "a falling piece has no grace period to cut short")

	landPiece(t, e)
	events := e.ForceLock()
	assert.Equal(t, 1, countEvents(events, EventLocked))
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEngine(t, nil, WithLogger(log.New(&buf)))
	e.Start()
	landPiece(t, e)
	e.grid.set(V(3, 12, 3), KindI)

	events := e.HardDrop()
	require.Len(t, events, 2)
	assert.Equal(t, EventLocked, events[0].Kind)
	assert.Equal(t, EventGameOver, events[1].Kind)

	assert.Equal(t, StateGameOver, e.State())
	assert.Nil(t, e.ctrl.Active())
	assert.Nil(t, e.Snapshot().Active)
	assert.False(t, e.Move(1, 0, 0))
	assert.Empty(t, e.Tick(time.Second))
	assert.Contains(t, buf.String(), "game over")
}

func TestSandboxCubeClears(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.MinEdge = 2
		c.SpawnKinds = []Kind{KindTestCube}
	})
	e.Start()
	e.HardDrop()
	events := e.HardDrop()

	require.Equal(t, 1, countEvents(events, EventCleared))
	var cleared Event
	for _, ev := range events {
		if ev.Kind == EventCleared {
			cleared = ev
		}
	}
	assert.Equal(t, 8, cleared.Clear.CuboidCells)
	assert.Equal(t, 400, cleared.Points)
	assert.Equal(t, 410, e.Score())
	assert.Equal(t, 0, e.grid.FilledCount())
	assert.Equal(t, 8, e.Snapshot().Cleared)
}

func TestSpawnKindReplacesActivePiece(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.Nil(t, e.SpawnKind(KindTestCube), "no spawns outside play")

	e.Start()
	next := e.ctrl.Next()
	require.True(t, e.SoftDrop())

	events := e.SpawnKind(KindTestCube)
	require.Len(t, events, 1)
	assert.Equal(t, EventSpawned, events[0].Kind)
	assert.Equal(t, KindTestCube, events[0].Piece)
	assert.Equal(t, KindTestCube, e.ctrl.Active().Kind)
	assert.Equal(t, e.ctrl.SpawnOrigin(ShapeOf(KindTestCube)), e.ctrl.Active().Origin)
	assert.Equal(t, next, e.ctrl.Next(), "the next slot is untouched")
	assert.Nil(t, e.SpawnKind(KindNone))

	// A blocked test spawn keeps the current piece instead of ending the game.
	fillBox(e.grid, V(0, 12, 0), V(7, 1, 7), KindI)
	assert.Nil(t, e.SpawnKind(KindTestPlane))
	assert.Equal(t, KindTestCube, e.ctrl.Active().Kind)
	assert.Equal(t, StatePlaying, e.State())
}

func TestAutomaticDescent(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.DropInterval = 800 * ms })
	e.Start()
	y := e.ctrl.Active().Origin.Y

	e.Tick(799 * ms)
	assert.Equal(t, y, e.ctrl.Active().Origin.Y)
	e.Tick(1 * ms)
	assert.Equal(t, y-1, e.ctrl.Active().Origin.Y)
	e.Tick(1600 * ms)
	assert.Equal(t, y-3, e.ctrl.Active().Origin.Y)

	e.SetDropInterval(100 * ms)
	e.Pause()
	e.Tick(time.Second)
	e.Resume()
	assert.Equal(t, y-3, e.ctrl.Active().Origin.Y, "no descent while paused")
}

func TestFieldRotationRemapsMoves(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.Equal(t, 0, e.RotateField(1), "field is fixed outside play")

	e.Start()
	assert.Equal(t, 90, e.RotateField(1))
	assert.Equal(t, 1, e.FieldStep())

	before := e.ctrl.Active().Origin
	require.True(t, e.MoveRelative(1, 0))
	assert.Equal(t, before.Add(V(0, 0, 1)), e.ctrl.Active().Origin)

	assert.Equal(t, 0, e.RotateField(-1))
	assert.Equal(t, 270, e.RotateField(-1))
	assert.Equal(t, 3, e.FieldStep())
}

func TestSetDifficulty(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.ErrorIs(t, e.SetDifficulty(1), ErrInvalidDifficulty)
	assert.ErrorIs(t, e.SetDifficulty(6), ErrInvalidDifficulty)
	assert.Equal(t, 3, e.Difficulty())

	require.NoError(t, e.SetDifficulty(5))
	assert.Equal(t, 5, e.Difficulty())
	e.Reset()
	assert.Equal(t, 5, e.Difficulty(), "difficulty survives reset")
}

func TestResetReturnsToMenu(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	e.RotateField(1)
	e.HardDrop()
	e.HardDrop()
	require.Positive(t, e.Score())
	colored := e.ToggleColoredMode()

	e.Reset()
	snap := e.Snapshot()
	assert.Equal(t, StateMenu, snap.State)
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Stats.Filled)
	assert.Zero(t, snap.FieldRotation)
	assert.Nil(t, snap.Active)
	assert.Equal(t, colored, snap.Colored)
}

type command func(e *Engine, rng *rand.Rand)

var commands = []command{
	func(e *Engine, rng *rand.Rand) { e.Move(rng.Intn(3)-1, 0, rng.Intn(3)-1) },
	func(e *Engine, _ *rand.Rand) { e.SoftDrop() },
	func(e *Engine, _ *rand.Rand) { e.HardDrop() },
	func(e *Engine, rng *rand.Rand) { e.Rotate(RotateCommand(rng.Intn(3))) },
	func(e *Engine, rng *rand.Rand) { e.RotateField(rng.Intn(2)*2 - 1) },
	func(e *Engine, rng *rand.Rand) { e.MoveRelative(rng.Intn(3)-1, rng.Intn(3)-1) },
	func(e *Engine, rng *rand.Rand) { e.Tick(time.Duration(rng.Intn(300)) * ms) },
	func(e *Engine, _ *rand.Rand) { e.TogglePause() },
}

func play(e *Engine, seed int64, steps int, check func(step int)) {
	rng := rand.New(rand.NewSource(seed))
	e.Start()
	for i := 0; i < steps && e.State() != StateGameOver; i++ {
		commands[rng.Intn(len(commands))](e, rng)
		if check != nil {
			check(i)
		}
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		e := newTestEngine(t, func(c *Config) {
			c.Seed = seed
			c.DropInterval = 200 * ms
		})
		prev := 0
		play(e, seed, 3000, func(step int) {
			score := e.Score()
			require.GreaterOrEqual(t, score, prev, "seed %d step %d: score decreased", seed, step)
			prev = score

			if p := e.ctrl.Active(); p != nil {
				for _, c := range p.Cells() {
					require.True(t, e.grid.IsEmpty(c), "seed %d step %d: active piece overlaps %v", seed, step, c)
				}
			}
		})
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t, func(c *Config) {
			c.Seed = 7
			c.DropInterval = 300 * ms
		})
		play(e, 99, 1500, nil)
		return e.Snapshot()
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed and commands diverged (-first +second):\n%s", diff)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	snap := e.Snapshot()
	require.NotNil(t, snap.Active)
	require.NotNil(t, snap.Ghost)
	assert.Equal(t, 0, snap.Ghost.Y)

	snap.Cells[0] = KindI
	snap.Active.Shape[0] = V(9, 9, 9)
	assert.Equal(t, KindNone, e.grid.At(V(0, 0, 0)))
	assert.NotEqual(t, V(9, 9, 9), e.ctrl.Active().Shape[0])
	assert.Equal(t, e.ctrl.Active().Kind, snap.Active.Kind)
	assert.Equal(t, KindNone, snap.At(-1, 0, 0))
}
