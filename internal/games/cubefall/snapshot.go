package cubefall

import "github.com/vovakirdan/cubefall/internal/games/cubefall/engine"

// GameStateType names the adapter state for replays and saved results.
type GameStateType string

const (
	StateMenu     GameStateType = "menu"
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
	StateTooSmall GameStateType = "too_small"
)

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64
	State   GameStateType
	Score   int
	MinEdge int
	Pieces  int
	Cleared int

	FieldRotation int
	DropMS        int64
	Colored       bool

	// Active piece: kind, origin (x, y, z) and block offsets flattened as x, y, z triples
	ActiveKind  int
	ActiveX     int
	ActiveY     int
	ActiveZ     int
	ActiveShape []int
	NextKind    int

	// Grid kinds, index (y*depth + z)*width + x
	Width, Height, Depth int
	Cells                []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.eng == nil {
		return Snapshot{State: StateMenu}
	}
	es := g.eng.Snapshot()

	snap := Snapshot{
		Tick:          g.tick,
		State:         g.stateType(es.State),
		Score:         es.Score,
		MinEdge:       es.MinEdge,
		Pieces:        es.Pieces,
		Cleared:       es.Cleared,
		FieldRotation: es.FieldRotation,
		DropMS:        es.DropInterval.Milliseconds(),
		Colored:       es.Colored,
		NextKind:      int(es.Next),
		Width:         es.Width,
		Height:        es.Height,
		Depth:         es.Depth,
		Cells:         make([]int, len(es.Cells)),
	}
	for i, k := range es.Cells {
		snap.Cells[i] = int(k)
	}
	if a := es.Active; a != nil {
		snap.ActiveKind = int(a.Kind)
		snap.ActiveX, snap.ActiveY, snap.ActiveZ = a.Origin.X, a.Origin.Y, a.Origin.Z
		snap.ActiveShape = make([]int, 0, len(a.Shape)*3)
		for _, b := range a.Shape {
			snap.ActiveShape = append(snap.ActiveShape, b.X, b.Y, b.Z)
		}
	}
	return snap
}

func (g *Game) stateType(s engine.State) GameStateType {
	if g.tooSmall {
		return StateTooSmall
	}
	switch s {
	case engine.StatePlaying:
		return StatePlaying
	case engine.StatePaused:
		return StatePaused
	case engine.StateGameOver:
		return StateGameOver
	default:
		return StateMenu
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, r := range snap.State {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MinEdge)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pieces)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cleared)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FieldRotation) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DropMS)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ActiveKind)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ActiveX)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ActiveY)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ActiveZ)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextKind)      //#nosec G115 -- hash computation
	if snap.Colored {
		h = h*31 + 1
	}

	for _, v := range snap.ActiveShape {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Cells {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
