package engine

import "time"

// PieceSnapshot is a copy of the falling piece.
type PieceSnapshot struct {
	Kind   Kind
	Shape  Shape
	Origin Vec3
}

// LockSnapshot is the lock-delay progress as a display would show it.
type LockSnapshot struct {
	State    LockState
	Elapsed  time.Duration
	Duration time.Duration
	Progress float64
}

// Snapshot is a read-only copy of everything a renderer needs.
// It shares no memory with the engine.
type Snapshot struct {
	State State
	Tick  uint64
	Time  time.Duration

	Width, Height, Depth int
	Cells                []Kind // Flat, index (y*Depth + z)*Width + x

	Active *PieceSnapshot
	Ghost  *Vec3 // Resting origin of the active piece
	Next   Kind

	Score         int
	MinEdge       int
	Pieces        int
	Cleared       int
	FieldRotation int
	FieldStep     int
	Colored       bool
	DropInterval  time.Duration
	Stats         GridStats
	Lock          LockSnapshot
}

// At returns the kind at (x, y, z) of the snapshot grid, KindNone when out of bounds.
func (s Snapshot) At(x, y, z int) Kind {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return KindNone
	}
	return s.Cells[(y*s.Depth+z)*s.Width+x]
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	now := e.clock.Now()
	snap := Snapshot{
		State:         e.state,
		Tick:          e.ticks,
		Time:          now,
		Width:         e.grid.W,
		Height:        e.grid.H,
		Depth:         e.grid.D,
		Cells:         e.grid.Cells(),
		Next:          e.ctrl.Next(),
		Score:         e.score.Total(),
		MinEdge:       e.minEdge,
		Pieces:        e.pieces,
		Cleared:       e.cleared,
		FieldRotation: e.fieldRotation,
		FieldStep:     e.FieldStep(),
		Colored:       e.colored,
		DropInterval:  e.dropInterval,
		Stats:         e.grid.Stats(),
		Lock: LockSnapshot{
			State:    e.lock.State(),
			Elapsed:  e.lock.Elapsed(now),
			Duration: e.cfg.LockDelay,
			Progress: e.lock.Progress(now, e.cfg.LockDelay),
		},
	}

	if p := e.ctrl.Active(); p != nil {
		snap.Active = &PieceSnapshot{Kind: p.Kind, Shape: p.Shape.Clone(), Origin: p.Origin}
		if target, ok := e.ctrl.DropTarget(); ok {
			snap.Ghost = &target
		}
	}
	return snap
}
