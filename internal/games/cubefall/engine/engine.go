// Package engine is the UI-agnostic core of the 3D falling-block puzzle.
// It owns the occupancy grid, the falling piece, the cuboid clear pass, the
// lock-delay timer and the score. It renders nothing and reads no clock:
// hosts drive it with commands and Tick(dt) and poll Snapshot for display.
//
// An Engine is not safe for concurrent use; hosts serialize every call.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Difficulty bounds: the minimum cuboid edge a clear requires.
const (
	MinEdgeLowest  = 2
	MinEdgeHighest = 5
)

var (
	ErrInvalidDimensions = errors.New("engine: grid dimensions must be positive")
	ErrInvalidDifficulty = errors.New("engine: difficulty out of range")
	ErrInvalidTiming     = errors.New("engine: lock delay and drop interval must be positive")
	ErrEmptyBag          = errors.New("engine: spawn bag has no valid kinds")
)

// Config fixes the parameters of a game.
type Config struct {
	Width, Height, Depth int

	LockDelay    time.Duration // Grace period for a resting piece
	DropInterval time.Duration // Automatic one-cell descent period

	MinEdge         int
	MaxIterations   int
	MaxPlaneRetries int

	SpawnKinds []Kind // Bag the next piece is drawn from; defaults to StandardKinds
	Seed       int64
}

// DefaultConfig returns the classic 7x14x7 well.
func DefaultConfig() Config {
	return Config{
		Width:           7,
		Height:          14,
		Depth:           7,
		LockDelay:       1000 * time.Millisecond,
		DropInterval:    800 * time.Millisecond,
		MinEdge:         3,
		MaxIterations:   DefaultMaxIterations,
		MaxPlaneRetries: DefaultMaxPlaneRetries,
		SpawnKinds:      StandardKinds,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, c.Width, c.Height, c.Depth)
	}
	if c.LockDelay <= 0 || c.DropInterval <= 0 {
		return ErrInvalidTiming
	}
	if c.MinEdge < MinEdgeLowest || c.MinEdge > MinEdgeHighest {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidDifficulty, c.MinEdge, MinEdgeLowest, MinEdgeHighest)
	}
	if len(c.SpawnKinds) == 0 {
		return ErrEmptyBag
	}
	for _, k := range c.SpawnKinds {
		if !k.Valid() {
			return fmt.Errorf("%w: %v", ErrEmptyBag, k)
		}
	}
	return nil
}

// State is the game phase.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EventKind classifies an Event.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventLocked
	EventCleared
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventCleared:
		return "cleared"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is something a command or tick caused. Commands return their events
// instead of notifying observers.
type Event struct {
	Kind   EventKind
	Piece  Kind
	Origin Vec3
	Clear  ClearResult // Set for EventCleared
	Points int         // Points credited by this event
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger routes engine diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithScorer replaces the classic scoring policy.
func WithScorer(s Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// Engine is the complete game state plus its command API.
type Engine struct {
	cfg    Config
	logger *log.Logger
	scorer Scorer

	grid  *Grid
	ctrl  *Controller
	lock  LockDelay
	clock Clock
	score Accumulator

	state         State
	fieldRotation int // Degrees, multiple of 90
	minEdge       int
	dropInterval  time.Duration
	dropAcc       time.Duration
	colored       bool

	ticks   uint64
	pieces  int
	cleared int
}

// New builds an engine in StateMenu with an empty grid.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.MaxPlaneRetries <= 0 {
		cfg.MaxPlaneRetries = DefaultMaxPlaneRetries
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:          cfg,
		logger:       log.New(io.Discard),
		scorer:       ClassicScorer{},
		grid:         NewGrid(cfg.Width, cfg.Height, cfg.Depth),
		minEdge:      cfg.MinEdge,
		dropInterval: cfg.DropInterval,
		colored:      true,
	}
	for _, opt := range opts {
		opt(e)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	e.ctrl = NewController(e.grid, &e.lock, &e.clock, rng, cfg.SpawnKinds)
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// State returns the current phase.
func (e *Engine) State() State { return e.state }

// Score returns the current score.
func (e *Engine) Score() int { return e.score.Total() }

// Grid exposes the grid for read-only inspection.
func (e *Engine) Grid() *Grid { return e.grid }

// Reset clears the grid, score, field rotation and piece, returning to StateMenu.
// Difficulty and coloured mode survive a reset.
func (e *Engine) Reset() {
	e.grid.Reset()
	e.score.Reset()
	e.ctrl.Clear()
	e.lock.Cancel()
	e.state = StateMenu
	e.fieldRotation = 0
	e.dropAcc = 0
	e.pieces = 0
	e.cleared = 0
}

// Start begins a fresh game and spawns the first piece.
func (e *Engine) Start() []Event {
	e.Reset()
	e.state = StatePlaying
	return e.spawn()
}

// Spawn brings the next piece into play when none is falling.
func (e *Engine) Spawn() []Event {
	if e.state != StatePlaying || e.ctrl.Active() != nil {
		return nil
	}
	return e.spawn()
}

func (e *Engine) spawn() []Event {
	e.dropAcc = 0
	if !e.ctrl.Spawn() {
		return e.gameOver()
	}
	p := e.ctrl.Active()
	return []Event{{Kind: EventSpawned, Piece: p.Kind, Origin: p.Origin}}
}

// SpawnKind replaces the active piece with a specific kind, dropping whatever
// was falling. Sandbox hosts use it to bring in test shapes. A spawn that does
// not fit leaves the current piece in play and returns nil.
func (e *Engine) SpawnKind(kind Kind) []Event {
	if e.state != StatePlaying || !kind.Valid() {
		return nil
	}
	shape := ShapeOf(kind)
	if !CanPlace(e.grid, shape, e.ctrl.SpawnOrigin(shape)) {
		e.logger.Debug("spawn blocked", "kind", kind)
		return nil
	}
	e.dropAcc = 0
	e.ctrl.SpawnKind(kind)
	p := e.ctrl.Active()
	return []Event{{Kind: EventSpawned, Piece: p.Kind, Origin: p.Origin}}
}

func (e *Engine) gameOver() []Event {
	e.state = StateGameOver
	e.lock.Cancel()
	e.logger.Info("game over", "score", e.score.Total(), "pieces", e.pieces, "cleared", e.cleared)
	return []Event{{Kind: EventGameOver}}
}

// Move shifts the active piece in grid axes.
func (e *Engine) Move(dx, dy, dz int) bool {
	if e.state != StatePlaying {
		return false
	}
	return e.ctrl.Move(dx, dy, dz)
}

// MoveRelative shifts the active piece horizontally as the viewer sees the field.
func (e *Engine) MoveRelative(dx, dz int) bool {
	gx, gz := RelativeToField(dx, dz, e.FieldStep())
	return e.Move(gx, 0, gz)
}

// SoftDrop moves the piece one cell down.
func (e *Engine) SoftDrop() bool {
	return e.Move(0, -1, 0)
}

// Rotate turns the active piece according to cmd and the field orientation.
func (e *Engine) Rotate(cmd RotateCommand) bool {
	if e.state != StatePlaying {
		return false
	}
	return e.ctrl.Rotate(cmd, e.FieldStep())
}

// RotateField turns the viewing frame a quarter turn; dir > 0 is counter-clockwise.
func (e *Engine) RotateField(dir int) int {
	if e.state != StatePlaying || dir == 0 {
		return e.fieldRotation
	}
	step := 90
	if dir < 0 {
		step = -90
	}
	e.fieldRotation = NormalizeRotation(e.fieldRotation + step)
	return e.fieldRotation
}

// FieldRotation returns the field orientation in degrees.
func (e *Engine) FieldRotation() int { return e.fieldRotation }

// FieldStep returns the field orientation as a quarter-turn count in [0,3].
func (e *Engine) FieldStep() int { return e.fieldRotation / 90 % 4 }

// HardDrop drops the piece to its resting height. A piece that is already
// resting with a running grace period is locked immediately.
func (e *Engine) HardDrop() []Event {
	if e.state != StatePlaying {
		return nil
	}
	p := e.ctrl.Active()
	if p == nil {
		return nil
	}
	target, _ := e.ctrl.DropTarget()
	if target.Y < p.Origin.Y {
		e.ctrl.Move(0, target.Y-p.Origin.Y, 0)
		return nil
	}
	if e.lock.ForceLock() {
		return e.lockPiece()
	}
	return nil
}

// ForceLock locks the piece now if its grace period is running.
func (e *Engine) ForceLock() []Event {
	if e.state != StatePlaying || e.ctrl.Active() == nil {
		return nil
	}
	if !e.lock.ForceLock() {
		return nil
	}
	return e.lockPiece()
}

// SetDifficulty changes the minimum cuboid edge used by later clear passes.
func (e *Engine) SetDifficulty(level int) error {
	if level < MinEdgeLowest || level > MinEdgeHighest {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidDifficulty, level, MinEdgeLowest, MinEdgeHighest)
	}
	e.minEdge = level
	return nil
}

// Difficulty returns the minimum cuboid edge in force.
func (e *Engine) Difficulty() int { return e.minEdge }

// SetDropInterval changes the automatic descent period; non-positive values are ignored.
func (e *Engine) SetDropInterval(d time.Duration) {
	if d > 0 {
		e.dropInterval = d
	}
}

// DropInterval returns the automatic descent period in force.
func (e *Engine) DropInterval() time.Duration { return e.dropInterval }

// ToggleColoredMode flips the cosmetic colour flag and returns the new value.
func (e *Engine) ToggleColoredMode() bool {
	e.colored = !e.colored
	return e.colored
}

// Pause freezes play and the lock-delay timer.
func (e *Engine) Pause() bool {
	if e.state != StatePlaying {
		return false
	}
	e.state = StatePaused
	e.lock.Pause(e.clock.Now())
	return true
}

// Resume continues a paused game.
func (e *Engine) Resume() bool {
	if e.state != StatePaused {
		return false
	}
	e.state = StatePlaying
	e.lock.Resume(e.clock.Now())
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.state == StatePaused {
		return e.Resume()
	}
	return e.Pause()
}

// Tick advances game time by dt and runs automatic descent and the lock delay.
// Game time keeps advancing while paused so pauses are measured.
func (e *Engine) Tick(dt time.Duration) []Event {
	e.clock.Advance(dt)
	e.ticks++
	if e.state != StatePlaying {
		return nil
	}

	if dt > 0 {
		e.dropAcc += dt
	}
	for e.dropAcc >= e.dropInterval {
		e.dropAcc -= e.dropInterval
		e.ctrl.Move(0, -1, 0)
	}

	return e.updateLockDelay()
}

func (e *Engine) updateLockDelay() []Event {
	if e.ctrl.Active() == nil {
		return nil
	}
	now := e.clock.Now()
	if !e.lock.Active() {
		if !e.ctrl.CanDescend() {
			e.lock.Start(now)
		}
		return nil
	}
	if !e.lock.Expired(now, e.cfg.LockDelay) {
		return nil
	}
	if e.ctrl.Move(0, -1, 0) {
		return nil
	}
	e.lock.Cancel()
	return e.lockPiece()
}

// lockPiece fixes the active piece, runs the clear pass, scores and spawns.
func (e *Engine) lockPiece() []Event {
	p := e.ctrl.take()
	if p == nil {
		return nil
	}
	e.lock.Cancel()

	if skipped := e.grid.Place(p.Kind, p.Shape, p.Origin); skipped > 0 {
		e.logger.Warn("piece placed with skipped cells", "kind", p.Kind, "origin", p.Origin, "skipped", skipped)
	}
	e.pieces++

	ctx := e.scoreContext()
	points := e.scorer.PlacementPoints(Placement{Kind: p.Kind, Blocks: len(p.Shape)}, ctx)
	e.score.Add(points)
	events := []Event{{Kind: EventLocked, Piece: p.Kind, Origin: p.Origin, Points: max(points, 0)}}

	res := Clear(e.grid, p.Cells(), ClearOptions{
		MinEdge:         e.minEdge,
		MaxIterations:   e.cfg.MaxIterations,
		MaxPlaneRetries: e.cfg.MaxPlaneRetries,
		Logger:          e.logger,
	})
	if !res.Empty() {
		clearPoints := e.scorer.ClearPoints(res, ctx)
		e.score.Add(clearPoints)
		e.cleared += res.Cells()
		events = append(events, Event{Kind: EventCleared, Piece: p.Kind, Clear: res, Points: max(clearPoints, 0)})
		e.logger.Debug("clear pass",
			"cuboids", len(res.Cuboids),
			"planes", res.Planes,
			"cells", res.Cells(),
			"points", clearPoints,
		)
	}

	return append(events, e.spawn()...)
}

func (e *Engine) scoreContext() ScoreContext {
	return ScoreContext{Width: e.cfg.Width, Depth: e.cfg.Depth, MinEdge: e.minEdge}
}
