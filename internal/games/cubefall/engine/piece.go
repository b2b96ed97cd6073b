package engine

import "math/rand"

// Piece is the falling piece: its kind, current (rotated) shape and origin.
type Piece struct {
	Kind   Kind
	Shape  Shape
	Origin Vec3
}

// Cells returns the absolute cells the piece covers.
func (p Piece) Cells() []Vec3 {
	return p.Shape.Cells(p.Origin)
}

// Controller owns the active piece and the next-piece slot.
// Every mutation is validated against the grid with CanPlace.
type Controller struct {
	grid   *Grid
	lock   *LockDelay
	clock  *Clock
	rng    *rand.Rand
	bag    []Kind
	active *Piece
	next   Kind
}

// NewController binds a controller to the grid, lock-delay timer and clock it drives.
func NewController(g *Grid, lock *LockDelay, clock *Clock, rng *rand.Rand, bag []Kind) *Controller {
	return &Controller{
		grid:  g,
		lock:  lock,
		clock: clock,
		rng:   rng,
		bag:   append([]Kind(nil), bag...),
	}
}

// Active returns the falling piece, or nil.
func (c *Controller) Active() *Piece {
	return c.active
}

// Next returns the queued kind (KindNone before the first spawn).
func (c *Controller) Next() Kind {
	return c.next
}

// Clear drops the active piece and the next slot.
func (c *Controller) Clear() {
	c.active = nil
	c.next = KindNone
}

// SpawnOrigin is where a piece of the given shape enters the grid: horizontal
// center, two rows below the top, lowered as needed so tall shapes fit.
func (c *Controller) SpawnOrigin(shape Shape) Vec3 {
	origin := Vec3{X: c.grid.W / 2, Y: c.grid.H - 2, Z: c.grid.D / 2}
	if _, hi := shape.Bounds(); origin.Y+hi.Y > c.grid.H-1 {
		origin.Y = c.grid.H - 1 - hi.Y
	}
	return origin
}

// Spawn brings the next piece into play and refills the next slot.
// It returns false, without creating a piece, when the spawn cells are blocked.
func (c *Controller) Spawn() bool {
	kind := c.next
	if kind == KindNone {
		kind = c.randomKind()
	}
	c.next = c.randomKind()
	return c.spawn(kind)
}

// SpawnKind spawns a specific kind, leaving the next slot untouched.
func (c *Controller) SpawnKind(kind Kind) bool {
	if !kind.Valid() {
		return false
	}
	return c.spawn(kind)
}

func (c *Controller) spawn(kind Kind) bool {
	shape := ShapeOf(kind)
	origin := c.SpawnOrigin(shape)
	if !CanPlace(c.grid, shape, origin) {
		c.active = nil
		return false
	}
	c.active = &Piece{Kind: kind, Shape: shape, Origin: origin}
	c.lock.Cancel()
	return true
}

func (c *Controller) randomKind() Kind {
	if len(c.bag) == 0 {
		return StandardKinds[c.rng.Intn(len(StandardKinds))]
	}
	return c.bag[c.rng.Intn(len(c.bag))]
}

// Move shifts the active piece if the destination is free.
// A sideways move cancels the lock delay; a downward move restarts it.
func (c *Controller) Move(dx, dy, dz int) bool {
	if c.active == nil {
		return false
	}
	dest := c.active.Origin.Add(Vec3{X: dx, Y: dy, Z: dz})
	if !CanPlace(c.grid, c.active.Shape, dest) {
		return false
	}
	c.active.Origin = dest
	switch {
	case dx != 0 || dz != 0:
		c.lock.Cancel()
	case dy < 0:
		c.lock.Start(c.clock.Now())
	}
	return true
}

// CanDescend reports whether the active piece could move one cell down.
func (c *Controller) CanDescend() bool {
	if c.active == nil {
		return false
	}
	return CanPlace(c.grid, c.active.Shape, c.active.Origin.Add(Vec3{Y: -1}))
}

// Rotate turns the active piece in place around the axis cmd maps to under
// fieldStep. There is no wall kick: a blocked rotation is rejected.
func (c *Controller) Rotate(cmd RotateCommand, fieldStep int) bool {
	if c.active == nil {
		return false
	}
	rotated := c.active.Shape.Rotate(AxisFor(cmd, fieldStep))
	if !CanPlace(c.grid, rotated, c.active.Origin) {
		return false
	}
	c.active.Shape = rotated
	return true
}

// DropTarget returns the lowest origin the active piece reaches by falling straight down.
func (c *Controller) DropTarget() (Vec3, bool) {
	if c.active == nil {
		return Vec3{}, false
	}
	target := c.active.Origin
	for CanPlace(c.grid, c.active.Shape, target.Add(Vec3{Y: -1})) {
		target.Y--
	}
	return target, true
}

// take removes the active piece from play and returns it.
func (c *Controller) take() *Piece {
	p := c.active
	c.active = nil
	return p
}
