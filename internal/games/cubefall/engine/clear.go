package engine

import (
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
)

const (
	// DefaultMaxIterations bounds the cuboid expansion queue.
	DefaultMaxIterations = 1000
	// DefaultMaxPlaneRetries bounds the same-height rechecks in the plane sweep.
	DefaultMaxPlaneRetries = 20
)

// Cuboid is an axis-aligned box of cells.
type Cuboid struct {
	Min  Vec3
	Size Vec3
}

// Volume returns the number of cells in the box.
func (c Cuboid) Volume() int {
	return c.Size.X * c.Size.Y * c.Size.Z
}

// MinEdge returns the shortest edge length.
func (c Cuboid) MinEdge() int {
	return min(c.Size.X, c.Size.Y, c.Size.Z)
}

// Contains reports whether v lies inside the box.
func (c Cuboid) Contains(v Vec3) bool {
	return v.X >= c.Min.X && v.X < c.Min.X+c.Size.X &&
		v.Y >= c.Min.Y && v.Y < c.Min.Y+c.Size.Y &&
		v.Z >= c.Min.Z && v.Z < c.Min.Z+c.Size.Z
}

// Cells lists every cell of the box.
func (c Cuboid) Cells() []Vec3 {
	cells := make([]Vec3, 0, c.Volume())
	for y := c.Min.Y; y < c.Min.Y+c.Size.Y; y++ {
		for z := c.Min.Z; z < c.Min.Z+c.Size.Z; z++ {
			for x := c.Min.X; x < c.Min.X+c.Size.X; x++ {
				cells = append(cells, Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return cells
}

// ClearOptions parameterizes one clear pass.
type ClearOptions struct {
	MinEdge         int // Inclusive minimum edge for a destroyable cuboid
	MaxIterations   int
	MaxPlaneRetries int
	Logger          *log.Logger
}

// ClearResult reports what one clear pass removed.
type ClearResult struct {
	Cuboids     []Cuboid
	CuboidCells int
	Planes      int
	PlaneCells  int
	Truncated   bool // An iteration ceiling was hit
}

// Cells returns the total number of cells removed.
func (r ClearResult) Cells() int {
	return r.CuboidCells + r.PlaneCells
}

// Empty reports whether nothing was removed.
func (r ClearResult) Empty() bool {
	return r.Cells() == 0
}

// Clear runs both clearing phases against g, seeded from the cells of the piece
// that was just placed:
//
//   - cuboid expansion: from each seed find the largest solid box containing it;
//     boxes with every edge >= MinEdge are destroyed and their occupied
//     neighbours become new seeds. Boxes are found on the grid as it stood at
//     the start of the pass and may overlap. Destroyed cells are removed in one
//     batch, followed by one gravity pass.
//   - plane sweep: from the top down, every completely filled horizontal plane
//     is removed with gravity applied after each removal, rechecking the same height.
func Clear(g *Grid, seeds []Vec3, opts ClearOptions) ClearResult {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.MaxPlaneRetries <= 0 {
		opts.MaxPlaneRetries = DefaultMaxPlaneRetries
	}

	var res ClearResult
	expandCuboids(g, seeds, opts, &res)
	sweepPlanes(g, opts, &res)
	return res
}

func expandCuboids(g *Grid, seeds []Vec3, opts ClearOptions, res *ClearResult) {
	processed := intmap.New[int, struct{}](len(g.cells))
	doomedSet := intmap.New[int, struct{}](len(g.cells))
	found := make(map[Cuboid]struct{})
	search := newBoxSearch(g)

	queue := make([]Vec3, 0, len(seeds))
	queue = append(queue, seeds...)
	var doomed []Vec3

	iterations := 0
	for len(queue) > 0 {
		if iterations >= opts.MaxIterations {
			res.Truncated = true
			if opts.Logger != nil {
				opts.Logger.Warn("cuboid expansion hit iteration ceiling",
					"iterations", iterations,
					"pending", len(queue),
					"found", len(res.Cuboids),
				)
			}
			break
		}
		iterations++

		cell := queue[0]
		queue = queue[1:]
		if !g.InBounds(cell) {
			continue
		}
		idx := g.index(cell)
		if _, done := processed.Get(idx); done {
			continue
		}
		processed.Put(idx, struct{}{})

		box, ok := search.largestAround(cell)
		if !ok || box.MinEdge() < opts.MinEdge {
			continue
		}
		if _, seen := found[box]; seen {
			continue
		}
		found[box] = struct{}{}
		res.Cuboids = append(res.Cuboids, box)

		// Boxes are searched on the grid as it stood before this pass, so two
		// boxes may share cells. Each cell is still removed once.
		for _, c := range box.Cells() {
			i := g.index(c)
			if _, dup := doomedSet.Get(i); dup {
				continue
			}
			doomedSet.Put(i, struct{}{})
			doomed = append(doomed, c)
		}

		for _, c := range box.Cells() {
			for _, d := range faceNeighbours {
				n := c.Add(d)
				if !g.InBounds(n) || box.Contains(n) || g.At(n) == KindNone {
					continue
				}
				if _, done := processed.Get(g.index(n)); done {
					continue
				}
				queue = append(queue, n)
			}
		}
	}

	if len(doomed) == 0 {
		return
	}
	res.CuboidCells += g.ClearCells(doomed)
	g.ApplyGravity()
}

func sweepPlanes(g *Grid, opts ClearOptions, res *ClearResult) {
	for y := g.H - 1; y >= 0; y-- {
		retries := 0
		for g.PlaneFull(y) {
			if retries >= opts.MaxPlaneRetries {
				res.Truncated = true
				if opts.Logger != nil {
					opts.Logger.Warn("plane sweep hit retry ceiling", "y", y, "retries", retries)
				}
				break
			}
			retries++
			res.PlaneCells += g.ClearPlane(y)
			res.Planes++
			g.ApplyGravity()
		}
	}
}

// boxSearch finds maximal solid boxes using a 3D prefix sum over the occupied
// cells, so every box test is O(1). The grid must not change while it is in use.
type boxSearch struct {
	g   *Grid
	sum []int
}

func newBoxSearch(g *Grid) *boxSearch {
	s := &boxSearch{
		g:   g,
		sum: make([]int, (g.W+1)*(g.H+1)*(g.D+1)),
	}
	s.build()
	return s
}

func (s *boxSearch) at(x, y, z int) int {
	return s.sum[(y*(s.g.D+1)+z)*(s.g.W+1)+x]
}

func (s *boxSearch) available(v Vec3) bool {
	return s.g.InBounds(v) && s.g.At(v) != KindNone
}

func (s *boxSearch) build() {
	g := s.g
	for y := 1; y <= g.H; y++ {
		for z := 1; z <= g.D; z++ {
			for x := 1; x <= g.W; x++ {
				v := 0
				if s.available(Vec3{X: x - 1, Y: y - 1, Z: z - 1}) {
					v = 1
				}
				v += s.at(x-1, y, z) + s.at(x, y-1, z) + s.at(x, y, z-1) -
					s.at(x-1, y-1, z) - s.at(x-1, y, z-1) - s.at(x, y-1, z-1) +
					s.at(x-1, y-1, z-1)
				s.sum[(y*(g.D+1)+z)*(g.W+1)+x] = v
			}
		}
	}
}

// count returns the number of available cells in the inclusive box [lo, hi].
func (s *boxSearch) count(lo, hi Vec3) int {
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X+1, hi.Y+1, hi.Z+1
	return s.at(x1, y1, z1) -
		s.at(x0, y1, z1) - s.at(x1, y0, z1) - s.at(x1, y1, z0) +
		s.at(x0, y0, z1) + s.at(x0, y1, z0) + s.at(x1, y0, z0) -
		s.at(x0, y0, z0)
}

// largestAround returns the largest solid box that contains cell. Ties keep the
// first box found in scan order. It fails when the cell itself is not available.
func (s *boxSearch) largestAround(cell Vec3) (Cuboid, bool) {
	if !s.available(cell) {
		return Cuboid{}, false
	}

	g := s.g
	best := Cuboid{Min: cell, Size: Vec3{X: 1, Y: 1, Z: 1}}
	bestVol := 1

	for x0 := cell.X; x0 >= 0; x0-- {
		for y0 := cell.Y; y0 >= 0; y0-- {
			for z0 := cell.Z; z0 >= 0; z0-- {
				lo := Vec3{X: x0, Y: y0, Z: z0}
				if !s.solid(lo, cell) {
					break
				}
				for x1 := cell.X; x1 < g.W; x1++ {
					if !s.solid(lo, Vec3{X: x1, Y: cell.Y, Z: cell.Z}) {
						break
					}
					for y1 := cell.Y; y1 < g.H; y1++ {
						if !s.solid(lo, Vec3{X: x1, Y: y1, Z: cell.Z}) {
							break
						}
						for z1 := cell.Z; z1 < g.D; z1++ {
							hi := Vec3{X: x1, Y: y1, Z: z1}
							if !s.solid(lo, hi) {
								break
							}
							size := Vec3{X: x1 - x0 + 1, Y: y1 - y0 + 1, Z: z1 - z0 + 1}
							if vol := size.X * size.Y * size.Z; vol > bestVol {
								best = Cuboid{Min: lo, Size: size}
								bestVol = vol
							}
						}
					}
				}
			}
		}
	}
	return best, true
}

func (s *boxSearch) solid(lo, hi Vec3) bool {
	vol := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	return s.count(lo, hi) == vol
}
