package engine

// Grid is the dense occupancy volume.
// Cells are stored flat: index = (y*D + z)*W + x, so one horizontal plane is contiguous.
type Grid struct {
	W, H, D int
	cells   []Kind
}

// GridStats summarizes occupancy.
type GridStats struct {
	Total  int
	Filled int
	Empty  int
}

// NewGrid allocates an empty grid.
func NewGrid(w, h, d int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		D:     d,
		cells: make([]Kind, w*h*d),
	}
}

func (g *Grid) index(v Vec3) int {
	return (v.Y*g.D+v.Z)*g.W + v.X
}

func (g *Grid) coord(i int) Vec3 {
	plane := g.W * g.D
	return Vec3{X: i % g.W, Y: i / plane, Z: (i % plane) / g.W}
}

// InBounds reports whether v addresses a cell of the grid.
func (g *Grid) InBounds(v Vec3) bool {
	return v.X >= 0 && v.X < g.W &&
		v.Y >= 0 && v.Y < g.H &&
		v.Z >= 0 && v.Z < g.D
}

// At returns the kind stored at v, or KindNone when out of bounds.
func (g *Grid) At(v Vec3) Kind {
	if !g.InBounds(v) {
		return KindNone
	}
	return g.cells[g.index(v)]
}

// IsEmpty reports whether v is inside the grid and unoccupied.
func (g *Grid) IsEmpty(v Vec3) bool {
	return g.InBounds(v) && g.cells[g.index(v)] == KindNone
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Place writes kind into every cell the shape covers at origin.
// Out-of-bounds or already occupied cells are left alone and counted in skipped;
// a placement validated by CanPlace never skips.
func (g *Grid) Place(kind Kind, shape Shape, origin Vec3) (skipped int) {
	for _, off := range shape {
		c := origin.Add(off)
		if !g.InBounds(c) {
			skipped++
			continue
		}
		i := g.index(c)
		if g.cells[i] != KindNone {
			skipped++
			continue
		}
		g.cells[i] = kind
	}
	return skipped
}

// ClearCells empties the given cells and returns how many were occupied.
func (g *Grid) ClearCells(cells []Vec3) int {
	n := 0
	for _, c := range cells {
		if !g.InBounds(c) {
			continue
		}
		i := g.index(c)
		if g.cells[i] != KindNone {
			n++
		}
		g.cells[i] = KindNone
	}
	return n
}

// ApplyGravity compacts every vertical column toward y=0, keeping the order of
// the occupied cells. It returns the number of cells that moved.
func (g *Grid) ApplyGravity() int {
	stride := g.W * g.D
	moved := 0
	for col := 0; col < stride; col++ {
		write := col
		for read := col; read < len(g.cells); read += stride {
			if g.cells[read] == KindNone {
				continue
			}
			if read != write {
				g.cells[write] = g.cells[read]
				g.cells[read] = KindNone
				moved++
			}
			write += stride
		}
	}
	return moved
}

// PlaneFull reports whether every cell of horizontal plane y is occupied.
func (g *Grid) PlaneFull(y int) bool {
	if y < 0 || y >= g.H {
		return false
	}
	plane := g.W * g.D
	for _, k := range g.cells[y*plane : (y+1)*plane] {
		if k == KindNone {
			return false
		}
	}
	return true
}

// ClearPlane empties horizontal plane y and returns how many cells were occupied.
func (g *Grid) ClearPlane(y int) int {
	if y < 0 || y >= g.H {
		return 0
	}
	plane := g.W * g.D
	n := 0
	row := g.cells[y*plane : (y+1)*plane]
	for i, k := range row {
		if k != KindNone {
			n++
		}
		row[i] = KindNone
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Kind, len(g.cells))
	copy(cells, g.cells)
	return &Grid{W: g.W, H: g.H, D: g.D, cells: cells}
}

// Equal reports whether both grids have the same dimensions and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H || g.D != o.D {
		return false
	}
	for i, k := range g.cells {
		if k != o.cells[i] {
			return false
		}
	}
	return true
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, k := range g.cells {
		if k != KindNone {
			n++
		}
	}
	return n
}

// Stats returns filled/empty counts for the whole volume.
func (g *Grid) Stats() GridStats {
	filled := g.FilledCount()
	return GridStats{
		Total:  len(g.cells),
		Filled: filled,
		Empty:  len(g.cells) - filled,
	}
}

// Cells returns a copy of the flat cell slice in index order.
func (g *Grid) Cells() []Kind {
	out := make([]Kind, len(g.cells))
	copy(out, g.cells)
	return out
}

// set writes a single cell. Callers stay inside the package.
func (g *Grid) set(v Vec3, k Kind) {
	if g.InBounds(v) {
		g.cells[g.index(v)] = k
	}
}
