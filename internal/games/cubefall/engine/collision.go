package engine

// CanPlace reports whether shape fits at origin: every covered cell must be
// inside the grid and empty.
func CanPlace(g *Grid, shape Shape, origin Vec3) bool {
	for _, off := range shape {
		if !g.IsEmpty(origin.Add(off)) {
			return false
		}
	}
	return true
}
