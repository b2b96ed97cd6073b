package engine

import (
	"fmt"
	"strings"
)

// Vec3 is an integer cell coordinate or offset.
// Y is the vertical axis; gravity pulls toward Y=0.
type Vec3 struct {
	X, Y, Z int
}

// V is shorthand for constructing a Vec3.
func V(x, y, z int) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// faceNeighbours are the six face-adjacent offsets.
var faceNeighbours = [6]Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// Kind identifies a piece type. KindNone marks an empty cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	KindTestPlane // Oversized debugging shape, sandbox only
	KindTestCube  // 2x2x2 debugging shape, sandbox only
)

// StandardKinds are the seven polycubes dealt in a normal game.
var StandardKinds = []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// TestKinds are the oversized shapes added to the sandbox bag.
var TestKinds = []Kind{KindTestPlane, KindTestCube}

var kindNames = map[Kind]string{
	KindNone:      "none",
	KindI:         "I",
	KindO:         "O",
	KindT:         "T",
	KindS:         "S",
	KindZ:         "Z",
	KindJ:         "J",
	KindL:         "L",
	KindTestPlane: "test_plane",
	KindTestCube:  "test_cube",
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is a placeable piece kind.
func (k Kind) Valid() bool {
	return k > KindNone && k <= KindTestCube
}

// ParseKind resolves a kind name as written in config files ("I", "t", "test_cube").
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if k != KindNone && strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("engine: unknown piece kind %q", name)
}

// Shape is a list of block offsets relative to a piece origin.
type Shape []Vec3

var baseShapes = map[Kind]Shape{
	KindI: {{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
	KindO: {{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1}},
	KindT: {{0, 0, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}},
	KindS: {{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {-1, 0, 1}},
	KindZ: {{0, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {1, 0, 1}},
	KindJ: {{0, 0, 0}, {-1, 0, 0}, {1, 0, 0}, {-1, 0, 1}},
	KindL: {{0, 0, 0}, {-1, 0, 0}, {1, 0, 0}, {1, 0, 1}},

	KindTestPlane: testPlaneShape(),
	KindTestCube: {
		{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1},
		{0, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1},
	},
}

// testPlaneShape is a 5x5x5 block with its central vertical column removed.
func testPlaneShape() Shape {
	s := make(Shape, 0, 120)
	for y := -2; y <= 2; y++ {
		for z := -2; z <= 2; z++ {
			for x := -2; x <= 2; x++ {
				if x == 0 && z == 0 {
					continue
				}
				s = append(s, Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return s
}

// ShapeOf returns a fresh copy of the base shape for k, or nil for unknown kinds.
func ShapeOf(k Kind) Shape {
	return baseShapes[k].Clone()
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Equal reports whether both shapes list the same offsets in the same order.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Rotate returns a copy of the shape turned 90 degrees around axis.
func (s Shape) Rotate(axis Axis) Shape {
	out := make(Shape, len(s))
	for i, off := range s {
		out[i] = axis.Apply(off)
	}
	return out
}

// Bounds returns the component-wise minimum and maximum offsets.
func (s Shape) Bounds() (lo, hi Vec3) {
	for i, off := range s {
		if i == 0 {
			lo, hi = off, off
			continue
		}
		lo = Vec3{X: min(lo.X, off.X), Y: min(lo.Y, off.Y), Z: min(lo.Z, off.Z)}
		hi = Vec3{X: max(hi.X, off.X), Y: max(hi.Y, off.Y), Z: max(hi.Z, off.Z)}
	}
	return lo, hi
}

// Cells returns the absolute cells covered by the shape at origin.
func (s Shape) Cells(origin Vec3) []Vec3 {
	cells := make([]Vec3, len(s))
	for i, off := range s {
		cells[i] = origin.Add(off)
	}
	return cells
}
