package engine

// Axis selects one of the three principal rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY      // Vertical axis
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// RotateAroundY maps (x,y,z) to (z,y,-x).
func RotateAroundY(v Vec3) Vec3 {
	return Vec3{X: v.Z, Y: v.Y, Z: -v.X}
}

// RotateAroundX maps (x,y,z) to (x,-z,y).
func RotateAroundX(v Vec3) Vec3 {
	return Vec3{X: v.X, Y: -v.Z, Z: v.Y}
}

// RotateAroundZ maps (x,y,z) to (-y,x,z).
func RotateAroundZ(v Vec3) Vec3 {
	return Vec3{X: -v.Y, Y: v.X, Z: v.Z}
}

// Apply rotates a single offset 90 degrees around the axis.
func (a Axis) Apply(v Vec3) Vec3 {
	switch a {
	case AxisX:
		return RotateAroundX(v)
	case AxisZ:
		return RotateAroundZ(v)
	default:
		return RotateAroundY(v)
	}
}

// RotateCommand is a player rotation request, named from the viewer's perspective.
type RotateCommand int

const (
	RotateView     RotateCommand = iota // Spin around the vertical axis
	RotateVertical                      // Tip toward/away from the viewer
	RotateSide                          // Roll sideways
)

func (c RotateCommand) String() string {
	switch c {
	case RotateView:
		return "view"
	case RotateVertical:
		return "vertical"
	case RotateSide:
		return "side"
	default:
		return "unknown"
	}
}

// rotationAxes[command][fieldStep] is the grid axis a command turns around.
// Every quarter turn of the field swaps which wall faces the viewer.
var rotationAxes = [3][4]Axis{
	RotateView:     {AxisY, AxisY, AxisY, AxisY},
	RotateVertical: {AxisZ, AxisX, AxisZ, AxisX},
	RotateSide:     {AxisX, AxisZ, AxisX, AxisZ},
}

// AxisFor returns the rotation axis for cmd under the given field orientation step.
func AxisFor(cmd RotateCommand, fieldStep int) Axis {
	if cmd < RotateView || cmd > RotateSide {
		return AxisY
	}
	return rotationAxes[cmd][normalizeStep(fieldStep)]
}

// RelativeToField remaps a viewer-relative horizontal move into grid axes.
func RelativeToField(dx, dz, fieldStep int) (int, int) {
	switch normalizeStep(fieldStep) {
	case 1:
		return -dz, dx
	case 2:
		return -dx, -dz
	case 3:
		return dz, -dx
	default:
		return dx, dz
	}
}

// NormalizeRotation folds a degree value into [0, 360).
func NormalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

func normalizeStep(step int) int {
	return ((step % 4) + 4) % 4
}
