package cubefall

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cubefall/internal/config"
	"github.com/vovakirdan/cubefall/internal/core"
	"github.com/vovakirdan/cubefall/internal/games/cubefall/engine"
)

const (
	nextBoxW = 12
	nextBoxH = 7
	hudW     = 28
	lockBarW = 12
)

// defaultPalette colors the standard kinds; the test shapes stay neutral.
var defaultPalette = map[engine.Kind]core.Color{
	engine.KindI:         core.ColorCyan,
	engine.KindO:         core.ColorYellow,
	engine.KindT:         core.ColorMagenta,
	engine.KindS:         core.ColorGreen,
	engine.KindZ:         core.ColorRed,
	engine.KindJ:         core.ColorBlue,
	engine.KindL:         core.ColorOrange,
	engine.KindTestPlane: core.ColorGray,
	engine.KindTestCube:  core.ColorBrightWhite,
}

// depthShades darken cells further from the viewer, nearest first.
var depthShades = []rune{'█', '▓', '▒', '░'}

func kindPalette(cfg config.CubefallConfig) map[engine.Kind]core.Color {
	p := make(map[engine.Kind]core.Color, len(defaultPalette))
	for k, c := range defaultPalette {
		p[k] = c
	}
	overrides, err := cfg.KindColors()
	if err != nil {
		logger.Warn("ignoring colors table", "err", err)
		return p
	}
	for k, c := range overrides {
		p[k] = c
	}
	return p
}

// view maps grid columns to what the player sees at one field orientation:
// u runs left to right on screen, near grows toward the viewer.
type view struct {
	rx, rz     int // Grid direction of screen-right
	bx, bz     int // Grid direction toward the viewer
	uMin, nMin int
	cols       int
	depth      int
}

func newView(w, d, step int) view {
	v := view{}
	v.rx, v.rz = engine.RelativeToField(1, 0, step)
	v.bx, v.bz = engine.RelativeToField(0, 1, step)

	uMax, nMax := 0, 0
	first := true
	for _, c := range [][2]int{{0, 0}, {w - 1, 0}, {0, d - 1}, {w - 1, d - 1}} {
		u := c[0]*v.rx + c[1]*v.rz
		n := c[0]*v.bx + c[1]*v.bz
		if first {
			v.uMin, uMax, v.nMin, nMax = u, u, n, n
			first = false
			continue
		}
		v.uMin, uMax = min(v.uMin, u), max(uMax, u)
		v.nMin, nMax = min(v.nMin, n), max(nMax, n)
	}
	v.cols = uMax - v.uMin + 1
	v.depth = nMax - v.nMin + 1
	return v
}

// project returns the screen column and nearness of grid column (x, z).
func (v view) project(x, z int) (u, near int) {
	return x*v.rx + z*v.rz - v.uMin, x*v.bx + z*v.bz - v.nMin
}

// layout positions every panel for the current screen.
type layout struct {
	front core.Rect
	top   core.Rect
	next  core.Rect
	hudX  int
	hudY  int
}

func (g *Game) computeLayout(snap engine.Snapshot) layout {
	span := max(snap.Width, snap.Depth)
	frontW, frontH := span*2+2, snap.Height+2
	topW, topH := span*2+2, span+2

	l := layout{}
	l.front = core.NewRect(1, 1, frontW, frontH)
	l.top = core.NewRect(l.front.Right()+1, 1, topW, topH)
	l.next = core.NewRect(l.top.X, l.top.Bottom(), nextBoxW, nextBoxH)
	l.hudX = max(l.top.Right(), l.next.Right()) + 2
	l.hudY = 1
	return l
}

// minSize is the smallest screen the layout fits in.
func (g *Game) minSize() (int, int) {
	snap := g.eng.Snapshot()
	l := g.computeLayout(snap)
	w := l.hudX + hudW
	h := max(l.front.Bottom(), l.next.Bottom()) + 1
	return w, h
}

func (g *Game) layoutCheck() {
	w, h := g.minSize()
	g.tooSmall = g.runtime.ScreenW < w || g.runtime.ScreenH < h
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}
	if g.tooSmall {
		w, h := g.minSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	snap := g.eng.Snapshot()
	l := g.computeLayout(snap)
	v := newView(snap.Width, snap.Depth, snap.FieldStep)

	dst.DrawTextColor(1, 0, strings.ToUpper(g.Title()), core.ColorBrightCyan)
	g.renderFront(dst, snap, v, l.front)
	g.renderTop(dst, snap, v, l.top)
	g.renderNext(dst, snap, l.next)
	g.renderHUD(dst, snap, l.hudX, l.hudY)

	switch snap.State {
	case engine.StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case engine.StateGameOver:
		g.renderOverlay(dst, fmt.Sprintf("Game Over  Score: %d", snap.Score), "Press R to restart")
	}
}

func (g *Game) kindColor(snap engine.Snapshot, k engine.Kind, active bool) core.Color {
	if !snap.Colored {
		if active {
			return core.ColorBrightWhite
		}
		return core.ColorWhite
	}
	if c, ok := g.colors[k]; ok {
		return c
	}
	return core.ColorWhite
}

// renderFront draws the side projection: for each screen column and height
// the cell nearest the viewer, shaded by its distance.
func (g *Game) renderFront(dst *core.Screen, snap engine.Snapshot, v view, r core.Rect) {
	dst.DrawBoxColor(r, core.ColorGray)
	inner := r.Inset(1)
	padX := inner.X + (inner.W-v.cols*2)/2

	type hit struct {
		near int
		kind engine.Kind
	}
	best := make([]hit, v.cols*snap.Height)
	for i := range best {
		best[i].near = -1
	}
	for y := 0; y < snap.Height; y++ {
		for z := 0; z < snap.Depth; z++ {
			for x := 0; x < snap.Width; x++ {
				k := snap.At(x, y, z)
				if k == engine.KindNone {
					continue
				}
				u, n := v.project(x, z)
				i := y*v.cols + u
				if n > best[i].near {
					best[i] = hit{near: n, kind: k}
				}
			}
		}
	}

	row := func(y int) int { return inner.Y + snap.Height - 1 - y }

	for y := 0; y < snap.Height; y++ {
		for u := 0; u < v.cols; u++ {
			h := best[y*v.cols+u]
			if h.near < 0 {
				continue
			}
			dist := min(v.depth-1-h.near, len(depthShades)-1)
			shade := depthShades[dist]
			c := g.kindColor(snap, h.kind, false)
			dst.SetColor(padX+u*2, row(y), shade, c)
			dst.SetColor(padX+u*2+1, row(y), shade, c)
		}
	}

	if snap.Active == nil {
		return
	}
	if snap.Ghost != nil && snap.Ghost.Y != snap.Active.Origin.Y {
		for _, c := range snap.Active.Shape.Cells(*snap.Ghost) {
			u, _ := v.project(c.X, c.Z)
			if best[c.Y*v.cols+u].near >= 0 {
				continue
			}
			dst.SetColor(padX+u*2, row(c.Y), '[', core.ColorGray)
			dst.SetColor(padX+u*2+1, row(c.Y), ']', core.ColorGray)
		}
	}
	pc := g.kindColor(snap, snap.Active.Kind, true)
	for _, c := range snap.Active.Shape.Cells(snap.Active.Origin) {
		u, _ := v.project(c.X, c.Z)
		dst.SetColor(padX+u*2, row(c.Y), '█', pc)
		dst.SetColor(padX+u*2+1, row(c.Y), '█', pc)
	}
}

// renderTop draws the height map seen from above, far rows at the top.
func (g *Game) renderTop(dst *core.Screen, snap engine.Snapshot, v view, r core.Rect) {
	dst.DrawBoxColor(r, core.ColorGray)
	dst.DrawTextColor(r.X+2, r.Y, "Top", core.ColorGray)
	inner := r.Inset(1)
	padX := inner.X + (inner.W-v.cols*2)/2

	for z := 0; z < snap.Depth; z++ {
		for x := 0; x < snap.Width; x++ {
			u, n := v.project(x, z)
			px, py := padX+u*2, inner.Y+n

			height, top := 0, engine.KindNone
			for y := snap.Height - 1; y >= 0; y-- {
				if k := snap.At(x, y, z); k != engine.KindNone {
					height, top = y+1, k
					break
				}
			}
			if height == 0 {
				dst.SetColor(px, py, '·', core.ColorGray)
				continue
			}
			dst.DrawTextColor(px, py, heightLabel(height), g.kindColor(snap, top, false))
		}
	}

	if snap.Active == nil {
		return
	}
	pc := g.kindColor(snap, snap.Active.Kind, true)
	for _, c := range snap.Active.Shape.Cells(snap.Active.Origin) {
		u, n := v.project(c.X, c.Z)
		dst.SetColor(padX+u*2, inner.Y+n, '[', pc)
		dst.SetColor(padX+u*2+1, inner.Y+n, ']', pc)
	}
}

// heightLabel renders a column height in two cells: 1-9 as digits, then letters.
func heightLabel(h int) string {
	switch {
	case h < 10:
		return fmt.Sprintf("%d ", h)
	case h < 36:
		return fmt.Sprintf("%c ", 'a'+h-10)
	default:
		return "##"
	}
}

// renderNext draws the footprint of the queued piece.
func (g *Game) renderNext(dst *core.Screen, snap engine.Snapshot, r core.Rect) {
	dst.DrawBoxColor(r, core.ColorGray)
	dst.DrawTextColor(r.X+2, r.Y, "Next", core.ColorGray)
	if snap.Next == engine.KindNone {
		return
	}
	shape := engine.ShapeOf(snap.Next)
	lo, hi := shape.Bounds()
	inner := r.Inset(1)
	w, d := hi.X-lo.X+1, hi.Z-lo.Z+1
	ox := inner.X + (inner.W-w*2)/2
	oy := inner.Y + (inner.H-d)/2
	c := g.kindColor(snap, snap.Next, false)
	for _, b := range shape {
		px, py := ox+(b.X-lo.X)*2, oy+(b.Z-lo.Z)
		if px < inner.X || px+1 >= inner.Right() || py < inner.Y || py >= inner.Bottom() {
			continue
		}
		dst.SetColor(px, py, '█', c)
		dst.SetColor(px+1, py, '█', c)
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot, x, y int) {
	label := func(row int, name, value string) {
		dst.DrawTextColor(x, y+row, name, core.ColorGray)
		dst.DrawText(x+9, y+row, value)
	}

	label(0, "Score", fmt.Sprintf("%d", snap.Score))
	label(1, "Edge", fmt.Sprintf("%d", snap.MinEdge))
	label(2, "Pieces", fmt.Sprintf("%d", snap.Pieces))
	label(3, "Cleared", fmt.Sprintf("%d", snap.Cleared))
	label(4, "Drop", fmt.Sprintf("%dms", snap.DropInterval.Milliseconds()))
	label(5, "View", fmt.Sprintf("%d°", snap.FieldRotation))
	label(6, "Filled", fmt.Sprintf("%d/%d", snap.Stats.Filled, snap.Stats.Total))

	dst.DrawTextColor(x, y+8, "Lock", core.ColorGray)
	lockColor := core.ColorGreen
	switch {
	case snap.Lock.State == engine.LockPaused:
		lockColor = core.ColorGray
	case snap.Lock.Progress > 0.75:
		lockColor = core.ColorRed
	case snap.Lock.Progress > 0.4:
		lockColor = core.ColorYellow
	}
	dst.DrawTextColor(x+9, y+8, lockBar(snap.Lock.Progress, lockBarW), lockColor)

	colors := "off"
	if snap.Colored {
		colors = "on"
	}
	label(9, "Colors", colors)
	if preset := g.Preset(); preset != "" {
		label(10, "Preset", string(preset))
	}

	if g.flashTicks > 0 {
		msg := fmt.Sprintf("+%d", g.lastPoints)
		if n := len(g.lastClear.Cuboids); n > 0 {
			msg += fmt.Sprintf(" %d cuboid", n)
			if n > 1 {
				msg += "s"
			}
		}
		if n := g.lastClear.Planes; n > 0 {
			msg += fmt.Sprintf(" %d plane", n)
			if n > 1 {
				msg += "s"
			}
		}
		dst.DrawTextColor(x, y+12, msg, core.ColorBrightYellow)
	}
}

// lockBar renders progress in [0,1] as a fixed-width bar.
func lockBar(progress float64, width int) string {
	filled := int(core.ClampF(progress, 0, 1)*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	boxW, boxH := textW+4, 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBoxColor(r, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(r.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+3, line2)
}
