// Package draw renders debug views of a physics world with ebiten.
package draw

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbind/common"
	"github.com/milk9111/physbind/debug"
	"github.com/milk9111/physbind/physics"
)

const (
	circleSegments = 24
	dotSize        = 4
	planeHalfWidth = 1000
)

// Camera maps world units (Y up) to screen pixels (Y down). X, Y is the
// world point drawn at the screen centre.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) toScreen(screen *ebiten.Image, v cp.Vector) (float32, float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	return float32(cx + (v.X-c.X)*zoom), float32(cy - (v.Y-c.Y)*zoom)
}

// StateFunc looks up the latest simulated state of a body.
type StateFunc func(id string) (physics.BodyState, bool)

// Space draws every shape of a Chipmunk space.
func Space(screen *ebiten.Image, space *cp.Space, cam Camera) {
	if screen == nil || space == nil {
		return
	}
	cp.DrawSpace(space, &spaceDrawer{screen: screen, cam: cam})
}

// Draw outlines every collected body at its latest state, falling back to
// the props it was registered with.
func Draw(screen *ebiten.Image, c *debug.Collector, state StateFunc, cam Camera) {
	if screen == nil || c == nil {
		return
	}
	d := &spaceDrawer{screen: screen, cam: cam}
	outline := cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	for _, e := range c.Snapshot() {
		pos, angle := placement(e, state)
		args := physics.TransformArgs(e.Shape, e.Props.Args)
		switch e.Shape {
		case physics.Sphere:
			d.DrawCircle(pos, angle, arg(args, 0, 1), outline, outline, nil)
		case physics.Particle:
			d.DrawDot(dotSize, pos, outline, nil)
		case physics.Plane:
			a := rotate(cp.Vector{X: -planeHalfWidth}, angle).Add(pos)
			b := rotate(cp.Vector{X: planeHalfWidth}, angle).Add(pos)
			d.DrawSegment(a, b, outline, nil)
		case physics.Box, physics.Cylinder:
			hx, hy := arg(args, 0, 1), arg(args, 1, 1)
			if e.Shape == physics.Cylinder {
				hx, hy = math.Max(arg(args, 0, 1), arg(args, 1, 1)), arg(args, 2, 1)/2
			}
			corners := []cp.Vector{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}}
			for i := range corners {
				corners[i] = rotate(corners[i], angle).Add(pos)
			}
			d.DrawPolygon(len(corners), corners, 0, outline, outline, nil)
		default:
			d.DrawDot(dotSize*2, pos, outline, nil)
		}
	}
}

// Overlay prints the live body count and ids in the top-left corner.
func Overlay(screen *ebiten.Image, c *debug.Collector, limit int) {
	if screen == nil || c == nil {
		return
	}
	snap := c.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "bodies: %d\n", len(snap))
	for i, e := range snap {
		if i == limit {
			fmt.Fprintf(&b, "... %d more\n", len(snap)-limit)
			break
		}
		fmt.Fprintf(&b, "%s %s\n", e.Shape, e.ID)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)
}

func placement(e debug.Entry, state StateFunc) (cp.Vector, float64) {
	if state != nil {
		if st, ok := state(e.ID); ok {
			q := st.Quaternion
			return cp.Vector{X: st.Position[0], Y: st.Position[1]}, common.ZAngle(q[0], q[1], q[2], q[3])
		}
	}
	var pos cp.Vector
	if p := e.Props.Position; p != nil {
		pos = cp.Vector{X: p[0], Y: p[1]}
	}
	var angle float64
	switch {
	case e.Props.Quaternion != nil:
		q := e.Props.Quaternion
		angle = common.ZAngle(q[0], q[1], q[2], q[3])
	case e.Props.Rotation != nil:
		angle = e.Props.Rotation[2]
	}
	return pos, angle
}

func rotate(v cp.Vector, angle float64) cp.Vector {
	sin, cos := math.Sincos(angle)
	return cp.Vector{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

func arg(args []any, i int, def float64) float64 {
	if i < len(args) {
		if f, ok := physics.ToFloat(args[i]); ok {
			return f
		}
	}
	return def
}

type spaceDrawer struct {
	screen *ebiten.Image
	cam    Camera
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = dotSize
	}
	half := size / 2 / d.zoom()
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	c := cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
	if shape.Body() != nil && shape.Body().IsSleeping() {
		return fade(c, 0.6)
	}
	return c
}

// fade moves c towards grey by t.
func fade(c cp.FColor, t float32) cp.FColor {
	const grey = 0.5
	return cp.FColor{
		R: common.Lerp(c.R, grey, t),
		G: common.Lerp(c.G, grey, t),
		B: common.Lerp(c.B, grey, t),
		A: c.A,
	}
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func (d *spaceDrawer) zoom() float64 {
	if d.cam.Zoom <= 0 {
		return 1
	}
	return d.cam.Zoom
}

func (d *spaceDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.cam.toScreen(d.screen, a)
	x2, y2 := d.cam.toScreen(d.screen, b)
	ebitenutil.DrawLine(d.screen, float64(x1), float64(y1), float64(x2), float64(y2), toNRGBA(c))
}

func (d *spaceDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *spaceDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(circleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(c.R) * 255),
		G: uint8(common.Clamp01(c.G) * 255),
		B: uint8(common.Clamp01(c.B) * 255),
		A: uint8(common.Clamp01(c.A) * 255),
	}
}
