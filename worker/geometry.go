package worker

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbind/physics"
)

const (
	planeExtent    = 1000.0
	particleRadius = 0.05
)

var errDegenerate = errors.New("worker: degenerate geometry")

type geomKind int

const (
	circleGeom geomKind = iota
	polyGeom
	segmentGeom
)

// geom is one collision shape in body-local coordinates.
type geom struct {
	kind     geomKind
	radius   float64
	offset   cp.Vector
	verts    []cp.Vector
	a, b     cp.Vector
	material *physics.Material
}

func (g geom) shape(body *cp.Body) *cp.Shape {
	switch g.kind {
	case circleGeom:
		return cp.NewCircle(body, g.radius, g.offset)
	case segmentGeom:
		return cp.NewSegment(body, g.a, g.b, g.radius)
	default:
		return cp.NewPolyShape(body, len(g.verts), g.verts, cp.NewTransformIdentity(), g.radius)
	}
}

// moved returns g rotated by angle and then translated by offset.
func (g geom) moved(offset cp.Vector, angle float64) geom {
	sin, cos := math.Sincos(angle)
	tf := func(v cp.Vector) cp.Vector {
		return cp.Vector{X: v.X*cos - v.Y*sin + offset.X, Y: v.X*sin + v.Y*cos + offset.Y}
	}
	out := g
	out.offset = tf(g.offset)
	out.a, out.b = tf(g.a), tf(g.b)
	if g.verts != nil {
		out.verts = make([]cp.Vector, len(g.verts))
		for i, v := range g.verts {
			out.verts[i] = tf(v)
		}
	}
	return out
}

func alwaysStatic(shape physics.ShapeType) bool {
	switch shape {
	case physics.Plane, physics.Trimesh, physics.Heightfield:
		return true
	}
	return false
}

// geometry builds the shapes of one body from its constructor args.
func geometry(shape physics.ShapeType, props physics.WireProps) ([]geom, error) {
	var (
		g   []geom
		err error
	)
	if shape == physics.Compound {
		g, err = compound(props.Shapes)
	} else {
		g, err = primitive(shape, props.Args)
	}
	if err != nil {
		return nil, err
	}
	if len(g) == 0 {
		return nil, fmt.Errorf("%w: %s without shapes", errDegenerate, shape)
	}
	return g, nil
}

func primitive(shape physics.ShapeType, args []any) ([]geom, error) {
	switch shape {
	case physics.Box:
		hx, hy := argFloat(args, 0, 1), argFloat(args, 1, 1)
		return []geom{rect(hx, hy)}, nil
	case physics.Sphere:
		return []geom{{kind: circleGeom, radius: argFloat(args, 0, 1)}}, nil
	case physics.Plane:
		return []geom{{kind: segmentGeom, a: cp.Vector{X: -planeExtent}, b: cp.Vector{X: planeExtent}}}, nil
	case physics.Cylinder:
		r := math.Max(argFloat(args, 0, 1), argFloat(args, 1, 1))
		return []geom{rect(r, argFloat(args, 2, 1)/2)}, nil
	case physics.Particle:
		return []geom{{kind: circleGeom, radius: particleRadius}}, nil
	case physics.ConvexPolyhedron:
		return convexPolyhedron(args)
	case physics.Trimesh:
		return trimesh(args)
	case physics.Heightfield:
		return heightfield(args)
	}
	return nil, fmt.Errorf("worker: unsupported shape %q", shape)
}

func rect(hx, hy float64) geom {
	return geom{kind: polyGeom, verts: []cp.Vector{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	}}
}

func convexPolyhedron(args []any) ([]geom, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: convex polyhedron without vertices", errDegenerate)
	}
	verts, ok := physics.ToTriplets(args[0])
	if !ok || len(verts) < 3 {
		return nil, fmt.Errorf("%w: convex polyhedron needs at least 3 vertices", errDegenerate)
	}
	g := geom{kind: polyGeom, verts: make([]cp.Vector, len(verts))}
	for i, v := range verts {
		g.verts[i] = cp.Vector{X: v[0], Y: v[1]}
	}
	return []geom{g}, nil
}

// trimesh turns every distinct triangle edge into a segment. args are
// [vertices (flat x,y,z list), indices].
func trimesh(args []any) ([]geom, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: trimesh needs vertices and indices", errDegenerate)
	}
	flat, ok := physics.ToFloats(args[0])
	if !ok || len(flat)%3 != 0 {
		return nil, fmt.Errorf("%w: trimesh vertices must be a flat xyz list", errDegenerate)
	}
	indices, ok := physics.ToInts(args[1])
	if !ok || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: trimesh indices must come in triples", errDegenerate)
	}
	n := len(flat) / 3
	vertex := func(i int) cp.Vector { return cp.Vector{X: flat[i*3], Y: flat[i*3+1]} }

	type edge struct{ a, b int }
	seen := make(map[edge]bool)
	var out []geom
	for t := 0; t < len(indices); t += 3 {
		tri := indices[t : t+3]
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a < 0 || b < 0 || a >= n || b >= n {
				return nil, fmt.Errorf("%w: trimesh index out of range", errDegenerate)
			}
			if a > b {
				a, b = b, a
			}
			if a == b || seen[edge{a, b}] {
				continue
			}
			seen[edge{a, b}] = true
			out = append(out, geom{kind: segmentGeom, a: vertex(a), b: vertex(b)})
		}
	}
	return out, nil
}

// heightfield chains segments between successive heights. args are
// [data, {elementSize}]; data is a list of heights or of height rows, in
// which case the first column is used.
func heightfield(args []any) ([]geom, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: heightfield without data", errDegenerate)
	}
	heights, ok := physics.ToFloats(args[0])
	if !ok {
		rows, isList := args[0].([]any)
		if !isList {
			if fs, isFloats := args[0].([][]float64); isFloats {
				for _, r := range fs {
					rows = append(rows, r)
				}
			}
		}
		for _, r := range rows {
			fs, ok := physics.ToFloats(r)
			if !ok || len(fs) == 0 {
				return nil, fmt.Errorf("%w: heightfield rows must be number lists", errDegenerate)
			}
			heights = append(heights, fs[0])
		}
	}
	if len(heights) < 2 {
		return nil, fmt.Errorf("%w: heightfield needs at least 2 samples", errDegenerate)
	}

	size := 1.0
	if len(args) > 1 {
		if opts, ok := args[1].(map[string]any); ok {
			if f, ok := physics.ToFloat(opts["elementSize"]); ok && f > 0 {
				size = f
			}
		}
	}
	out := make([]geom, 0, len(heights)-1)
	for i := 0; i+1 < len(heights); i++ {
		out = append(out, geom{
			kind: segmentGeom,
			a:    cp.Vector{X: float64(i) * size, Y: heights[i]},
			b:    cp.Vector{X: float64(i+1) * size, Y: heights[i+1]},
		})
	}
	return out, nil
}

func compound(children []physics.CompoundShape) ([]geom, error) {
	var out []geom
	for i, child := range children {
		if child.Type == physics.Compound || alwaysStatic(child.Type) {
			return nil, fmt.Errorf("worker: compound child %d: %s cannot be nested", i, child.Type)
		}
		gs, err := primitive(child.Type, physics.TransformArgs(child.Type, child.Args))
		if err != nil {
			return nil, fmt.Errorf("worker: compound child %d: %w", i, err)
		}
		var offset cp.Vector
		if p := child.Position; p != nil {
			offset = cp.Vector{X: p[0], Y: p[1]}
		}
		var angle float64
		if r := child.Rotation; r != nil {
			angle = r[2]
		}
		for _, g := range gs {
			g = g.moved(offset, angle)
			g.material = child.Material
			out = append(out, g)
		}
	}
	return out, nil
}

func argFloat(args []any, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	if f, ok := physics.ToFloat(args[i]); ok {
		return f
	}
	return def
}
