package physics

// ArgFn maps the args supplied in a body's props (possibly nil) to the
// constructor arguments the worker receives.
type ArgFn func(args []any) []any

var defaultArgs = map[ShapeType]ArgFn{
	Plane:            emptyArgs,
	Box:              withDefault(1.0, 1.0, 1.0),
	Trimesh:          passArgs,
	Cylinder:         passArgs,
	Heightfield:      passArgs,
	ConvexPolyhedron: convexPolyhedronArgs,
	Particle:         emptyArgs,
	Sphere:           withDefault(1.0),
	Compound:         emptyArgs,
}

// DefaultArgs returns the default ArgFn of a shape type. Unknown types pass
// their args through.
func DefaultArgs(shape ShapeType) ArgFn {
	if fn, ok := defaultArgs[shape]; ok {
		return fn
	}
	return passArgs
}

// TransformArgs applies the shape's default ArgFn.
func TransformArgs(shape ShapeType, args []any) []any {
	return DefaultArgs(shape)(args)
}

func emptyArgs([]any) []any { return []any{} }

func passArgs(args []any) []any { return args }

func withDefault(def ...any) ArgFn {
	return func(args []any) []any {
		if args == nil {
			return append([]any(nil), def...)
		}
		return args
	}
}

// convexPolyhedronArgs normalizes [vertices, faces, normals, axes, radius],
// converting every vector list to []Triplet.
func convexPolyhedronArgs(args []any) []any {
	at := func(i int) any {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	return []any{
		tripletsOrNil(at(0)),
		at(1),
		tripletsOrNil(at(2)),
		tripletsOrNil(at(3)),
		at(4),
	}
}

func tripletsOrNil(v any) any {
	if v == nil {
		return nil
	}
	ts, ok := ToTriplets(v)
	if !ok {
		return v
	}
	return ts
}
