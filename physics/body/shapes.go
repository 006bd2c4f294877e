package body

import "github.com/milk9111/physbind/physics"

func Box(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Box, getProps, src, opts...)
}

func Sphere(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Sphere, getProps, src, opts...)
}

func Plane(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Plane, getProps, src, opts...)
}

func Cylinder(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Cylinder, getProps, src, opts...)
}

func Particle(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Particle, getProps, src, opts...)
}

func ConvexPolyhedron(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.ConvexPolyhedron, getProps, src, opts...)
}

func Trimesh(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Trimesh, getProps, src, opts...)
}

func Heightfield(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Heightfield, getProps, src, opts...)
}

// Compound bodies take their child shapes from Props.Shapes.
func Compound(ctx *physics.Context, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	return New(ctx, physics.Compound, getProps, src, opts...)
}

// Uniform returns a property accessor that gives every instance the same props.
func Uniform(p physics.Props) physics.GetByIndex {
	return func(int) physics.Props { return p }
}
