// Package body binds scene objects to physics bodies. A Body watches an
// object source and the context's worker handle; whenever both are present
// it registers one body per instance and tells the worker to create them,
// and it removes them again before the next pass or on Destroy.
package body

import (
	"github.com/milk9111/physbind/physics"
	"github.com/milk9111/physbind/scene"
	"github.com/milk9111/physbind/signal"
)

// Source yields the object a body attaches to.
type Source struct {
	ref      *scene.Ref
	reactive signal.Readable[scene.Object]
}

// FromObject attaches to an object that already exists.
func FromObject(obj scene.Object) Source {
	return Source{ref: scene.NewRef(obj)}
}

// FromRef attaches to a plain handle. The handle is not observed; it is
// resolved again on every pass that has a worker but no object.
func FromRef(ref *scene.Ref) Source {
	if ref == nil {
		ref = scene.NewRef(nil)
	}
	return Source{ref: ref}
}

// FromSignal attaches to whatever object the readable currently holds and
// follows it as it changes.
func FromSignal(s signal.Readable[scene.Object]) Source {
	return Source{reactive: s}
}

// Reactive reports whether the source is observed for changes.
func (s Source) Reactive() bool {
	return s.reactive != nil
}

type options struct {
	transformArgs physics.ArgFn
	scheduler     signal.Scheduler
}

// Option configures a Body.
type Option func(*options)

// WithTransformArgs overrides the shape's default args function.
func WithTransformArgs(fn physics.ArgFn) Option {
	return func(o *options) { o.transformArgs = fn }
}

// WithScheduler defers the first pass to s instead of the context's scheduler.
func WithScheduler(s signal.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// Body is the lifecycle coordinator of the bodies created for one object.
type Body struct {
	ctx       *physics.Context
	shape     physics.ShapeType
	getProps  physics.GetByIndex
	transform physics.ArgFn

	ref      *scene.Ref
	resolved *signal.Value[scene.Object]
	object   signal.Readable[scene.Object]

	api    *signal.Computed[*physics.BodyAPI]
	effect *signal.Effect
	ids    []string
}

// New creates a coordinator for shape. ctx is required: a nil context is a
// wiring mistake and panics. getProps is called once per instance on every
// pass.
func New(ctx *physics.Context, shape physics.ShapeType, getProps physics.GetByIndex, src Source, opts ...Option) *Body {
	if ctx == nil {
		panic("body: New called without a physics context")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.transformArgs == nil {
		o.transformArgs = physics.DefaultArgs(shape)
	}
	if o.scheduler == nil {
		o.scheduler = ctx.Deferred()
	}
	if getProps == nil {
		getProps = func(int) physics.Props { return physics.Props{} }
	}

	b := &Body{
		ctx:       ctx,
		shape:     shape,
		getProps:  getProps,
		transform: o.transformArgs,
	}
	if src.Reactive() {
		b.object = src.reactive
	} else {
		b.ref = src.ref
		b.resolved = signal.NewValue(src.ref.Resolve())
		b.object = b.resolved
	}

	b.api = signal.NewComputed(func() *physics.BodyAPI {
		obj, w := b.object.Get(), ctx.Worker().Get()
		if obj == nil || w == nil {
			return nil
		}
		return physics.NewBodyAPI(ctx, obj, w)
	}, b.object, ctx.Worker())

	b.effect = signal.NewEffect(b.pass, b.object, ctx.Worker())
	b.effect.StartOn(o.scheduler)
	return b
}

// API returns the body API, or nil while the object or worker is missing.
func (b *Body) API() *physics.BodyAPI {
	return b.api.Get()
}

// APISignal observes API changes.
func (b *Body) APISignal() signal.Readable[*physics.BodyAPI] {
	return b.api
}

// Shape returns the shape type fixed at construction.
func (b *Body) Shape() physics.ShapeType {
	return b.shape
}

// IDs returns the body ids registered by the current pass.
func (b *Body) IDs() []string {
	return append(make([]string, 0, len(b.ids)), b.ids...)
}

// Active reports whether bodies are currently registered.
func (b *Body) Active() bool {
	return len(b.ids) > 0
}

// Destroy tears down the current registration and stops observing.
func (b *Body) Destroy() {
	b.effect.Stop()
	b.api.Dispose()
}

func (b *Body) pass() func() {
	w := b.ctx.Worker().Get()
	if w == nil {
		return nil
	}

	obj := b.object.Get()
	if obj == nil && b.resolved != nil {
		// the handle may have been filled in after construction; if it
		// now resolves, the write reruns this pass. Setting nil again is
		// a no-op, so this cannot loop.
		b.resolved.Set(b.ref.Resolve())
		return nil
	}
	if obj == nil {
		return nil
	}

	ids := physics.BodyIDs(obj)
	inst, instanced := obj.(scene.Instanced)
	var scratch *scene.Object3D
	if instanced {
		inst.SetUsage(scene.DynamicDraw)
		scratch = scene.NewObject3D("")
	}

	reg := b.ctx.Registry()
	dbg := b.ctx.Debugger()
	props := make([]physics.WireProps, len(ids))
	for i, id := range ids {
		p := b.getProps(i)
		if instanced {
			prepare(scratch, p)
			inst.SetMatrixAt(i, scratch.Matrix())
			inst.MarkInstancesDirty()
		} else {
			prepare(obj.Base(), p)
		}
		reg.SetRef(id, obj)
		if dbg != nil {
			dbg.Add(id, p, b.shape)
		}
		if h := p.Handlers(); !h.Empty() {
			reg.SetEvents(id, h)
		}
		props[i] = p.Serialize(b.transform(p.Args))
	}

	w.AddBodies(physics.AddBodiesMessage{Type: b.shape, UUID: ids, Props: props})
	b.ids = ids
	b.ctx.Logger().Debug("bodies added", "shape", b.shape, "object", obj.UUID(), "count", len(ids))

	return func() {
		for _, id := range ids {
			reg.DeleteRef(id)
			if dbg != nil {
				dbg.Remove(id)
			}
			reg.DeleteEvents(id)
		}
		w.RemoveBodies(physics.RemoveBodiesMessage{UUID: ids})
		b.ids = nil
		b.ctx.Logger().Debug("bodies removed", "shape", b.shape, "object", obj.UUID(), "count", len(ids))
	}
}

// prepare applies the initial transform in props to o. Missing position and
// rotation reset to the origin; a quaternion wins over Euler rotation.
func prepare(o *scene.Object3D, p physics.Props) {
	var pos physics.Triplet
	if p.Position != nil {
		pos = *p.Position
	}
	o.Position = scene.Vec3{X: float32(pos[0]), Y: float32(pos[1]), Z: float32(pos[2])}

	if q := p.Quaternion; q != nil {
		o.SetQuaternion(scene.Quat{X: float32(q[0]), Y: float32(q[1]), Z: float32(q[2]), W: float32(q[3])})
	} else {
		var rot physics.Triplet
		if p.Rotation != nil {
			rot = *p.Rotation
		}
		o.SetRotation(scene.Vec3{X: float32(rot[0]), Y: float32(rot[1]), Z: float32(rot[2])})
	}

	if len(p.UserData) > 0 {
		if o.UserData == nil {
			o.UserData = make(map[string]any, len(p.UserData))
		}
		for k, v := range p.UserData {
			o.UserData[k] = v
		}
	}
	o.UpdateMatrix()
}
