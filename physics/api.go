package physics

import "github.com/milk9111/physbind/scene"

// BodyAPI reads and writes the physical properties of the bodies created for
// one object. Its promoted methods address instance 0; use At for others.
type BodyAPI struct {
	*InstanceAPI

	ctx    *Context
	object scene.Object
	worker Worker
	values map[string]map[Op]any
}

// NewBodyAPI binds an API to an object and the worker its bodies live in.
func NewBodyAPI(ctx *Context, obj scene.Object, w Worker) *BodyAPI {
	a := &BodyAPI{ctx: ctx, object: obj, worker: w, values: make(map[string]map[Op]any)}
	a.InstanceAPI = a.At(0)
	return a
}

// Object returns the object the bodies belong to.
func (a *BodyAPI) Object() scene.Object {
	return a.object
}

// At returns the API of one instance.
func (a *BodyAPI) At(index int) *InstanceAPI {
	return &InstanceAPI{parent: a, id: BodyID(a.object, index)}
}

// InstanceAPI addresses a single body.
type InstanceAPI struct {
	parent *BodyAPI
	id     string
}

// ID returns the body id commands are sent for.
func (i *InstanceAPI) ID() string {
	return i.id
}

func (i *InstanceAPI) send(op Op, props any) {
	if i.parent.worker == nil {
		return
	}
	vals := i.parent.values[i.id]
	if vals == nil {
		vals = make(map[Op]any)
		i.parent.values[i.id] = vals
	}
	vals[op] = props
	i.parent.worker.Send(Command{Op: op, UUID: i.id, Props: props})
}

func (i *InstanceAPI) last(op Op) (any, bool) {
	v, ok := i.parent.values[i.id][op]
	return v, ok
}

func (i *InstanceAPI) state() (BodyState, bool) {
	return i.parent.ctx.registry.State(i.id)
}

func (i *InstanceAPI) Position() VectorAPI {
	return VectorAPI{inst: i, op: OpSetPosition, read: func(st BodyState) Triplet { return st.Position }}
}

// Rotation reads and writes XYZ Euler angles.
func (i *InstanceAPI) Rotation() VectorAPI {
	return VectorAPI{inst: i, op: OpSetRotation, read: func(st BodyState) Triplet {
		e := scene.Quat{
			X: float32(st.Quaternion[0]), Y: float32(st.Quaternion[1]),
			Z: float32(st.Quaternion[2]), W: float32(st.Quaternion[3]),
		}.Euler()
		return Triplet{float64(e.X), float64(e.Y), float64(e.Z)}
	}}
}

func (i *InstanceAPI) Velocity() VectorAPI {
	return VectorAPI{inst: i, op: OpSetVelocity, read: func(st BodyState) Triplet { return st.Velocity }}
}

func (i *InstanceAPI) AngularVelocity() VectorAPI {
	return VectorAPI{inst: i, op: OpSetAngularVelocity, read: func(st BodyState) Triplet { return st.AngularVelocity }}
}

func (i *InstanceAPI) LinearFactor() VectorAPI {
	return VectorAPI{inst: i, op: OpSetLinearFactor}
}

func (i *InstanceAPI) AngularFactor() VectorAPI {
	return VectorAPI{inst: i, op: OpSetAngularFactor}
}

func (i *InstanceAPI) Quaternion() QuaternionAPI {
	return QuaternionAPI{inst: i}
}

func (i *InstanceAPI) Mass() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetMass}
}

func (i *InstanceAPI) LinearDamping() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetLinearDamping}
}

func (i *InstanceAPI) AngularDamping() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetAngularDamping}
}

func (i *InstanceAPI) SleepSpeedLimit() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetSleepSpeedLimit}
}

func (i *InstanceAPI) SleepTimeLimit() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetSleepTimeLimit}
}

func (i *InstanceAPI) CollisionFilterGroup() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetCollisionFilterGroup}
}

func (i *InstanceAPI) CollisionFilterMask() ScalarAPI {
	return ScalarAPI{inst: i, op: OpSetCollisionFilterMask}
}

func (i *InstanceAPI) AllowSleep() BoolAPI        { return BoolAPI{inst: i, op: OpSetAllowSleep} }
func (i *InstanceAPI) CollisionResponse() BoolAPI { return BoolAPI{inst: i, op: OpSetCollisionResponse} }
func (i *InstanceAPI) FixedRotation() BoolAPI     { return BoolAPI{inst: i, op: OpSetFixedRotation} }
func (i *InstanceAPI) IsTrigger() BoolAPI         { return BoolAPI{inst: i, op: OpSetIsTrigger} }

// SetMaterial replaces the body's contact material.
func (i *InstanceAPI) SetMaterial(m Material) {
	i.send(OpSetMaterial, m)
}

// ApplyForce applies force at a world-space point until the next step.
func (i *InstanceAPI) ApplyForce(force, worldPoint Triplet) {
	i.send(OpApplyForce, ApplyProps{Value: force, Point: worldPoint})
}

func (i *InstanceAPI) ApplyImpulse(impulse, worldPoint Triplet) {
	i.send(OpApplyImpulse, ApplyProps{Value: impulse, Point: worldPoint})
}

func (i *InstanceAPI) ApplyLocalForce(force, localPoint Triplet) {
	i.send(OpApplyLocalForce, ApplyProps{Value: force, Point: localPoint})
}

func (i *InstanceAPI) ApplyLocalImpulse(impulse, localPoint Triplet) {
	i.send(OpApplyLocalImpulse, ApplyProps{Value: impulse, Point: localPoint})
}

func (i *InstanceAPI) ApplyTorque(torque Triplet) {
	i.send(OpApplyTorque, torque)
}

func (i *InstanceAPI) Sleep()  { i.send(OpSleep, nil) }
func (i *InstanceAPI) WakeUp() { i.send(OpWakeUp, nil) }

// VectorAPI is one triplet-valued property.
type VectorAPI struct {
	inst *InstanceAPI
	op   Op
	read func(BodyState) Triplet
}

func (v VectorAPI) Set(x, y, z float64) {
	v.inst.send(v.op, Triplet{x, y, z})
}

func (v VectorAPI) Copy(t Triplet) {
	v.inst.send(v.op, t)
}

// Get returns the last simulated value, falling back to the last value set.
func (v VectorAPI) Get() (Triplet, bool) {
	if v.read != nil {
		if st, ok := v.inst.state(); ok {
			return v.read(st), true
		}
	}
	if last, ok := v.inst.last(v.op); ok {
		t, ok := last.(Triplet)
		return t, ok
	}
	return Triplet{}, false
}

// Subscribe calls fn with the value of every frame reported for the body.
// Properties the worker does not report never fire.
func (v VectorAPI) Subscribe(fn func(Triplet)) func() {
	if v.read == nil || fn == nil {
		return func() {}
	}
	read := v.read
	return v.inst.parent.ctx.registry.SubscribeState(v.inst.id, func(st BodyState) { fn(read(st)) })
}

// QuaternionAPI is the orientation property.
type QuaternionAPI struct {
	inst *InstanceAPI
}

func (q QuaternionAPI) Set(x, y, z, w float64) {
	q.inst.send(OpSetQuaternion, Quad{x, y, z, w})
}

func (q QuaternionAPI) Copy(v Quad) {
	q.inst.send(OpSetQuaternion, v)
}

func (q QuaternionAPI) Get() (Quad, bool) {
	if st, ok := q.inst.state(); ok {
		return st.Quaternion, true
	}
	if last, ok := q.inst.last(OpSetQuaternion); ok {
		v, ok := last.(Quad)
		return v, ok
	}
	return Quad{}, false
}

func (q QuaternionAPI) Subscribe(fn func(Quad)) func() {
	if fn == nil {
		return func() {}
	}
	return q.inst.parent.ctx.registry.SubscribeState(q.inst.id, func(st BodyState) { fn(st.Quaternion) })
}

// ScalarAPI is one number-valued property. Get returns the last value set
// through this API.
type ScalarAPI struct {
	inst *InstanceAPI
	op   Op
}

func (s ScalarAPI) Set(v float64) {
	s.inst.send(s.op, v)
}

func (s ScalarAPI) Get() (float64, bool) {
	last, ok := s.inst.last(s.op)
	if !ok {
		return 0, false
	}
	v, ok := last.(float64)
	return v, ok
}

// BoolAPI is one flag property.
type BoolAPI struct {
	inst *InstanceAPI
	op   Op
}

func (b BoolAPI) Set(v bool) {
	b.inst.send(b.op, v)
}

func (b BoolAPI) Get() (bool, bool) {
	last, ok := b.inst.last(b.op)
	if !ok {
		return false, false
	}
	v, ok := last.(bool)
	return v, ok
}
