package worker

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbind/common"
	"github.com/milk9111/physbind/physics"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
)

const (
	defaultDamping        = 0.01
	defaultSleepTimeLimit = 1.0
)

type entry struct {
	id     string
	body   *cp.Body
	shapes []*cp.Shape
	z      float64
	moment float64

	onCollide      bool
	allowSleep     bool
	fixedRotation  bool
	trigger        bool
	response       bool
	linearFactor   physics.Triplet
	angularFactor  physics.Triplet
	linearDamping  float64
	angularDamping float64
	filter         cp.ShapeFilter
}

func (e *entry) static() bool  { return e.body.GetType() == cp.BODY_STATIC }
func (e *entry) dynamic() bool { return e.body.GetType() == cp.BODY_DYNAMIC }

func (e *entry) sensor() bool {
	return e.trigger || !e.response
}

func (e *entry) state() physics.BodyState {
	p := e.body.Position()
	v := e.body.Velocity()
	return physics.BodyState{
		Position:        physics.Triplet{p.X, p.Y, e.z},
		Quaternion:      physics.Quad(common.ZQuat(e.body.Angle())),
		Velocity:        physics.Triplet{v.X, v.Y, 0},
		AngularVelocity: physics.Triplet{0, 0, e.body.AngularVelocity()},
		Sleeping:        e.body.IsSleeping(),
	}
}

// updateVelocity integrates like cp.BodyUpdateVelocity, then scales the
// change by the body's factors and applies its own damping.
func (e *entry) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	v0, w0 := body.Velocity(), body.AngularVelocity()
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	v1, w1 := body.Velocity(), body.AngularVelocity()

	lf, af := e.linearFactor, e.angularFactor
	ld := math.Pow(1-e.linearDamping, dt)
	ad := math.Pow(1-e.angularDamping, dt)
	body.SetVelocity((v0.X+(v1.X-v0.X)*lf[0])*ld, (v0.Y+(v1.Y-v0.Y)*lf[1])*ld)
	body.SetAngularVelocity((w0 + (w1-w0)*af[2]) * ad)
}

func (e *entry) applyFilter() {
	for _, s := range e.shapes {
		s.SetFilter(e.filter)
	}
}

func (e *entry) applySensor() {
	for _, s := range e.shapes {
		s.SetSensor(e.sensor())
	}
}

func (e *entry) applyMaterial(m physics.Material) {
	for _, s := range e.shapes {
		s.SetFriction(m.Friction)
		s.SetElasticity(m.Restitution)
	}
}

func (e *entry) applyFixedRotation() {
	if !e.dynamic() {
		return
	}
	if e.fixedRotation {
		e.body.SetMoment(math.Inf(1))
		e.body.SetAngularVelocity(0)
		return
	}
	e.body.SetMoment(e.moment)
}

func (w *Worker) addBodies(msg physics.AddBodiesMessage) {
	if len(msg.Props) != len(msg.UUID) {
		w.logger.Warn("add message props do not match uuids", "shape", msg.Type, "uuids", len(msg.UUID), "props", len(msg.Props))
	}
	for i, id := range msg.UUID {
		var props physics.WireProps
		if i < len(msg.Props) {
			props = msg.Props[i]
		}
		if _, exists := w.bodies[id]; exists {
			w.logger.Warn("body re-added, replacing", "uuid", id)
			w.removeBody(id)
		}
		e, err := w.createBody(id, msg.Type, props)
		if err != nil {
			w.logger.Warn("body not created", "uuid", id, "shape", msg.Type, "err", err)
			continue
		}
		w.bodies[id] = e
	}
	w.logger.Debug("bodies added", "shape", msg.Type, "count", len(msg.UUID))
}

func (w *Worker) removeBodies(msg physics.RemoveBodiesMessage) {
	for _, id := range msg.UUID {
		w.removeBody(id)
	}
	w.logger.Debug("bodies removed", "count", len(msg.UUID))
}

func (w *Worker) removeBody(id string) {
	e, ok := w.bodies[id]
	if !ok {
		return
	}
	for _, s := range e.shapes {
		w.space.RemoveShape(s)
		delete(w.shapes, s)
	}
	w.space.RemoveBody(e.body)
	delete(w.bodies, id)
}

func (w *Worker) createBody(id string, shape physics.ShapeType, props physics.WireProps) (*entry, error) {
	geoms, err := geometry(shape, props)
	if err != nil {
		return nil, err
	}

	var body *cp.Body
	switch {
	case alwaysStatic(shape), props.Type == physics.Static, props.Type != physics.Kinematic && props.Mass <= 0:
		body = cp.NewStaticBody()
	case props.Type == physics.Kinematic:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewBody(0, 0)
	}

	e := &entry{
		id:             id,
		body:           body,
		allowSleep:     true,
		response:       true,
		fixedRotation:  props.FixedRotation,
		trigger:        props.IsTrigger,
		linearFactor:   physics.Triplet{1, 1, 1},
		angularFactor:  physics.Triplet{1, 1, 1},
		linearDamping:  defaultDamping,
		angularDamping: defaultDamping,
		onCollide:      props.OnCollide,
		filter:         cp.ShapeFilter{Group: 0, Categories: ^uint(0), Mask: ^uint(0)},
	}
	if p := props.Position; p != nil {
		body.SetPosition(cp.Vector{X: p[0], Y: p[1]})
		e.z = p[2]
	}
	switch {
	case props.Quaternion != nil:
		q := props.Quaternion
		body.SetAngle(common.ZAngle(q[0], q[1], q[2], q[3]))
	case props.Rotation != nil:
		body.SetAngle(props.Rotation[2])
	}
	if props.AllowSleep != nil {
		e.allowSleep = *props.AllowSleep
	}
	if props.CollisionResponse != nil {
		e.response = *props.CollisionResponse
	}
	if props.LinearFactor != nil {
		e.linearFactor = *props.LinearFactor
	}
	if props.AngularFactor != nil {
		e.angularFactor = *props.AngularFactor
		if e.angularFactor[2] == 0 {
			e.fixedRotation = true
		}
	}
	if props.LinearDamping != nil {
		e.linearDamping = *props.LinearDamping
	}
	if props.AngularDamping != nil {
		e.angularDamping = *props.AngularDamping
	}
	if props.CollisionFilterGroup != nil {
		e.filter.Categories = uint(*props.CollisionFilterGroup)
	}
	if props.CollisionFilterMask != nil {
		e.filter.Mask = uint(*props.CollisionFilterMask)
	}

	w.space.AddBody(body)
	material := w.material(props.Material)
	share := props.Mass / float64(len(geoms))
	for _, g := range geoms {
		s := g.shape(body)
		m := material
		if g.material != nil {
			m = *g.material
		}
		s.SetFriction(m.Friction)
		s.SetElasticity(m.Restitution)
		s.SetCollisionType(collisionTypeBody)
		if e.dynamic() {
			s.SetMass(share)
		}
		w.space.AddShape(s)
		w.shapes[s] = id
		e.shapes = append(e.shapes, s)
	}
	e.applyFilter()
	e.applySensor()

	if e.dynamic() {
		e.moment = body.Moment()
		e.applyFixedRotation()
		body.SetVelocityUpdateFunc(e.updateVelocity)
	}
	if !e.static() {
		if v := props.Velocity; v != nil {
			body.SetVelocity(v[0], v[1])
		}
		if av := props.AngularVelocity; av != nil && !e.fixedRotation {
			body.SetAngularVelocity(av[2])
		}
	}
	return e, nil
}

func (w *Worker) material(m *physics.Material) physics.Material {
	if m != nil {
		return *m
	}
	d := w.cfg.DefaultContactMaterial
	return physics.Material{Friction: d.Friction, Restitution: d.Restitution}
}
