package worker

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbind/common"
	"github.com/milk9111/physbind/physics"
)

func (w *Worker) command(cmd physics.Command) {
	switch cmd.Op {
	case physics.OpSetGravity:
		g, ok := physics.ToTriplet(cmd.Props)
		if !ok {
			w.badProps(cmd)
			return
		}
		w.space.SetGravity(cp.Vector{X: g[0], Y: g[1]})
		w.cfg.Gravity = g
		return
	case physics.OpSetIterations:
		n, ok := physics.ToFloat(cmd.Props)
		if !ok || n < 1 {
			w.badProps(cmd)
			return
		}
		w.space.Iterations = uint(n)
		w.cfg.Iterations = int(n)
		return
	}

	e, ok := w.bodies[cmd.UUID]
	if !ok {
		w.logger.Debug("command for unknown body", "op", cmd.Op, "uuid", cmd.UUID)
		return
	}
	w.logger.Debug("command", "op", cmd.Op, "uuid", cmd.UUID)
	body := e.body

	switch cmd.Op {
	case physics.OpSetPosition:
		v, ok := physics.ToTriplet(cmd.Props)
		if !ok {
			w.badProps(cmd)
			return
		}
		body.SetPosition(cp.Vector{X: v[0], Y: v[1]})
		e.z = v[2]
		w.moved(e)
	case physics.OpSetRotation:
		v, ok := physics.ToTriplet(cmd.Props)
		if !ok {
			w.badProps(cmd)
			return
		}
		body.SetAngle(v[2])
		w.moved(e)
	case physics.OpSetQuaternion:
		q, ok := toQuad(cmd.Props)
		if !ok {
			w.badProps(cmd)
			return
		}
		body.SetAngle(common.ZAngle(q[0], q[1], q[2], q[3]))
		w.moved(e)
	case physics.OpSetVelocity:
		v, ok := physics.ToTriplet(cmd.Props)
		if !ok || e.static() {
			w.badProps(cmd)
			return
		}
		body.SetVelocity(v[0], v[1])
		body.Activate()
	case physics.OpSetAngularVelocity:
		v, ok := physics.ToTriplet(cmd.Props)
		if !ok || e.static() {
			w.badProps(cmd)
			return
		}
		if !e.fixedRotation {
			body.SetAngularVelocity(v[2])
		}
		body.Activate()
	case physics.OpSetLinearFactor:
		if v, ok := physics.ToTriplet(cmd.Props); ok {
			e.linearFactor = v
		}
	case physics.OpSetAngularFactor:
		if v, ok := physics.ToTriplet(cmd.Props); ok {
			e.angularFactor = v
			e.fixedRotation = v[2] == 0
			e.applyFixedRotation()
		}
	case physics.OpSetMass:
		m, ok := physics.ToFloat(cmd.Props)
		if !ok || m <= 0 || !e.dynamic() {
			w.badProps(cmd)
			return
		}
		scale := m / body.Mass()
		body.SetMass(m)
		e.moment *= scale
		e.applyFixedRotation()
	case physics.OpSetLinearDamping:
		if f, ok := physics.ToFloat(cmd.Props); ok {
			e.linearDamping = clampUnit(f)
		}
	case physics.OpSetAngularDamping:
		if f, ok := physics.ToFloat(cmd.Props); ok {
			e.angularDamping = clampUnit(f)
		}
	case physics.OpSetSleepSpeedLimit, physics.OpSetSleepTimeLimit:
		// the space has one sleep threshold; per-body limits are not simulated
		w.logger.Debug("per-body sleep limits are ignored", "op", cmd.Op, "uuid", cmd.UUID)
	case physics.OpSetCollisionFilterGroup:
		if f, ok := physics.ToFloat(cmd.Props); ok {
			e.filter.Categories = uint(int(f))
			e.applyFilter()
		}
	case physics.OpSetCollisionFilterMask:
		if f, ok := physics.ToFloat(cmd.Props); ok {
			e.filter.Mask = uint(int(f))
			e.applyFilter()
		}
	case physics.OpSetAllowSleep:
		if b, ok := cmd.Props.(bool); ok {
			e.allowSleep = b
		}
	case physics.OpSetCollisionResponse:
		if b, ok := cmd.Props.(bool); ok {
			e.response = b
			e.applySensor()
		}
	case physics.OpSetIsTrigger:
		if b, ok := cmd.Props.(bool); ok {
			e.trigger = b
			e.applySensor()
		}
	case physics.OpSetFixedRotation:
		if b, ok := cmd.Props.(bool); ok {
			e.fixedRotation = b
			e.applyFixedRotation()
		}
	case physics.OpSetMaterial:
		m, ok := cmd.Props.(physics.Material)
		if !ok {
			w.badProps(cmd)
			return
		}
		e.applyMaterial(m)
	case physics.OpApplyForce, physics.OpApplyImpulse, physics.OpApplyLocalForce, physics.OpApplyLocalImpulse:
		p, ok := cmd.Props.(physics.ApplyProps)
		if !ok || !e.dynamic() {
			w.badProps(cmd)
			return
		}
		value := cp.Vector{X: p.Value[0], Y: p.Value[1]}
		point := cp.Vector{X: p.Point[0], Y: p.Point[1]}
		switch cmd.Op {
		case physics.OpApplyForce:
			body.ApplyForceAtWorldPoint(value, point)
		case physics.OpApplyImpulse:
			body.ApplyImpulseAtWorldPoint(value, point)
		case physics.OpApplyLocalForce:
			body.ApplyForceAtLocalPoint(value, point)
		case physics.OpApplyLocalImpulse:
			body.ApplyImpulseAtLocalPoint(value, point)
		}
	case physics.OpApplyTorque:
		v, ok := physics.ToTriplet(cmd.Props)
		if !ok || !e.dynamic() {
			w.badProps(cmd)
			return
		}
		body.SetTorque(body.Torque() + v[2])
	case physics.OpSleep:
		// cp only puts bodies to sleep from its own idle tracking
		w.logger.Debug("sleep ignored", "uuid", cmd.UUID, "allow_sleep", w.cfg.AllowSleep, "sleeping", body.IsSleeping())
	case physics.OpWakeUp:
		if !e.static() {
			body.Activate()
		}
	default:
		w.logger.Warn("unknown command", "op", cmd.Op, "uuid", cmd.UUID)
	}
}

// moved reinserts the shapes of a static body after a teleport, since the
// static index is not updated by the step, and wakes the others.
func (w *Worker) moved(e *entry) {
	if e.static() {
		for _, s := range e.shapes {
			w.space.RemoveShape(s)
			w.space.AddShape(s)
		}
		return
	}
	e.body.Activate()
}

func (w *Worker) badProps(cmd physics.Command) {
	w.logger.Warn("command props rejected", "op", cmd.Op, "uuid", cmd.UUID)
}

func toQuad(v any) (physics.Quad, bool) {
	if q, ok := v.(physics.Quad); ok {
		return q, true
	}
	fs, ok := physics.ToFloats(v)
	if !ok || len(fs) != 4 {
		return physics.Quad{}, false
	}
	return physics.Quad{fs[0], fs[1], fs[2], fs[3]}, true
}

func clampUnit(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}
