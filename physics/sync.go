package physics

import (
	"github.com/milk9111/physbind/ecs"
	"github.com/milk9111/physbind/scene"
)

const collisionEvent ecs.EventType = "collision"

// maxDrain bounds how many channel items one Update consumes, so a fast
// worker cannot starve the owning goroutine.
const maxDrain = 1024

type frameSync struct {
	ctx *Context
}

func (s *frameSync) Update(w *ecs.World) {
	pub, ok := s.ctx.worker.Get().(Publisher)
	if !ok {
		return
	}
	frames := pub.Frames()
	for i := 0; i < maxDrain; i++ {
		select {
		case f, ok := <-frames:
			if !ok {
				return
			}
			s.apply(f)
		default:
			return
		}
	}
}

func (s *frameSync) apply(f Frame) {
	s.ctx.frames++
	for id, st := range f.Bodies {
		obj, ok := s.ctx.registry.setState(id, st)
		if !ok {
			continue
		}
		writeTransform(obj, id, st)
	}
}

// writeTransform copies a simulated state onto the object, or onto its
// instance slot when the id addresses one instance.
func writeTransform(obj scene.Object, id string, st BodyState) {
	pos := scene.Vec3{X: float32(st.Position[0]), Y: float32(st.Position[1]), Z: float32(st.Position[2])}
	q := scene.Quat{X: float32(st.Quaternion[0]), Y: float32(st.Quaternion[1]), Z: float32(st.Quaternion[2]), W: float32(st.Quaternion[3])}

	if inst, ok := obj.(scene.Instanced); ok {
		_, index, ok := ParseInstanceID(id)
		if !ok {
			return
		}
		scale := inst.MatrixAt(index).Scale()
		inst.SetMatrixAt(index, scene.Compose(pos, q, scale))
		inst.MarkInstancesDirty()
		return
	}
	base := obj.Base()
	base.Position = pos
	base.SetQuaternion(q)
	base.UpdateMatrix()
}

type collisionCollect struct {
	ctx *Context
}

func (s *collisionCollect) Update(w *ecs.World) {
	pub, ok := s.ctx.worker.Get().(Publisher)
	if !ok {
		return
	}
	events := pub.Events()
	for i := 0; i < maxDrain; i++ {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			w.Events().Push(ecs.Event{Type: collisionEvent, Data: evt})
		default:
			return
		}
	}
}

// dispatchCollisions runs the handlers registered for each queued event.
func (c *Context) dispatchCollisions(w *ecs.World) {
	for _, evt := range w.Events().DrainType(collisionEvent) {
		ce, ok := evt.Data.(CollideEvent)
		if !ok {
			continue
		}
		h, ok := c.registry.Events(ce.Body)
		if !ok {
			continue
		}
		h.dispatch(ce)
	}
}
