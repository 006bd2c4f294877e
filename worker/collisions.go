package worker

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbind/physics"
)

func (w *Worker) installHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if wk, ok := userData.(*Worker); ok {
			wk.collision(arb, true)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if wk, ok := userData.(*Worker); ok {
			wk.collision(arb, false)
		}
	}
}

// collision reports a contact to both bodies. collideBegin and collideEnd
// are sent for every body; collide only for bodies that asked for it.
func (w *Worker) collision(arb *cp.Arbiter, begin bool) {
	shapeA, shapeB := arb.Shapes()
	idA, okA := w.shapes[shapeA]
	idB, okB := w.shapes[shapeB]
	if !okA && !okB {
		return
	}

	contact := w.contact(arb)
	flipped := contact
	flipped.Normal = physics.Triplet{-contact.Normal[0], -contact.Normal[1], 0}

	if okA {
		w.report(idA, idB, contact, begin)
	}
	if okB {
		w.report(idB, idA, flipped, begin)
	}
}

func (w *Worker) report(body, target string, c physics.Contact, begin bool) {
	e, ok := w.bodies[body]
	if !ok {
		return
	}
	if !begin {
		w.emit(physics.CollideEvent{Kind: physics.EventCollideEnd, Body: body, Target: target, Contact: c})
		return
	}
	w.emit(physics.CollideEvent{Kind: physics.EventCollideBegin, Body: body, Target: target, Contact: c})
	if e.onCollide {
		w.emit(physics.CollideEvent{Kind: physics.EventCollide, Body: body, Target: target, Contact: c})
	}
}

func (w *Worker) contact(arb *cp.Arbiter) physics.Contact {
	set := arb.ContactPointSet()
	n := set.Normal
	c := physics.Contact{Normal: physics.Triplet{n.X, n.Y, 0}}
	if set.Count > 0 {
		p := set.Points[0].PointA
		c.Point = physics.Triplet{p.X, p.Y, 0}
	}
	a, b := arb.Bodies()
	rel := a.Velocity().Sub(b.Velocity())
	c.ImpactVelocity = math.Abs(rel.Dot(n))
	return c
}
