package physics

import (
	"sort"

	"github.com/milk9111/physbind/ecs"
	"github.com/milk9111/physbind/ecs/component"
	"github.com/milk9111/physbind/scene"
)

var (
	refComponent    = component.NewComponent[scene.Object]("ref")
	eventsComponent = component.NewComponent[CollisionHandlers]("events")
	stateComponent  = component.NewComponent[BodyState]("state")
	subsComponent   = component.NewComponent[*stateSubscribers]("subscriptions")
)

// Registry is the shared arena of body records owned by a physics context.
// Each body id maps to one generational entity; its records (object ref,
// collision handlers, last state, state subscribers) are components. An
// entity is released as soon as its last record is deleted.
type Registry struct {
	world *ecs.World
	index map[string]ecs.Entity
	ids   map[ecs.Entity]string
}

func NewRegistry() *Registry {
	return &Registry{
		world: ecs.NewWorld(),
		index: make(map[string]ecs.Entity),
		ids:   make(map[ecs.Entity]string),
	}
}

// World exposes the backing arena to systems.
func (r *Registry) World() *ecs.World {
	return r.world
}

func (r *Registry) entity(id string, create bool) (ecs.Entity, bool) {
	if e, ok := r.index[id]; ok {
		return e, true
	}
	if !create {
		return 0, false
	}
	e := r.world.CreateEntity()
	r.index[id] = e
	r.ids[e] = id
	return e, true
}

func (r *Registry) release(id string, e ecs.Entity) {
	if r.world.ComponentCount(e) > 0 {
		return
	}
	r.world.DestroyEntity(e)
	delete(r.index, id)
	delete(r.ids, e)
}

// IDOf returns the body id of an arena entity.
func (r *Registry) IDOf(e ecs.Entity) (string, bool) {
	id, ok := r.ids[e]
	return id, ok
}

// SetRef records the live object behind a body id.
func (r *Registry) SetRef(id string, obj scene.Object) {
	if obj == nil {
		r.DeleteRef(id)
		return
	}
	e, _ := r.entity(id, true)
	_ = ecs.Add(r.world, e, refComponent, obj)
}

// DeleteRef forgets the object and the last known state of a body id.
func (r *Registry) DeleteRef(id string) {
	e, ok := r.entity(id, false)
	if !ok {
		return
	}
	ecs.Remove(r.world, e, refComponent)
	ecs.Remove(r.world, e, stateComponent)
	r.release(id, e)
}

func (r *Registry) Ref(id string) (scene.Object, bool) {
	e, ok := r.entity(id, false)
	if !ok {
		return nil, false
	}
	return ecs.Get(r.world, e, refComponent)
}

// SetEvents records collision handlers; empty handlers delete the record.
func (r *Registry) SetEvents(id string, h CollisionHandlers) {
	if h.Empty() {
		r.DeleteEvents(id)
		return
	}
	e, _ := r.entity(id, true)
	_ = ecs.Add(r.world, e, eventsComponent, h)
}

func (r *Registry) DeleteEvents(id string) {
	e, ok := r.entity(id, false)
	if !ok {
		return
	}
	ecs.Remove(r.world, e, eventsComponent)
	r.release(id, e)
}

func (r *Registry) Events(id string) (CollisionHandlers, bool) {
	e, ok := r.entity(id, false)
	if !ok {
		return CollisionHandlers{}, false
	}
	return ecs.Get(r.world, e, eventsComponent)
}

// State returns the last state reported for a body id.
func (r *Registry) State(id string) (BodyState, bool) {
	e, ok := r.entity(id, false)
	if !ok {
		return BodyState{}, false
	}
	return ecs.Get(r.world, e, stateComponent)
}

// setState stores st for a registered body and notifies its subscribers.
// Frames for ids without a ref (already removed) are ignored.
func (r *Registry) setState(id string, st BodyState) (scene.Object, bool) {
	e, ok := r.entity(id, false)
	if !ok {
		return nil, false
	}
	obj, ok := ecs.Get(r.world, e, refComponent)
	if !ok {
		return nil, false
	}
	_ = ecs.Add(r.world, e, stateComponent, st)
	if subs, ok := ecs.Get(r.world, e, subsComponent); ok {
		subs.notify(st)
	}
	return obj, true
}

// SubscribeState calls fn with every state reported for id until the
// returned function is called.
func (r *Registry) SubscribeState(id string, fn func(BodyState)) func() {
	if fn == nil {
		return func() {}
	}
	e, _ := r.entity(id, true)
	subs, ok := ecs.Get(r.world, e, subsComponent)
	if !ok {
		subs = &stateSubscribers{fns: make(map[int]func(BodyState))}
		_ = ecs.Add(r.world, e, subsComponent, subs)
	}
	subs.next++
	key := subs.next
	subs.fns[key] = fn
	return func() {
		delete(subs.fns, key)
		if len(subs.fns) > 0 {
			return
		}
		cur, ok := r.index[id]
		if !ok || cur != e {
			return
		}
		if s, ok := ecs.Get(r.world, e, subsComponent); ok && s == subs {
			ecs.Remove(r.world, e, subsComponent)
			r.release(id, e)
		}
	}
}

// RefCount returns how many body ids have a live object.
func (r *Registry) RefCount() int {
	return ecs.Count(r.world, refComponent)
}

// EventCount returns how many body ids have collision handlers.
func (r *Registry) EventCount() int {
	return ecs.Count(r.world, eventsComponent)
}

// IDs returns every body id with at least one record, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.index))
	for id := range r.index {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RefIDs returns the ids that currently have a live object, sorted.
func (r *Registry) RefIDs() []string {
	var out []string
	ecs.ForEach(r.world, refComponent, func(e ecs.Entity, _ scene.Object) {
		out = append(out, r.ids[e])
	})
	sort.Strings(out)
	return out
}

// Synced returns the ids that have a live object and a reported state,
// sorted.
func (r *Registry) Synced() []string {
	ents := r.world.Query(refComponent.Kind(), stateComponent.Kind())
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, r.ids[e])
	}
	sort.Strings(out)
	return out
}

type stateSubscribers struct {
	next int
	fns  map[int]func(BodyState)
}

func (s *stateSubscribers) notify(st BodyState) {
	keys := make([]int, 0, len(s.fns))
	for k := range s.fns {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if fn, ok := s.fns[k]; ok {
			fn(st)
		}
	}
}
