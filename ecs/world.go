package ecs

import (
	"sort"

	"github.com/milk9111/physbind/ecs/component"
)

type store interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
	len() int
}

// World owns entities, their component stores and a per-pass event queue.
// A World is not safe for concurrent use; drive it from one goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity, reusing freed slots.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// ComponentCount returns how many components e currently holds.
func (w *World) ComponentCount(e Entity) int {
	if !w.IsAlive(e) {
		return 0
	}
	n := 0
	for _, s := range w.stores {
		if s.has(e) {
			n++
		}
	}
	return n
}

// Query returns live entities holding every kind, ordered by slot id.
func (w *World) Query(kinds ...component.Kinded) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate the smallest store
	sort.Slice(stores, func(i, j int) bool { return stores[i].len() < stores[j].len() })

	out := make([]Entity, 0, stores[0].len())
outer:
	for _, e := range stores[0].entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range stores[1:] {
			if !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
