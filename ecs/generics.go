package ecs

import "github.com/milk9111/physbind/ecs/component"

func storeFor[T any](w *World, handle component.ComponentHandle[T], create bool) (*SparseSet[T], error) {
	kind := handle.Kind()
	if !kind.Valid() {
		return nil, component.ErrInvalidComponentKind
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil, nil
		}
		set := &SparseSet[T]{}
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]store)
		}
		w.stores[kind.ID()] = set
		return set, nil
	}
	set, ok := s.(*SparseSet[T])
	if !ok {
		return nil, component.ErrComponentType
	}
	return set, nil
}

// Add inserts or replaces the component value of e.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	set, err := storeFor(w, handle, true)
	if err != nil {
		return err
	}
	set.Set(e, value)
	return nil
}

// Remove deletes the component of e, reporting whether it was present.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	set, err := storeFor(w, handle, false)
	if err != nil || set == nil {
		return false
	}
	return set.Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	set, err := storeFor(w, handle, false)
	if err != nil || set == nil {
		return false
	}
	return set.Has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	if !w.IsAlive(e) {
		return zero, false
	}
	set, err := storeFor(w, handle, false)
	if err != nil || set == nil {
		return zero, false
	}
	return set.Get(e)
}

// ForEach calls fn for every live entity holding the component, in dense order.
// fn must not add or remove components of the same kind.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, T)) {
	if w == nil || fn == nil {
		return
	}
	set, err := storeFor(w, handle, false)
	if err != nil || set == nil {
		return
	}
	for i, e := range set.denseEntities {
		if w.entities.isAlive(e) {
			fn(e, set.denseValues[i])
		}
	}
}

// Count returns the number of entities holding the component.
func Count[T any](w *World, handle component.ComponentHandle[T]) int {
	if w == nil {
		return 0
	}
	set, err := storeFor(w, handle, false)
	if err != nil || set == nil {
		return 0
	}
	return set.Len()
}
