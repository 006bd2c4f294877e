// Package scene holds the minimal scene graph physics bodies attach to:
// objects with a local transform and instanced meshes with per-instance
// matrices.
package scene

import "sort"

// Scene indexes objects by name.
type Scene struct {
	byName map[string]Object
}

func New() *Scene {
	return &Scene{byName: make(map[string]Object)}
}

// Add registers obj under its name, replacing any previous object of that name.
func (s *Scene) Add(obj Object) {
	if obj == nil {
		return
	}
	s.byName[obj.Base().Name] = obj
}

func (s *Scene) Remove(name string) {
	delete(s.byName, name)
}

func (s *Scene) Find(name string) (Object, bool) {
	obj, ok := s.byName[name]
	return obj, ok
}

// Objects returns every object sorted by name.
func (s *Scene) Objects() []Object {
	out := make([]Object, 0, len(s.byName))
	for _, obj := range s.byName {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base().Name < out[j].Base().Name })
	return out
}

func (s *Scene) Len() int {
	return len(s.byName)
}
