// Package signal provides explicit observable values, derived values and
// effects with teardown-before-rerun semantics.
//
// Nothing in this package is safe for concurrent use. Values, computeds and
// effects are expected to be driven from a single goroutine, the same one
// that owns the scene and the physics context.
package signal

// Observable is anything an effect or computed can depend on.
type Observable interface {
	// Subscribe registers fn to be called after the value changes and
	// returns a function that removes the registration.
	Subscribe(fn func()) (unsubscribe func())
}

// Readable is an observable with a current value.
type Readable[T any] interface {
	Observable
	Get() T
}

type subscribers struct {
	next  int
	order []int
	fns   map[int]func()
}

func (s *subscribers) add(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	s.next++
	id := s.next
	s.fns[id] = fn
	s.order = append(s.order, id)
	return func() { s.remove(id) }
}

func (s *subscribers) remove(id int) {
	if _, ok := s.fns[id]; !ok {
		return
	}
	delete(s.fns, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *subscribers) len() int {
	return len(s.fns)
}

// notify calls subscribers in registration order. Subscribers removed while
// notifying are skipped; subscribers added while notifying wait for the next change.
func (s *subscribers) notify() {
	if len(s.order) == 0 {
		return
	}
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		if fn, ok := s.fns[id]; ok {
			fn()
		}
	}
}
