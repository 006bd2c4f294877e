package signal

// Value is a writable observable. Writing a value equal to the current one
// is a no-op, so dependents only rerun on real changes.
//
// T must be comparable at run time as well: an interface-typed Value holding
// a slice or map panics on Set.
type Value[T comparable] struct {
	v    T
	subs subscribers
}

func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{v: v}
}

func (s *Value[T]) Get() T {
	return s.v
}

// Set stores v and notifies subscribers if it differs from the current value.
func (s *Value[T]) Set(v T) {
	if s.v == v {
		return
	}
	s.v = v
	s.subs.notify()
}

// Update sets the value to fn(current).
func (s *Value[T]) Update(fn func(T) T) {
	s.Set(fn(s.v))
}

func (s *Value[T]) Subscribe(fn func()) func() {
	return s.subs.add(fn)
}

// Subscribers returns the number of live subscriptions.
func (s *Value[T]) Subscribers() int {
	return s.subs.len()
}
