package signal

// Computed is a read-only value derived from its dependencies. It is
// recomputed eagerly whenever one of them changes and notifies its own
// subscribers only when the result differs.
type Computed[T comparable] struct {
	fn     func() T
	v      T
	subs   subscribers
	unsubs []func()
}

// NewComputed evaluates fn once and re-evaluates it after any dep changes.
func NewComputed[T comparable](fn func() T, deps ...Observable) *Computed[T] {
	c := &Computed[T]{fn: fn}
	c.v = fn()
	for _, d := range deps {
		if d == nil {
			continue
		}
		c.unsubs = append(c.unsubs, d.Subscribe(c.recompute))
	}
	return c
}

func (c *Computed[T]) recompute() {
	v := c.fn()
	if v == c.v {
		return
	}
	c.v = v
	c.subs.notify()
}

func (c *Computed[T]) Get() T {
	return c.v
}

func (c *Computed[T]) Subscribe(fn func()) func() {
	return c.subs.add(fn)
}

// Dispose detaches the computed from its dependencies. The last value stays readable.
func (c *Computed[T]) Dispose() {
	for _, u := range c.unsubs {
		u()
	}
	c.unsubs = nil
}
