package signal

// EffectFunc performs one pass and returns the teardown for that pass, or nil.
type EffectFunc func() (cleanup func())

// Effect reruns a pass whenever a dependency changes. The previous pass's
// cleanup always runs before the next pass starts, and once more on Stop.
type Effect struct {
	run     EffectFunc
	deps    []Observable
	unsubs  []func()
	cleanup func()

	started bool
	stopped bool
	running bool
	pending bool
	passes  int
}

// NewEffect creates an effect over deps. It does nothing until Start.
func NewEffect(run EffectFunc, deps ...Observable) *Effect {
	return &Effect{run: run, deps: deps}
}

// Start subscribes to the dependencies and runs the first pass.
func (e *Effect) Start() {
	if e == nil || e.started || e.stopped {
		return
	}
	e.started = true
	for _, d := range e.deps {
		if d == nil {
			continue
		}
		e.unsubs = append(e.unsubs, d.Subscribe(e.trigger))
	}
	e.execute()
}

// StartOn defers Start to the given scheduler.
func (e *Effect) StartOn(s Scheduler) {
	if s == nil {
		e.Start()
		return
	}
	s.Schedule(e.Start)
}

func (e *Effect) trigger() {
	if e.stopped {
		return
	}
	if e.running {
		// a write made by the running pass; rerun once it returns
		e.pending = true
		return
	}
	e.execute()
}

func (e *Effect) execute() {
	for {
		e.pending = false
		e.running = true
		e.teardown()
		e.cleanup = e.run()
		e.passes++
		e.running = false
		if e.stopped {
			// stopped from inside the pass
			e.teardown()
			return
		}
		if !e.pending {
			return
		}
	}
}

func (e *Effect) teardown() {
	if e.cleanup == nil {
		return
	}
	c := e.cleanup
	e.cleanup = nil
	c()
}

// Stop unsubscribes from every dependency and runs the pending cleanup once.
// Stopping an effect that never started is allowed and prevents a deferred start.
func (e *Effect) Stop() {
	if e == nil || e.stopped {
		return
	}
	e.stopped = true
	for _, u := range e.unsubs {
		u()
	}
	e.unsubs = nil
	e.teardown()
}

// Passes returns how many times the effect body has run.
func (e *Effect) Passes() int {
	return e.passes
}

// Active reports whether the effect has started and not been stopped.
func (e *Effect) Active() bool {
	return e.started && !e.stopped
}
