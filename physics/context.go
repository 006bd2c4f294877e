// Package physics is the physics-world context bodies are registered with:
// the worker handle, the shared registry, the optional debug collaborator
// and the update pass that routes worker output back into the scene.
package physics

import (
	"log/slog"

	"github.com/milk9111/physbind/ecs"
	"github.com/milk9111/physbind/signal"
)

// Context is one physics world. It is not safe for concurrent use: create
// bodies, call Update and swap workers from the same goroutine.
type Context struct {
	worker    *signal.Value[Worker]
	registry  *Registry
	debug     Debugger
	logger    *slog.Logger
	deferred  signal.Scheduler
	scheduler *ecs.Scheduler
	frames    uint64
}

// Option configures a Context.
type Option func(*Context)

// WithWorker attaches a worker at construction time.
func WithWorker(w Worker) Option {
	return func(c *Context) { c.worker.Set(w) }
}

// WithDebugger installs the debug collaborator.
func WithDebugger(d Debugger) Option {
	return func(c *Context) { c.debug = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScheduler sets where bodies defer their first pass when they are not
// given a scheduler of their own. The default runs it immediately.
func WithScheduler(s signal.Scheduler) Option {
	return func(c *Context) {
		if s != nil {
			c.deferred = s
		}
	}
}

func NewContext(opts ...Option) *Context {
	c := &Context{
		worker:   signal.NewValue[Worker](nil),
		registry: NewRegistry(),
		logger:   slog.Default(),
		deferred: signal.Immediate,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scheduler = ecs.NewScheduler(
		&frameSync{ctx: c},
		&collisionCollect{ctx: c},
		ecs.SystemFunc(c.dispatchCollisions),
	)
	return c
}

// Worker is the observable worker handle; nil until a worker is attached.
func (c *Context) Worker() signal.Readable[Worker] {
	return c.worker
}

// SetWorker swaps the worker. Bodies re-register with the new worker after
// removing themselves from the old one; nil detaches every body.
func (c *Context) SetWorker(w Worker) {
	c.worker.Set(w)
}

func (c *Context) Registry() *Registry {
	return c.registry
}

// Debugger returns the debug collaborator, or nil.
func (c *Context) Debugger() Debugger {
	return c.debug
}

func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Deferred is the scheduler used for a body's first pass.
func (c *Context) Deferred() signal.Scheduler {
	return c.deferred
}

// Frames returns the number of frames applied by Update.
func (c *Context) Frames() uint64 {
	return c.frames
}

// Update drains worker output: states are written back to objects and
// subscribers, collision events are routed to registered handlers.
func (c *Context) Update() {
	c.scheduler.Update(c.registry.World())
}
